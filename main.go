package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/karbala-lab/daleel/pkg/cli"
)

var version = "dev"

func main() {
	// Missing .env is fine; flags and real env vars still apply.
	_ = godotenv.Load()

	if err := cli.Run(context.Background(), os.Args, version); err != nil {
		os.Exit(1)
	}
}
