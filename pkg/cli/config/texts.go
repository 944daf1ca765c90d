package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	tgctrl "github.com/karbala-lab/daleel/pkg/controller/telegram"
)

// Texts holds CLI flags for the user-facing strings
type Texts struct {
	path      string
	adminLink string
}

// Flags returns CLI flags for texts configuration
func (x *Texts) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "texts-path",
			Usage:       "TOML file overriding the built-in bot texts",
			Sources:     cli.EnvVars("DALEEL_TEXTS_PATH"),
			Destination: &x.path,
		},
		&cli.StringFlag{
			Name:        "admin-link",
			Usage:       "Contact shown in the intro and about texts",
			Value:       "@HospitalAdmin",
			Sources:     cli.EnvVars("DALEEL_ADMIN_LINK"),
			Destination: &x.adminLink,
		},
	}
}

// Configure returns the built-in texts, overlaid with the TOML file when one
// is configured. Keys absent from the file keep their defaults.
func (x *Texts) Configure() (tgctrl.Texts, error) {
	texts := tgctrl.DefaultTexts(x.adminLink)
	if x.path == "" {
		return texts, nil
	}

	raw, err := os.ReadFile(x.path)
	if err != nil {
		return texts, goerr.Wrap(err, "failed to read texts file", goerr.V("path", x.path))
	}
	if err := toml.Unmarshal(raw, &texts); err != nil {
		return texts, goerr.Wrap(err, "failed to parse texts file", goerr.V("path", x.path))
	}
	return texts, nil
}
