package types

import "strconv"

// UserID is the stable numeric identifier of a Telegram user
type UserID int64

// String returns the decimal representation of the user ID
func (x UserID) String() string {
	return strconv.FormatInt(int64(x), 10)
}

// ChatID identifies the chat an update originated from
type ChatID int64
