package pkg

import "github.com/google/uuid"

// GenerateGameID - returns a fresh random game identifier.
func GenerateGameID() string {
	return uuid.NewString()
}

func GenerateAccountID() string {
	return uuid.NewString()
}
