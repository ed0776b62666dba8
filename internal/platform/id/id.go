// Package id generates opaque identifiers for sessions and requests.
package id

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a random version 4 UUID string.
func NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return value.String(), nil
}

// Valid reports whether value parses as a UUID.
func Valid(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}
