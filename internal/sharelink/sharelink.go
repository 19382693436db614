// Package sharelink generates the short public identifiers of shared resumes.
package sharelink

import (
	"fmt"
	"regexp"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Length is the number of characters in a share link.
const Length = 10

// MaxAttempts bounds regeneration when a generated link collides.
const MaxAttempts = 3

var pattern = regexp.MustCompile(`^[A-Za-z0-9_-]{10}$`)

// New returns a random URL-safe identifier of Length characters.
func New() (string, error) {
	id, err := gonanoid.New(Length)
	if err != nil {
		return "", fmt.Errorf("failed to generate share link: %w", err)
	}
	return id, nil
}

// Valid reports whether s has the shape of a generated link.
func Valid(s string) bool {
	return pattern.MatchString(s)
}
