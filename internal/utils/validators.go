package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/strand-dev/strand/internal/errors"
)

// ThreadTextValidator checks user-supplied thread/comment bodies.
// Zero value uses the default length limit.
type ThreadTextValidator struct {
	MaxLen int
}

func (v *ThreadTextValidator) Text(text string) error {
	maxLen := v.MaxLen
	if maxLen == 0 {
		maxLen = 10_000
	}
	if strings.TrimSpace(text) == "" {
		return errors.Validation("Text is required")
	}
	if utf8.RuneCountInString(text) > maxLen {
		return errors.Validation("Text is too long")
	}
	return nil
}

type UsernameValidator struct{}

func (v *UsernameValidator) Username(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.Validation("Username is required")
	}
	if utf8.RuneCountInString(name) > 30 {
		return errors.Validation("Username is too long")
	}
	return nil
}
