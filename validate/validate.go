// Package validate checks client-supplied input before it reaches a game
// session. It covers:
//   - Player names (non-empty after trimming, bounded length, printable)
//   - Game codes (six lowercase letters, as issued by the session registry)
//
// The HTTP join gate runs these checks before upgrading a connection so
// that bad input is rejected with a plain status code instead of a
// half-open websocket.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxNameLength is the longest accepted player name, in runes.
const MaxNameLength = 24

// Validation errors. Callers match with errors.Is.
var (
	ErrInvalidName     = errors.New("invalid player name")
	ErrInvalidGameCode = errors.New("invalid game code")
)

// PlayerName checks that name is usable as a display name: non-empty once
// trimmed, at most MaxNameLength runes, and made of printable characters.
func PlayerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}
	for _, r := range name {
		if !unicode.IsPrint(r) {
			return fmt.Errorf("%w: name contains unprintable characters", ErrInvalidName)
		}
	}
	return nil
}

// GameCode checks that code has the shape of an issued game code: exactly
// six lowercase ASCII letters.
func GameCode(code string) error {
	if len(code) != 6 {
		return fmt.Errorf("%w: code must be 6 letters", ErrInvalidGameCode)
	}
	for _, r := range code {
		if r < 'a' || r > 'z' {
			return fmt.Errorf("%w: code must be lowercase letters", ErrInvalidGameCode)
		}
	}
	return nil
}
