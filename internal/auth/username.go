package auth

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// MaxUsernameLength is the longest accepted username, in runes.
const MaxUsernameLength = 80

var ErrInvalidUsername = errors.New("username must be 1-80 printable characters")

// NormalizeUsername returns the canonical form used for storage and lookup:
// trimmed, NFC-normalised and case-folded, so "Alice" and "alice" collide.
func NormalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	username = cases.Fold().String(norm.NFC.String(username))

	if username == "" || utf8.RuneCountInString(username) > MaxUsernameLength {
		return "", ErrInvalidUsername
	}
	for _, r := range username {
		if !unicode.IsPrint(r) {
			return "", ErrInvalidUsername
		}
	}
	return username, nil
}
