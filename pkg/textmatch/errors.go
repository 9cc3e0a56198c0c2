package textmatch

import (
	"errors"
	"fmt"
)

// ErrUnsupportedCharacter is matched by every *UnsupportedCharacterError.
var ErrUnsupportedCharacter = errors.New("unsupported character")

// UnsupportedCharacterError reports a text rune outside the matcher alphabet.
type UnsupportedCharacterError struct {
	Rune     rune
	Position int // rune offset in the scanned text
}

func (e *UnsupportedCharacterError) Error() string {
	return fmt.Sprintf("%v %q (U+%04X) at position %d", ErrUnsupportedCharacter, e.Rune, e.Rune, e.Position)
}

func (e *UnsupportedCharacterError) Unwrap() error {
	return ErrUnsupportedCharacter
}
