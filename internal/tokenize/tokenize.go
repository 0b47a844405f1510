// Package tokenize splits a command string into a program name and arguments.
//
// Tokens are separated by runs of whitespace. A double quote toggles a quoted
// region in which whitespace is kept literally; a closing quote ends the
// current token. Empty tokens are never produced, so `""` contributes nothing.
// An unterminated quote is closed implicitly at the end of the input. There is
// no escape character.
package tokenize

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrEmptyCommand is matched by a TokenizeError for input that yields no tokens.
var ErrEmptyCommand = errors.New("empty command string")

// TokenizeError reports a command string that produced no program name.
type TokenizeError struct {
	Input string
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("%v: %q", ErrEmptyCommand, e.Input)
}

func (e *TokenizeError) Is(target error) bool { return target == ErrEmptyCommand }

// Tokenize splits s into tokens. The first token is the program.
func Tokenize(s string) ([]string, error) {
	var (
		tokens   []string
		current  strings.Builder
		inQuotes bool
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			if !inQuotes {
				flush()
			}
		case unicode.IsSpace(r) && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	if len(tokens) == 0 {
		return nil, &TokenizeError{Input: s}
	}
	return tokens, nil
}
