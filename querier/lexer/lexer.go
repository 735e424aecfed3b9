// Package lexer splits a raw filter string into tokens and groups those
// tokens into clauses. Tokens are whitespace-delimited, except that a
// single-quoted literal (with '' as an escaped quote) is one token no
// matter what it contains, delimiters included. Unwrapping and unescaping
// happen later, during coercion.
package lexer

import (
	"strings"
	"time"

	"github.com/vendq/vendq/fault"
)

// deadlineCheckStride is how many runes the scanner consumes between
// deadline checks. Scanning is linear, so this only bounds how late a
// timeout is noticed, not whether it is.
const deadlineCheckStride = 256

type Lexer struct {
	input    []rune
	pos      int
	deadline time.Time // zero means unbounded
}

func New(input string) *Lexer {
	return &Lexer{input: []rune(input)}
}

// WithDeadline makes Tokens fail with a compilation-timeout fault once the
// given instant has passed.
func (l *Lexer) WithDeadline(deadline time.Time) *Lexer {
	l.deadline = deadline
	return l
}

// Tokens scans the whole input. It cannot fail on malformed input — an
// unterminated quote simply ends the trailing token — only on a missed
// deadline.
func (l *Lexer) Tokens() ([]string, error) {
	var tokens []string
	var current strings.Builder
	inQuote := false

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for ; l.pos < len(l.input); l.pos++ {
		if l.pos%deadlineCheckStride == 0 && l.expired() {
			return nil, fault.New(fault.CompilationTimeoutCode, "Filter took too long to compile.")
		}

		char := l.input[l.pos]

		switch {
		case char == '\'':
			if inQuote && l.peek() == '\'' {
				// Escaped quote: keep both characters, stay quoted.
				current.WriteRune(char)
				current.WriteRune('\'')
				l.pos++
				continue
			}
			inQuote = !inQuote
			current.WriteRune(char)

		case isWhitespace(char) && !inQuote:
			flush()

		default:
			current.WriteRune(char)
		}
	}

	// An unterminated quote is accepted as-is; the partial token is
	// still emitted.
	flush()

	return tokens, nil
}

func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) expired() bool {
	return !l.deadline.IsZero() && time.Now().After(l.deadline)
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
