package tokenizer

import (
	"errors"
	"strings"
)

// ErrUnterminatedQuote is returned when a quoted token has no closing quote.
var ErrUnterminatedQuote = errors.New("unterminated quoted token")

// Token is a part of log line
type Token struct {
	Data   string
	Quoted bool
}

// Tokenizer splits log line string
type Tokenizer interface {
	Split(line string) ([]*Token, error)
}

// QuoteTokenizer splits a line by white space. A token wrapped by double
// quotes may contain white space, and a doubled quote inside it is a literal
// quote character.
type QuoteTokenizer struct {
	delims string
	quote  byte
}

// NewQuoteTokenizer is a constructor of QuoteTokenizer
func NewQuoteTokenizer() *QuoteTokenizer {
	return &QuoteTokenizer{
		delims: " \t",
		quote:  '"',
	}
}

// SetDelim is a function set characters as delimiter
func (x *QuoteTokenizer) SetDelim(d string) {
	x.delims = d
}

func (x *QuoteTokenizer) isDelim(c byte) bool {
	return strings.IndexByte(x.delims, c) >= 0
}

// Split is a function to split log line.
func (x *QuoteTokenizer) Split(line string) ([]*Token, error) {
	line = strings.TrimRight(line, "\r\n")

	var res []*Token
	i := 0
	for {
		for i < len(line) && x.isDelim(line[i]) {
			i++
		}
		if i >= len(line) {
			break
		}

		if line[i] != x.quote {
			start := i
			for i < len(line) && !x.isDelim(line[i]) {
				i++
			}
			res = append(res, &Token{Data: line[start:i]})
			continue
		}

		// quoted token
		var sb strings.Builder
		i++
		closed := false
		for i < len(line) {
			c := line[i]
			if c != x.quote {
				sb.WriteByte(c)
				i++
				continue
			}

			if i+1 < len(line) && line[i+1] == x.quote {
				sb.WriteByte(x.quote)
				i += 2
				continue
			}

			closed = true
			i++
			break
		}
		if !closed {
			return nil, ErrUnterminatedQuote
		}

		// Text glued after the closing quote belongs to the same token.
		for i < len(line) && !x.isDelim(line[i]) {
			sb.WriteByte(line[i])
			i++
		}
		res = append(res, &Token{Data: sb.String(), Quoted: true})
	}

	return res, nil
}

// Strings returns Data of tokens.
func Strings(tokens []*Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Data
	}
	return out
}
