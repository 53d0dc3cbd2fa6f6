package logfile

import (
	"bufio"
	"io"
	"strings"

	"github.com/lsftools/lsbacct/internal/tokenizer"
	"github.com/lsftools/lsbacct/pkg/models"
	"github.com/pkg/errors"
)

// FormatLookup provides Format by event type. *schema.Registry implements it.
type FormatLookup interface {
	Lookup(eventType string) (*models.Format, bool)
}

// Reader reads lsb.acct lines and decodes them one by one. Reader is single
// pass and not goroutine safe; share the FormatLookup instead of the Reader.
type Reader struct {
	src       *bufio.Reader
	formats   FormatLookup
	tokenizer tokenizer.Tokenizer
	line      int
	err       error
}

// NewReader is constructor of Reader.
func NewReader(r io.Reader, formats FormatLookup) *Reader {
	return &Reader{
		src:       bufio.NewReader(r),
		formats:   formats,
		tokenizer: tokenizer.NewQuoteTokenizer(),
	}
}

// Line returns 1-based number of the last read line.
func (x *Reader) Line() int { return x.line }

// Next returns the next Record. A decode error is returned as *RecordError
// and the following call continues from the next line. io.EOF is returned
// at the end of input. Blank lines are skipped.
func (x *Reader) Next() (*models.Record, error) {
	for {
		if x.err != nil {
			return nil, x.err
		}

		raw, err := x.src.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				// A partial line before a read error is dropped.
				x.err = errors.Wrapf(err, "Fail to read line %d", x.line+1)
				return nil, x.err
			}
			x.err = err
			if raw == "" {
				return nil, x.err
			}
		}
		x.line++

		if strings.TrimSpace(raw) == "" {
			continue
		}

		rec, err := DecodeLine(x.formats, x.tokenizer, raw)
		if err != nil {
			return nil, &RecordError{Line: x.line, Err: err}
		}
		rec.Line = x.line
		return rec, nil
	}
}

// DecodeLine tokenizes one raw line and decodes it with the Format selected
// by the first token.
func DecodeLine(formats FormatLookup, tk tokenizer.Tokenizer, raw string) (*models.Record, error) {
	tokens, err := tk.Split(raw)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, &UnknownEventTypeError{}
	}

	eventType := tokens[0].Data
	format, ok := formats.Lookup(eventType)
	if !ok {
		return nil, &UnknownEventTypeError{EventType: eventType}
	}

	return Decode(format, tokenizer.Strings(tokens))
}
