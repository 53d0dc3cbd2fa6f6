package logfile

import (
	"fmt"

	"github.com/lsftools/lsbacct/internal/tokenizer"
)

// UnknownEventTypeError means no Format is registered for the event type tag.
type UnknownEventTypeError struct {
	EventType string
}

func (x *UnknownEventTypeError) Error() string {
	return fmt.Sprintf("unknown event type '%s'", x.EventType)
}

// FieldFormatError means a token can not be converted to the field type.
type FieldFormatError struct {
	Field string
	Value string
}

func (x *FieldFormatError) Error() string {
	return fmt.Sprintf("'%s' is not a valid value for field '%s'", x.Value, x.Field)
}

// LengthMismatchError means the record ended at a position that is not the
// last field of its version.
type LengthMismatchError struct {
	EventType string
	Version   string
}

func (x *LengthMismatchError) Error() string {
	return fmt.Sprintf("not enough values for event '%s' version '%s'", x.EventType, x.Version)
}

// UnregisteredVersionError means the version table of the Format has no
// entry for the version of the record.
type UnregisteredVersionError struct {
	EventType string
	Version   string
}

func (x *UnregisteredVersionError) Error() string {
	return fmt.Sprintf("version '%s' is not registered for event '%s'", x.Version, x.EventType)
}

// RecordError has 1-based line number of the error.
type RecordError struct {
	Line int
	Err  error
}

func (x *RecordError) Error() string {
	return fmt.Sprintf("error at line %d: %v", x.Line, x.Err)
}

// Cause returns the original error. It works with errors.Cause of github.com/pkg/errors.
func (x *RecordError) Cause() error { return x.Err }

// Unwrap returns the original error.
func (x *RecordError) Unwrap() error { return x.Err }

// ErrorKind returns short name of decode error kind, e.g. "length_mismatch".
func ErrorKind(err error) string {
	if re, ok := err.(*RecordError); ok {
		err = re.Err
	}

	if err == tokenizer.ErrUnterminatedQuote {
		return "unterminated_quote"
	}

	switch err.(type) {
	case *UnknownEventTypeError:
		return "unknown_event_type"
	case *FieldFormatError:
		return "field_format"
	case *LengthMismatchError:
		return "length_mismatch"
	case *UnregisteredVersionError:
		return "unregistered_version"
	}
	return "other"
}
