package logfile

import (
	"fmt"
	"strconv"

	"github.com/lsftools/lsbacct/internal"
	"github.com/lsftools/lsbacct/pkg/models"
	"github.com/sirupsen/logrus"
)

var logger = internal.Logger

// lsb.acct writers put one placeholder token after the last field.
const trailingTokens = 1

// Decode converts tokens of one line to a Record of format. tokens must
// include the event type tag at first.
func Decode(format *models.Format, tokens []string) (*models.Record, error) {
	rec := models.NewRecord(format)
	remain := tokens

	for pos := 0; pos < format.Len(); pos++ {
		field := format.Field(pos)

		var v interface{}
		var err error

		if field.IsArray {
			count := arrayLength(rec, pos)
			if count < 0 {
				return nil, &FieldFormatError{
					Field: format.Field(pos - 1).Name,
					Value: strconv.FormatInt(count, 10),
				}
			}
			if int64(len(remain)) < count {
				return nil, lengthMismatch(rec)
			}

			v, err = field.ParseArray(remain[:count])
			remain = remain[count:]
		} else {
			if len(remain) == 0 {
				return nil, lengthMismatch(rec)
			}

			v, err = field.Parse(remain[0])
			remain = remain[1:]
		}

		if err != nil {
			return nil, toFieldFormatError(field, err)
		}
		if err := rec.Store(pos, v); err != nil {
			panic(fmt.Sprintf("decoded value does not match field %s: %v", field.Name, err))
		}

		if len(remain) == trailingTokens {
			return finish(rec, field)
		}
	}

	if len(remain) > trailingTokens {
		logger.WithFields(logrus.Fields{
			"eventType": format.EventType(),
			"version":   rec.Version(),
			"surplus":   len(remain) - trailingTokens,
		}).Debug("Surplus tokens after last field are ignored")
	}

	rec.Seal()
	return rec, nil
}

// arrayLength returns the already decoded count in the field before pos.
// NewFormat guarantees the field is integer.
func arrayLength(rec *models.Record, pos int) int64 {
	count, ok := rec.Value(pos - 1).(int64)
	if !ok {
		panic(fmt.Sprintf("malformed schema: field before %s is not integer", rec.Format().Field(pos).Name))
	}
	return count
}

// finish decides if a record ending at field is valid for its own version.
func finish(rec *models.Record, field models.Field) (*models.Record, error) {
	format := rec.Format()
	if !rec.IsSet(format.VersionField()) {
		return nil, lengthMismatch(rec)
	}

	version := rec.Version()
	last, ok := format.LastField(version)
	if !ok {
		return nil, &UnregisteredVersionError{EventType: format.EventType(), Version: version}
	}

	if last != field.Name {
		return nil, lengthMismatch(rec)
	}

	rec.Seal()
	return rec, nil
}

func lengthMismatch(rec *models.Record) error {
	return &LengthMismatchError{
		EventType: rec.EventType(),
		Version:   rec.Version(),
	}
}

func toFieldFormatError(field models.Field, err error) error {
	if perr, ok := err.(*models.ParseError); ok {
		return &FieldFormatError{Field: perr.Field, Value: perr.Value}
	}
	return &FieldFormatError{Field: field.Name}
}
