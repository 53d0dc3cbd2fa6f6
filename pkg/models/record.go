package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownField is returned when the Format has no field of the name.
	ErrUnknownField = errors.New("unknown field")
	// ErrFieldNotSet is returned when the field is not present in the record.
	ErrFieldNotSet = errors.New("field is not set")
	// ErrTypeMismatch is returned when a value does not match the field type.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrRecordSealed is returned when a sealed record is modified.
	ErrRecordSealed = errors.New("record is sealed")
)

// Record is decoded values of one log line. A slot of unset field is nil,
// which means the field does not exist in the version of the record.
type Record struct {
	// Line is 1-based line number in the source. Zero if unknown.
	Line int

	format *Format
	data   []interface{}
	sealed bool
}

// NewRecord creates an empty Record of format.
func NewRecord(format *Format) *Record {
	return &Record{
		format: format,
		data:   make([]interface{}, format.Len()),
	}
}

// Format returns schema of the record.
func (x *Record) Format() *Format { return x.format }

// EventType returns event type tag of the record.
func (x *Record) EventType() string { return x.format.EventType() }

// Version returns value of version field. Empty if not set.
func (x *Record) Version() string {
	v, ok := x.Get(x.format.VersionField())
	if !ok {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// Seal makes the record read only. Records yielded by the decoder are sealed.
func (x *Record) Seal() { x.sealed = true }

// Sealed returns true if Store and Set are no longer allowed.
func (x *Record) Sealed() bool { return x.sealed }

// Store sets v to the field at position. v must be int64, float64 or string
// for scalar field, []int64, []float64 or []string for array field. Store and
// Set are for building a record and fail after Seal.
func (x *Record) Store(pos int, v interface{}) error {
	if x.sealed {
		return ErrRecordSealed
	}
	f := x.format.Field(pos)
	if !typeMatched(f, v) {
		return errors.Wrapf(ErrTypeMismatch, "%T for %s field %s", v, f.TypeName(), f.Name)
	}
	x.data[pos] = v
	return nil
}

// Set sets v to the field named name. See Store about type of v.
func (x *Record) Set(name string, v interface{}) error {
	f, ok := x.format.Lookup(name)
	if !ok {
		return errors.Wrap(ErrUnknownField, name)
	}
	return x.Store(f.Position, v)
}

func typeMatched(f Field, v interface{}) bool {
	switch v.(type) {
	case int64:
		return !f.IsArray && f.Type == Integer
	case float64:
		return !f.IsArray && f.Type == Float
	case string:
		return !f.IsArray && f.Type == String
	case []int64:
		return f.IsArray && f.Type == Integer
	case []float64:
		return f.IsArray && f.Type == Float
	case []string:
		return f.IsArray && f.Type == String
	}
	return false
}

// Value returns value at position. nil if not set.
func (x *Record) Value(pos int) interface{} { return x.data[pos] }

// Get returns value of the field named name. ok is false if the field is
// unknown or not set.
func (x *Record) Get(name string) (v interface{}, ok bool) {
	f, found := x.format.Lookup(name)
	if !found || x.data[f.Position] == nil {
		return nil, false
	}
	return x.data[f.Position], true
}

// IsSet returns true if the field has a value.
func (x *Record) IsSet(name string) bool {
	_, ok := x.Get(name)
	return ok
}

func (x *Record) lookup(name string) (interface{}, error) {
	f, ok := x.format.Lookup(name)
	if !ok {
		return nil, errors.Wrap(ErrUnknownField, name)
	}
	v := x.data[f.Position]
	if v == nil {
		return nil, errors.Wrap(ErrFieldNotSet, name)
	}
	return v, nil
}

// Int returns value of integer field.
func (x *Record) Int(name string) (int64, error) {
	v, err := x.lookup(name)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int64)
	if !ok {
		return 0, errors.Wrapf(ErrTypeMismatch, "%s is not integer", name)
	}
	return n, nil
}

// Float returns value of float field.
func (x *Record) Float(name string) (float64, error) {
	v, err := x.lookup(name)
	if err != nil {
		return 0, err
	}
	n, ok := v.(float64)
	if !ok {
		return 0, errors.Wrapf(ErrTypeMismatch, "%s is not float", name)
	}
	return n, nil
}

// Str returns value of string field.
func (x *Record) Str(name string) (string, error) {
	v, err := x.lookup(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.Wrapf(ErrTypeMismatch, "%s is not string", name)
	}
	return s, nil
}

// Strings returns value of string array field.
func (x *Record) Strings(name string) ([]string, error) {
	v, err := x.lookup(name)
	if err != nil {
		return nil, err
	}
	s, ok := v.([]string)
	if !ok {
		return nil, errors.Wrapf(ErrTypeMismatch, "%s is not string array", name)
	}
	return s, nil
}

// Map returns set fields as map. Unset fields are not included.
func (x *Record) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(x.data))
	for i, v := range x.data {
		if v != nil {
			m[x.format.Field(i).Name] = v
		}
	}
	return m
}

// MarshalJSON encodes set fields as JSON object in field order.
func (x *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for i, v := range x.data {
		if v == nil {
			continue
		}

		key, err := json.Marshal(x.format.Field(i).Name)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrapf(err, "Fail to marshal field %s", x.format.Field(i).Name)
		}

		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FormatLong renders all fields as "name (type): value" lines for debugging.
func (x *Record) FormatLong() string {
	lines := make([]string, len(x.data))
	for i, v := range x.data {
		f := x.format.Field(i)
		value := "<unset>"
		if v != nil {
			value = fmt.Sprintf("%v", v)
		}
		lines[i] = fmt.Sprintf("%s (%s): %s", f.Name, f.TypeName(), value)
	}
	return strings.Join(lines, "\n")
}

func (x *Record) String() string {
	return fmt.Sprintf("%v", x.data)
}
