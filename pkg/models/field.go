package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ScalarType is value type of a field. The value is the type code used in
// compact field notation such as "jobId=i".
type ScalarType byte

const (
	// Integer field is decoded to int64
	Integer ScalarType = 'i'
	// Float field is decoded to float64
	Float ScalarType = 'f'
	// String field is kept as string
	String ScalarType = 's'
)

// Valid returns true if x is a known type code.
func (x ScalarType) Valid() bool {
	switch x {
	case Integer, Float, String:
		return true
	}
	return false
}

func (x ScalarType) String() string {
	switch x {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	}
	return "unknown(" + strconv.Quote(string(rune(x))) + ")"
}

// Field describes one column of a Format.
type Field struct {
	Name string
	Type ScalarType
	// IsArray means a variable length sequence of Type. The length is the
	// value of the previous field in the same Format.
	IsArray bool
	// Position is set by NewFormat.
	Position int
}

// TypeName returns type name for display, e.g. "string[]" for array field.
func (x Field) TypeName() string {
	if x.IsArray {
		return x.Type.String() + "[]"
	}
	return x.Type.String()
}

func (x Field) String() string {
	s := x.Name + "=" + string(rune(x.Type))
	if x.IsArray {
		s += "{#}"
	}
	return s
}

var errNonFinite = errors.New("non-finite float")

// ParseError is returned when a raw token can not be converted to the field type.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (x *ParseError) Error() string {
	return fmt.Sprintf("'%s' is not a valid value for field '%s'", x.Value, x.Field)
}

// Parse converts a raw token to a scalar value of the field type.
func (x Field) Parse(raw string) (interface{}, error) {
	var v interface{}
	var err error

	switch x.Type {
	case Integer:
		v, err = strconv.ParseInt(raw, 10, 64)
	case Float:
		var f float64
		f, err = strconv.ParseFloat(raw, 64)
		if err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
			err = errNonFinite
		}
		v = f
	case String:
		v = raw
	default:
		err = errors.Wrapf(ErrInvalidFormat, "field %s has unknown type", x.Name)
	}

	if err != nil {
		return nil, &ParseError{Field: x.Name, Value: raw, Err: err}
	}
	return v, nil
}

// ParseArray converts raw tokens to a typed slice: []int64, []float64 or []string.
func (x Field) ParseArray(raws []string) (interface{}, error) {
	switch x.Type {
	case Integer:
		out := make([]int64, len(raws))
		for i, raw := range raws {
			v, err := x.Parse(raw)
			if err != nil {
				return nil, err
			}
			out[i] = v.(int64)
		}
		return out, nil

	case Float:
		out := make([]float64, len(raws))
		for i, raw := range raws {
			v, err := x.Parse(raw)
			if err != nil {
				return nil, err
			}
			out[i] = v.(float64)
		}
		return out, nil

	case String:
		out := make([]string, len(raws))
		copy(out, raws)
		return out, nil
	}

	return nil, errors.Wrapf(ErrInvalidFormat, "field %s has unknown type", x.Name)
}

// ParseField parses compact field notation: "name=t" for scalar field and
// "name=t{#}" for array field. t is one of i, f and s.
func ParseField(notation string) (Field, error) {
	arr := strings.SplitN(notation, "=", 2)
	if len(arr) != 2 || arr[0] == "" {
		return Field{}, errors.Wrapf(ErrInvalidFormat, "invalid field notation: %q", notation)
	}

	f := Field{Name: arr[0]}
	code := arr[1]
	if strings.HasSuffix(code, "{#}") {
		f.IsArray = true
		code = strings.TrimSuffix(code, "{#}")
	}

	if len(code) != 1 {
		return Field{}, errors.Wrapf(ErrInvalidFormat, "invalid type code of field %s: %q", f.Name, code)
	}
	f.Type = ScalarType(code[0])
	if !f.Type.Valid() {
		return Field{}, errors.Wrapf(ErrInvalidFormat, "invalid type code of field %s: %q", f.Name, code)
	}

	return f, nil
}

// ParseFields parses list of compact field notations.
func ParseFields(notations []string) ([]Field, error) {
	fields := make([]Field, len(notations))
	for i, notation := range notations {
		f, err := ParseField(notation)
		if err != nil {
			return nil, err
		}
		fields[i] = f
	}
	return fields, nil
}
