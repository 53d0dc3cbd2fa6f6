package models

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrInvalidFormat indicates a defect of schema definition.
var ErrInvalidFormat = errors.New("invalid format")

// Format is ordered field schema of one event type. Format is not modified
// after NewFormat and can be shared by multiple readers.
type Format struct {
	eventType    string
	versionField string
	fields       []Field
	index        map[string]int

	// version string -> name of last field present in the version
	versions map[string]string
}

// NewFormat is constructor of Format. versionField is name of the field that
// has the format version of each record. versions maps the version string to
// the name of the last field that a record of the version has.
func NewFormat(eventType, versionField string, fields []Field, versions map[string]string) (*Format, error) {
	x := &Format{
		eventType:    eventType,
		versionField: versionField,
		fields:       make([]Field, len(fields)),
		index:        make(map[string]int, len(fields)),
		versions:     map[string]string{},
	}

	for i, f := range fields {
		if !f.Type.Valid() {
			return nil, errors.Wrapf(ErrInvalidFormat, "%s: unknown type code %q of field %s", eventType, string(rune(f.Type)), f.Name)
		}
		if _, ok := x.index[f.Name]; ok {
			return nil, errors.Wrapf(ErrInvalidFormat, "%s: duplicated field name %s", eventType, f.Name)
		}

		if f.IsArray {
			if i == 0 {
				return nil, errors.Wrapf(ErrInvalidFormat, "%s: array field %s is the first field", eventType, f.Name)
			}
			prev := fields[i-1]
			if prev.IsArray || prev.Type != Integer {
				return nil, errors.Wrapf(ErrInvalidFormat, "%s: field %s before array field %s must be integer", eventType, prev.Name, f.Name)
			}
		}

		f.Position = i
		x.fields[i] = f
		x.index[f.Name] = i
	}

	if _, ok := x.index[versionField]; !ok {
		return nil, errors.Wrapf(ErrInvalidFormat, "%s: version field %s is not defined", eventType, versionField)
	}

	if err := x.mergeVersions(versions); err != nil {
		return nil, err
	}

	return x, nil
}

func (x *Format) mergeVersions(versions map[string]string) error {
	for version, last := range versions {
		if _, ok := x.index[last]; !ok {
			return errors.Wrapf(ErrInvalidFormat, "%s: last field %s of version %s is not defined", x.eventType, last, version)
		}
		x.versions[version] = last
	}
	return nil
}

// WithVersions returns a new Format that has additional version table entries.
// Existing entries are overwritten by versions. x is not modified.
func (x *Format) WithVersions(versions map[string]string) (*Format, error) {
	newFmt := &Format{
		eventType:    x.eventType,
		versionField: x.versionField,
		fields:       x.fields,
		index:        x.index,
		versions:     make(map[string]string, len(x.versions)+len(versions)),
	}
	for k, v := range x.versions {
		newFmt.versions[k] = v
	}

	if err := newFmt.mergeVersions(versions); err != nil {
		return nil, err
	}
	return newFmt, nil
}

// EventType returns the event type tag, e.g. JOB_FINISH
func (x *Format) EventType() string { return x.eventType }

// VersionField returns name of the field that has format version.
func (x *Format) VersionField() string { return x.versionField }

// Len returns number of fields.
func (x *Format) Len() int { return len(x.fields) }

// Field returns the field at position i.
func (x *Format) Field(i int) Field { return x.fields[i] }

// Fields returns a copy of field list.
func (x *Format) Fields() []Field {
	out := make([]Field, len(x.fields))
	copy(out, x.fields)
	return out
}

// Lookup returns the field named name.
func (x *Format) Lookup(name string) (Field, bool) {
	i, ok := x.index[name]
	if !ok {
		return Field{}, false
	}
	return x.fields[i], true
}

// LastField returns name of the last field present in version.
func (x *Format) LastField(version string) (string, bool) {
	last, ok := x.versions[version]
	return last, ok
}

// Versions returns sorted list of registered versions.
func (x *Format) Versions() []string {
	var out []string
	for v := range x.versions {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
