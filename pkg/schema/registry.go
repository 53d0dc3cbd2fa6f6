package schema

import (
	"sort"

	"github.com/lsftools/lsbacct/pkg/models"
	"github.com/pkg/errors"
)

// ErrDuplicatedEventType is returned by NewRegistry if two formats have same event type.
var ErrDuplicatedEventType = errors.New("duplicated event type")

// Registry maps event type to Format. Registry is read only after
// construction and can be shared by readers in multiple goroutines.
type Registry struct {
	formats map[string]*models.Format
}

// NewRegistry is constructor of Registry.
func NewRegistry(formats ...*models.Format) (*Registry, error) {
	x := &Registry{formats: make(map[string]*models.Format, len(formats))}
	for _, f := range formats {
		if _, ok := x.formats[f.EventType()]; ok {
			return nil, errors.Wrap(ErrDuplicatedEventType, f.EventType())
		}
		x.formats[f.EventType()] = f
	}
	return x, nil
}

// Default returns Registry with built-in formats.
func Default() (*Registry, error) {
	jobFinish, err := JobFinish()
	if err != nil {
		return nil, errors.Wrap(err, "Fail to build JOB_FINISH format")
	}
	return NewRegistry(jobFinish)
}

// Lookup returns Format of eventType.
func (x *Registry) Lookup(eventType string) (*models.Format, bool) {
	f, ok := x.formats[eventType]
	return f, ok
}

// EventTypes returns sorted list of registered event types.
func (x *Registry) EventTypes() []string {
	var out []string
	for k := range x.formats {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// WithConfig returns a new Registry that has version table entries of cfg.
// x is not modified.
func (x *Registry) WithConfig(cfg *Config) (*Registry, error) {
	newReg := &Registry{formats: make(map[string]*models.Format, len(x.formats))}
	for k, v := range x.formats {
		newReg.formats[k] = v
	}

	if cfg == nil {
		return newReg, nil
	}

	for eventType, versions := range cfg.Versions {
		base, ok := newReg.formats[eventType]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownEventType, "in config: %s", eventType)
		}

		f, err := base.WithVersions(versions)
		if err != nil {
			return nil, errors.Wrapf(err, "Invalid version table of %s in config", eventType)
		}
		newReg.formats[eventType] = f
	}

	return newReg, nil
}
