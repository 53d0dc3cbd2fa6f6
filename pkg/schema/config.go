package schema

import (
	"io/ioutil"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// ErrUnknownEventType is returned when config refers not registered event type.
var ErrUnknownEventType = errors.New("unknown event type")

// Config has additional schema settings. Example:
//
//	versions:
//	  JOB_FINISH:
//	    "9.1": jobDescription
type Config struct {
	// event type -> version -> last field name
	Versions map[string]map[string]string `yaml:"versions"`
}

// ParseConfig decodes YAML config.
func ParseConfig(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(raw, &cfg); err != nil {
		return nil, errors.Wrap(err, "Fail to parse schema config")
	}
	return &cfg, nil
}

// LoadConfig reads YAML config file.
func LoadConfig(path string) (*Config, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Fail to read schema config: %s", path)
	}
	return ParseConfig(raw)
}

// Load returns default Registry extended by config file at path. Empty path
// means no config file.
func Load(path string) (*Registry, error) {
	reg, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return reg, nil
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return reg.WithConfig(cfg)
}
