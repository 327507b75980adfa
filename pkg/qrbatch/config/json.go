package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/ukaji3/qrbatch-go/pkg/qrbatch"
)

// JSON reads values from a JSON document of the form
// {"Section": {"key": value}}. Keys are case-insensitive. List values may be
// arrays or newline-separated strings.
type JSON struct {
	v *viper.Viper
}

// OpenJSON loads the JSON file at path.
func OpenJSON(path string) (*JSON, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, qrbatch.NewConfigError(path, fmt.Errorf("failed to read config file: %w", err))
	}
	return &JSON{v: v}, nil
}

// ParseJSON loads JSON content from memory.
func ParseJSON(data []byte) (*JSON, error) {
	v := viper.New()
	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, qrbatch.NewConfigError("json", fmt.Errorf("failed to read config: %w", err))
	}
	return &JSON{v: v}, nil
}

func (c *JSON) List(section, key string) ([]string, error) {
	name := section + "." + key
	if !c.v.IsSet(name) {
		return nil, nil
	}

	switch raw := c.v.Get(name).(type) {
	case nil:
		return nil, nil
	case []interface{}:
		var items []string
		for _, elem := range raw {
			s, err := cast.ToStringE(elem)
			if err != nil {
				return nil, qrbatch.NewConfigError(name, fmt.Errorf("%w: %v", qrbatch.ErrInvalidValue, err))
			}
			if s = strings.TrimSpace(s); s != "" {
				items = append(items, unescape(s))
			}
		}
		return items, nil
	default:
		s, err := cast.ToStringE(raw)
		if err != nil {
			return nil, qrbatch.NewConfigError(name, fmt.Errorf("%w: expected a list, got %T", qrbatch.ErrInvalidValue, raw))
		}
		return splitList(s), nil
	}
}

func (c *JSON) Scalar(section, key, fallback string) (string, error) {
	name := section + "." + key
	if !c.v.IsSet(name) {
		return fallback, nil
	}

	raw := c.v.Get(name)
	if raw == nil {
		return fallback, nil
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return "", qrbatch.NewConfigError(name, fmt.Errorf("%w: expected a single value, got %T", qrbatch.ErrInvalidValue, raw))
	}
	return s, nil
}
