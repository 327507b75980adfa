package config

import (
	"gopkg.in/ini.v1"

	"github.com/ukaji3/qrbatch-go/pkg/qrbatch"
)

// INI reads sections and keys from an INI file. Keys are case-insensitive
// and indented lines continue the previous value.
type INI struct {
	file *ini.File
}

var iniOptions = ini.LoadOptions{
	InsensitiveKeys:            true,
	AllowPythonMultilineValues: true,
	IgnoreInlineComment:        true,
	IgnoreContinuation:         true,
}

// OpenINI loads the INI file at path.
func OpenINI(path string) (*INI, error) {
	f, err := ini.LoadSources(iniOptions, path)
	if err != nil {
		return nil, qrbatch.NewConfigError(path, err)
	}
	return &INI{file: f}, nil
}

// ParseINI loads INI content from memory.
func ParseINI(data []byte) (*INI, error) {
	f, err := ini.LoadSources(iniOptions, data)
	if err != nil {
		return nil, qrbatch.NewConfigError("ini", err)
	}
	return &INI{file: f}, nil
}

func (c *INI) lookup(section, key string) (*ini.Key, bool) {
	s, err := c.file.GetSection(section)
	if err != nil || !s.HasKey(key) {
		return nil, false
	}
	return s.Key(key), true
}

func (c *INI) List(section, key string) ([]string, error) {
	k, ok := c.lookup(section, key)
	if !ok {
		return nil, nil
	}
	return splitList(k.String()), nil
}

func (c *INI) Scalar(section, key, fallback string) (string, error) {
	k, ok := c.lookup(section, key)
	if !ok {
		return fallback, nil
	}
	return k.String(), nil
}
