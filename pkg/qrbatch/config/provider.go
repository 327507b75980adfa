// Package config loads batch settings from INI or JSON files.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ukaji3/qrbatch-go/pkg/qrbatch"
)

// Provider reads values by section and key.
type Provider interface {
	// List returns the entries of a list value, or nil when the key is
	// absent.
	List(section, key string) ([]string, error)
	// Scalar returns a single value, or fallback when the key is absent.
	Scalar(section, key, fallback string) (string, error)
}

// Open returns the provider matching the file extension of path: .ini,
// .cfg and .conf files are read as INI, .json files as nested objects.
func Open(path string) (Provider, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ini", ".cfg", ".conf":
		return OpenINI(path)
	case ".json":
		return OpenJSON(path)
	default:
		return nil, qrbatch.NewConfigError(path, fmt.Errorf("%w: %q", qrbatch.ErrUnsupportedFormat, ext))
	}
}

// splitList turns a multi-line value into entries: one per non-blank line,
// trimmed, with the two characters `\n` standing for a line break.
func splitList(raw string) []string {
	var items []string
	for _, line := range strings.Split(raw, "\n") {
		if item := strings.TrimSpace(line); item != "" {
			items = append(items, unescape(item))
		}
	}
	return items
}

func unescape(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

// Empty is a Provider with no values.
type Empty struct{}

func (Empty) List(string, string) ([]string, error) { return nil, nil }

func (Empty) Scalar(_, _, fallback string) (string, error) { return fallback, nil }
