package remap

import (
	"cmp"
	"fmt"
	"os"
	"reflect"
	"slices"

	"gopkg.in/yaml.v3"
)

// File represents the root of a YAML remap definition file.
type File struct {
	// Version of the remap schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Mappings is a list of type pair rule sets.
	Mappings []TypeMapping `yaml:"mappings"`
}

// TypeMapping defines the rules of one source type to one target type.
type TypeMapping struct {
	// Source type identifier (e.g., "legacy.Customer" or full path).
	Source string `yaml:"source"`

	// Target type identifier (e.g., "modern.Customer" or full path).
	Target string `yaml:"target"`

	// OneToOne renames source fields (keys) to target fields (values).
	// Example: { "FullName": "Name" }
	OneToOne map[string]string `yaml:"121,omitempty"`

	// Ignore lists source fields that must not be mapped.
	Ignore StringOrArray `yaml:"ignore,omitempty"`
}

func (tm *TypeMapping) pairString() string {
	return tm.Source + "->" + tm.Target
}

const currentVersion = "1"

// LoadFile loads and parses a YAML remap file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read remap file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse remap YAML: %w", err)
	}

	if f.Version == "" {
		f.Version = currentVersion
	}

	return &f, nil
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal remap file: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write remap file %s: %w", path, err)
	}

	return nil
}

// FromConfig renders every rule set of cfg as a File, naming types with names.
func FromConfig(cfg *Config, names func(reflect.Type) string) *File {
	f := &File{Version: currentVersion}

	for _, key := range cfg.sortedPairs(names) {
		r := cfg.rules[key]
		tm := TypeMapping{Source: names(key.src), Target: names(key.dst)}

		r.Each(func(src, dst string) {
			if dst == "" {
				tm.Ignore = append(tm.Ignore, src)
				return
			}

			if tm.OneToOne == nil {
				tm.OneToOne = map[string]string{}
			}
			tm.OneToOne[src] = dst
		})

		f.Mappings = append(f.Mappings, tm)
	}

	return f
}

func (c *Config) sortedPairs(names func(reflect.Type) string) []typePair {
	keys := make([]typePair, 0, len(c.rules))
	for key := range c.rules {
		keys = append(keys, key)
	}

	slices.SortFunc(keys, func(a, b typePair) int {
		return cmp.Or(cmp.Compare(names(a.src), names(b.src)), cmp.Compare(names(a.dst), names(b.dst)))
	})

	return keys
}
