package sources

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/harvest"
	"gopkg.in/yaml.v3"
)

// File is the layout of a sources YAML file.
type File struct {
	Sources []*harvest.Source `yaml:"sources"`
}

// Load reads adapters from a YAML file, applies defaults and validates them.
func Load(path string) ([]*harvest.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, harvest.Errorf(harvest.ENOTFOUND, "sources file %s not found", path)
		}
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}
	return Parse(data)
}

// Parse decodes adapters from YAML. Unknown keys are rejected so that a
// misspelled selector field fails loudly instead of falling back to defaults.
func Parse(data []byte) ([]*harvest.Source, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, harvest.WrapError(harvest.EINVALID, err, "failed to parse sources YAML")
	}
	if len(f.Sources) == 0 {
		return nil, harvest.Errorf(harvest.EINVALID, "no sources defined")
	}

	seen := make(map[string]bool, len(f.Sources))
	for i, src := range f.Sources {
		if src == nil {
			return nil, harvest.Errorf(harvest.EINVALID, "source %d is empty", i)
		}
		src.ApplyDefaults()
		if err := src.Validate(); err != nil {
			return nil, err
		}
		key := strings.ToLower(src.Name)
		if seen[key] {
			return nil, harvest.Errorf(harvest.EINVALID, "duplicate source %q", src.Name)
		}
		seen[key] = true
	}
	return f.Sources, nil
}

// Select returns the adapters whose names match names, case-insensitively,
// in the order given. No names selects every adapter.
func Select(all []*harvest.Source, names []string) ([]*harvest.Source, error) {
	if len(names) == 0 {
		return all, nil
	}

	byName := make(map[string]*harvest.Source, len(all))
	for _, src := range all {
		byName[strings.ToLower(src.Name)] = src
	}

	selected := make([]*harvest.Source, 0, len(names))
	for _, name := range names {
		src, ok := byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, harvest.Errorf(harvest.ENOTFOUND, "source %q not found", name)
		}
		selected = append(selected, src)
	}
	return selected, nil
}
