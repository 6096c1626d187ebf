// Package config loads chaos options from JSON or YAML files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gethavoc/havoc/pkg/chaos"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound = errors.New("configuration file not found")
	ErrEmptyFile    = errors.New("configuration file is empty")
	ErrInvalidJSON  = errors.New("invalid JSON syntax")
	ErrInvalidYAML  = errors.New("invalid YAML syntax")
)

// LoadOptions reads chaos.Options from a JSON or YAML file. The format
// is detected from the file extension (.yaml/.yml for YAML, otherwise
// JSON). The returned options are not yet resolved; pass them to
// chaos.New or chaos.Resolve.
func LoadOptions(path string) (chaos.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return chaos.Options{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return chaos.Options{}, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return chaos.Options{}, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return ParseYAML(data)
	}
	return ParseJSON(data)
}

// ParseYAML parses chaos.Options from YAML bytes.
func ParseYAML(data []byte) (chaos.Options, error) {
	var opts chaos.Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return chaos.Options{}, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return opts, nil
}

// ParseJSON parses chaos.Options from JSON bytes.
func ParseJSON(data []byte) (chaos.Options, error) {
	var opts chaos.Options
	if err := json.Unmarshal(data, &opts); err != nil {
		return chaos.Options{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return opts, nil
}
