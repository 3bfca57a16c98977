// Package codec decodes configuration documents in the formats docprettify
// accepts. It isolates the YAML and TOML libraries from their callers.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// MaxInputSize limits config input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

// Format identifies a configuration document format.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var (
	ErrNilData           = errors.New("codec: nil or empty data")
	ErrNilDestination    = errors.New("codec: nil destination pointer")
	ErrInputTooLarge     = errors.New("codec: input exceeds maximum size")
	ErrUnsupportedFormat = errors.New("codec: unsupported format")
)

// FormatFor returns the format implied by a file extension.
// .yaml and .yml map to YAML, .toml to TOML.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Extensions lists the file extensions searched when resolving a config name,
// in priority order.
func Extensions() []string {
	return []string{".yaml", ".yml", ".toml"}
}

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// DecodeStrict decodes data into v, rejecting unknown fields.
func DecodeStrict(format Format, data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}

	switch format {
	case FormatYAML:
		if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
			return fmt.Errorf("codec: yaml: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("codec: toml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nil
}

// Encode renders v in the given format. Used by `docprettify --print-config`.
func Encode(format Format, v any) ([]byte, error) {
	switch format {
	case FormatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("codec: yaml: %w", err)
		}
		return out, nil
	case FormatTOML:
		out, err := toml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("codec: toml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
