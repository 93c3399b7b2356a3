package base

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Output writes v to the UI as JSON or YAML.
func (c *Command) Output(format string, v any) error {
	var b []byte
	var err error

	switch strings.ToLower(format) {
	case "", "json":
		b, err = json.MarshalIndent(v, "", "  ")
	case "yaml":
		// Go through JSON so field names match the wire format.
		var generic any
		raw, jerr := json.Marshal(v)
		if jerr != nil {
			return fmt.Errorf("error encoding output: %w", jerr)
		}
		if jerr := json.Unmarshal(raw, &generic); jerr != nil {
			return fmt.Errorf("error encoding output: %w", jerr)
		}
		b, err = yaml.Marshal(generic)
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
	if err != nil {
		return fmt.Errorf("error encoding output: %w", err)
	}

	c.UI.Output(strings.TrimRight(string(b), "\n"))
	return nil
}

// ReadData decodes a document payload given inline as JSON or in a JSON or
// YAML file. Exactly one of inline and path must be set.
func (c *Command) ReadData(inline, path string) (map[string]any, error) {
	switch {
	case inline != "" && path != "":
		return nil, fmt.Errorf("only one of -data and -file may be set")
	case inline != "":
		var data map[string]any
		if err := json.Unmarshal([]byte(inline), &data); err != nil {
			return nil, fmt.Errorf("error parsing -data as JSON: %w", err)
		}
		return data, nil
	case path != "":
		raw, err := afero.ReadFile(c.FS(), path)
		if err != nil {
			return nil, fmt.Errorf("error reading data file: %w", err)
		}
		var data map[string]any
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(raw, &data)
		default:
			err = json.Unmarshal(raw, &data)
		}
		if err != nil {
			return nil, fmt.Errorf("error parsing data file %s: %w", path, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("one of -data or -file is required")
	}
}
