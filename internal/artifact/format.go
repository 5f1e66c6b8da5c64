// Package artifact writes compiled route tables and sidebars to disk and
// reads them back for the resolve and sidebar commands.
package artifact

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of the routes and sidebars files. The manifest is
// always JSON.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const (
	routesBase   = "routes"
	sidebarsBase = "sidebars"
	// ManifestFile names the manifest written next to the artifacts.
	ManifestFile = "manifest.json"
)

// Ext returns the file extension of f including the dot.
func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

func (f Format) marshal(v any) ([]byte, error) {
	switch f {
	case FormatJSON, "":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(v)
	default:
		return nil, fmt.Errorf("unsupported artifact format %q", f)
	}
}

func (f Format) unmarshal(data []byte, v any) error {
	switch f {
	case FormatJSON, "":
		return json.Unmarshal(data, v)
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	default:
		return fmt.Errorf("unsupported artifact format %q", f)
	}
}
