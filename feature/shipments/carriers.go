package shipments

import (
	_ "embed"
	"fmt"

	"shopify-sync/core/utils"

	"gopkg.in/yaml.v3"
)

//go:embed carriers.yaml
var carriersYAML []byte

// Carriers maps warehouse carrier codes to tracking company names.
type Carriers map[string]string

// LoadCarriers parses a carrier table.
func LoadCarriers(data []byte) (Carriers, error) {
	raw := map[string]string{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse carriers: %w", err)
	}
	c := make(Carriers, len(raw))
	for code, name := range raw {
		c[utils.NormalizeKey(code)] = name
	}
	return c, nil
}

// DefaultCarriers returns the built-in carrier table.
func DefaultCarriers() (Carriers, error) {
	return LoadCarriers(carriersYAML)
}

// Company returns the tracking company for a carrier code. Unknown codes are
// passed through as given.
func (c Carriers) Company(code string) string {
	if name, ok := c[utils.NormalizeKey(code)]; ok {
		return name
	}
	return code
}
