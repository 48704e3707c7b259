package orders

import (
	_ "embed"
	"fmt"
	"strings"

	"shopify-sync/core/commerce"

	"gopkg.in/yaml.v3"
)

//go:embed shipcodes.yaml
var shipCodesYAML []byte

// ShipCodes translates checkout shipping lines to warehouse ship codes.
type ShipCodes struct {
	Default string            `yaml:"default"`
	Codes   map[string]string `yaml:"codes"`
}

// LoadShipCodes parses a ship code table.
func LoadShipCodes(data []byte) (ShipCodes, error) {
	var t ShipCodes
	if err := yaml.Unmarshal(data, &t); err != nil {
		return ShipCodes{}, fmt.Errorf("parse ship codes: %w", err)
	}
	codes := make(map[string]string, len(t.Codes))
	for k, v := range t.Codes {
		codes[normalizeMethod(k)] = v
	}
	t.Codes = codes
	return t, nil
}

// DefaultShipCodes returns the built-in ship code table.
func DefaultShipCodes() (ShipCodes, error) {
	return LoadShipCodes(shipCodesYAML)
}

// Lookup returns the ship code of the first shipping line, matching its code
// before its title. Unknown methods and orders without shipping lines get
// the default code.
func (t ShipCodes) Lookup(lines []commerce.ShippingLine) string {
	if len(lines) == 0 {
		return t.Default
	}
	for _, method := range []string{lines[0].Code, lines[0].Title} {
		if code, ok := t.Codes[normalizeMethod(method)]; ok {
			return code
		}
	}
	return t.Default
}

func normalizeMethod(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
