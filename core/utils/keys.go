package utils

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// UPCWidth is the zero-padded width of numeric business keys (UPC-A).
const UPCWidth = 12

// NormalizeKey canonicalizes a business key (SKU, UPC, PO number) so that
// feed values and platform values compare equal regardless of Unicode form,
// surrounding whitespace or letter case.
func NormalizeKey(key string) string {
	k := norm.NFKC.String(key)
	k = strings.TrimSpace(k)
	return strings.ToUpper(k)
}

// PadKey normalizes a key and left-pads purely numeric keys with zeros to
// width. Non-numeric keys and keys already at or above width are returned
// normalized but otherwise unchanged.
func PadKey(key string, width int) string {
	k := NormalizeKey(key)
	if k == "" || len(k) >= width || !isDigits(k) {
		return k
	}
	return strings.Repeat("0", width-len(k)) + k
}

// NormalizeOrderName strips the leading '#' the platform prefixes to order
// names so that "#1001" and "1001" match the same PO number.
func NormalizeOrderName(name string) string {
	return strings.TrimSpace(strings.TrimPrefix(NormalizeKey(name), "#"))
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
