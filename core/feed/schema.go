package feed

import (
	"fmt"
	"sort"
	"strings"
)

// Schema declares how the columns of one feed type map to the fields the
// sync tasks read. It is validated against the header row at parse time.
type Schema struct {
	// Name identifies the feed type in logs (e.g. "inventory").
	Name string

	// Columns maps a field name to the header label of its column.
	Columns map[string]string

	// Required lists the fields that must be present in the header and
	// non-blank in every row.
	Required []string
}

// Header returns the column labels of the schema in field order, required
// fields first. It is used when a feed of this type is written.
func (s Schema) Header() []string {
	fields := s.Fields()
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = s.Columns[f]
	}
	return out
}

// Fields returns the declared field names, required fields first in their
// declared order, then the optional fields sorted.
func (s Schema) Fields() []string {
	seen := make(map[string]bool, len(s.Columns))
	out := make([]string, 0, len(s.Columns))
	for _, f := range s.Required {
		if _, ok := s.Columns[f]; ok && !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	var rest []string
	for f := range s.Columns {
		if !seen[f] {
			rest = append(rest, f)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// Override returns a copy of the schema with column labels replaced from a
// "field=Header,field=Header" list. Unknown fields are rejected so a typo in
// configuration fails loudly instead of silently reading an empty column.
func (s Schema) Override(mapping string) (Schema, error) {
	mapping = strings.TrimSpace(mapping)
	if mapping == "" {
		return s, nil
	}

	cols := make(map[string]string, len(s.Columns))
	for k, v := range s.Columns {
		cols[k] = v
	}

	for _, pair := range strings.Split(mapping, ",") {
		field, header, ok := strings.Cut(pair, "=")
		field = strings.TrimSpace(field)
		header = strings.TrimSpace(header)
		if !ok || field == "" || header == "" {
			return s, fmt.Errorf("%s schema: malformed column mapping %q", s.Name, pair)
		}
		if _, known := cols[field]; !known {
			return s, fmt.Errorf("%s schema: unknown field %q", s.Name, field)
		}
		cols[field] = header
	}

	out := s
	out.Columns = cols
	return out, nil
}
