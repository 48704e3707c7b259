package reconcile

import "strings"

// Group holds the feed rows that share a grouping key.
type Group[R any] struct {
	// Key is the grouping key (e.g. a PO number).
	Key string

	// Rows are the members in feed order.
	Rows []R
}

// GroupRows partitions rows by key, preserving the order in which keys first
// appear. Rows whose key is blank are discarded and counted in dropped; this
// tolerates trailing blank lines in feeds.
func GroupRows[R any](rows []R, key func(R) string) (groups []Group[R], dropped int) {
	pos := make(map[string]int)
	for _, row := range rows {
		k := strings.TrimSpace(key(row))
		if k == "" {
			dropped++
			continue
		}
		i, ok := pos[k]
		if !ok {
			i = len(groups)
			pos[k] = i
			groups = append(groups, Group[R]{Key: k})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}
	return groups, dropped
}
