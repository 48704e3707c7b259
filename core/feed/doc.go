// Package feed reads and writes the tabular (CSV) files exchanged with the
// warehouse: inventory and shipment feeds in, order exports out.
//
// Each feed type declares a Schema mapping field names to header labels.
// The schema is checked against the header row when the file is parsed, so
// a renamed column is reported once for the file instead of silently yielding
// empty values on every row.
package feed
