// Package orders exports newly created orders to the warehouse.
//
// The export is incremental: a cursor holds the creation time of the newest
// exported order and is advanced only after the export file was stored.
package orders
