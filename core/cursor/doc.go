// Package cursor persists the watermark timestamps that make the order export
// incremental.
//
// A cursor is written only after the export artifact it covers has been
// stored; a missing cursor means the task has never run and everything is
// exported. ObjectStore keeps each cursor as a small artifact in the file
// store. GormStore keeps them in the sync_cursors table when a database is
// configured.
package cursor
