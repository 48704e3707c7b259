// Package history records every pipeline run and its per-stage counts in the
// database, for the trigger API's run listing.
package history
