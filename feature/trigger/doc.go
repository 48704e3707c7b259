// Package trigger exposes the sync pipeline over HTTP.
//
//   - POST /sync : Runs every stage and returns the run summary.
//   - GET /runs : Lists recorded runs, newest first (?limit=N).
package trigger
