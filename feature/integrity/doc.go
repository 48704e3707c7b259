// Package integrity provides health checks for the sync infrastructure.
//
// # Checks Provided
//
//   - Structure: the feed, export, cursor and report folders exist in the bucket.
//   - Schema: the sync_cursors, sync_runs and sync_stages tables match their models.
//   - Commerce: the commerce platform answers authenticated count queries.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/schema : Runs schema check.
//   - GET /integrity/commerce : Runs commerce connectivity check.
package integrity
