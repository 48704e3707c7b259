// Package loader mounts the optional route groups of the trigger server.
//
// A feature reports whether it is enabled; LoadAll skips disabled features
// and stops at the first one that fails to register its routes. The sync
// trigger (POST /sync, GET /runs) and the integrity checks (/integrity) are
// the two features the serve command registers.
package loader
