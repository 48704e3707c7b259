// Package server holds the HTTP server configuration.
//
// The serve command builds the Fiber application from this configuration;
// the trigger and integrity features register their routes on it.
package server
