// Package middleware holds the Fiber middleware of the trigger server.
//
// rayid tags each request with an X-Ray-ID that request logs carry. auth
// guards every route with the configured API key.
package middleware
