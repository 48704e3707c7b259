// Package ratelimit implements the advisory backpressure used before every
// call to the remote commerce platform.
//
// The platform reports how many calls remain in the current window on each
// response. Callers feed that number to Observe and call Wait right before the
// next request; Wait pauses for a fixed cooldown when the budget has fallen
// below the low-water mark (11 by default) and otherwise returns at once.
//
// # Usage
//
//	limiter := ratelimit.New(11, 5*time.Second)
//	if err := limiter.Wait(ctx); err != nil {
//	    return err
//	}
//	// ... perform the call, then:
//	limiter.Observe(remaining)
package ratelimit
