// Package commerce is the client for the remote commerce platform (the
// Shopify Admin REST API).
//
// API is the narrow surface the sync tasks use: Count, List, Get, Update and
// Create over a handful of resource kinds. Client implements it with the
// Fiber HTTP agent and basic auth, and reports the call budget from the
// X-Shopify-Shop-Api-Call-Limit header to the rate limiter after every call.
//
// Collection adapts a filtered resource to reconcile.Source so catalogs and
// order sets are enumerated by the generic engine.
//
// # Usage
//
//	limiter := ratelimit.NewFromConfig(cfg.RateLimit)
//	client, err := commerce.NewClient(cfg.Shopify, limiter, log)
//	products, err := commerce.FetchAll(ctx, commerce.Collection[commerce.Product]{
//	    API:      client,
//	    Resource: commerce.Products,
//	    Fields:   "id,variants",
//	}, 250, limiter)
package commerce
