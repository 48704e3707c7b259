// Package reconcile provides the generic reconciliation and sync engine used
// by every task: enumerating a remote collection, projecting it into an
// identifier map, grouping feed rows, and applying mutations under the
// remote rate limit.
//
// The engine is built to stay correct when the two views of the catalog
// (the platform's records and the feed files) disagree:
//   - Enumerations are all-or-nothing; a failed page aborts with a
//     RemoteServiceError and no partial catalog is ever diffed.
//   - Lookup misses and malformed rows are Warnings, never aborts.
//   - Mutations are only planned when a field actually differs.
//
// # Architecture
//
// 1. Enumerate: count first, then page sequentially, consulting the Throttle
// before each call.
//
// 2. BuildIndex: project entities (or their children, e.g. variants) into an
// Index keyed by a normalized business key. Last writer wins; collisions are
// recorded so that matching that requires uniqueness can fail loudly.
//
// 3. GroupRows: partition flat feed rows into higher level operations (one
// fulfillment per PO number), dropping rows without a key.
//
// 4. Apply: execute mutations either Independent (bounded worker pool, each
// failure isolated) or Sequential (issuance order, fail-fast).
//
// # Usage Example
//
//	variants, err := reconcile.Enumerate[commerce.Product](ctx, src, 250, limiter)
//	index := reconcile.BuildIndex(products, reconcile.Projection[commerce.Product, commerce.Variant, Entry]{...})
//	result := reconcile.Apply(ctx, mutations, reconcile.ApplyOptions{
//	    Discipline: reconcile.Independent,
//	    Throttle:   limiter,
//	}, apply)
package reconcile
