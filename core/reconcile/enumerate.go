package reconcile

import (
	"context"
	"fmt"
)

// MaxPageSize is the largest page the commerce platform serves.
const MaxPageSize = 250

// Source is a paged remote collection. Count must apply the same filter as
// Page but never the page size or field projection.
type Source[T any] interface {
	// Name identifies the collection in errors (e.g. "products").
	Name() string

	// Count returns the total number of matching entities.
	Count(ctx context.Context) (int, error)

	// Page returns the 1-based page of matching entities.
	Page(ctx context.Context, page, limit int) ([]T, error)
}

// Enumerate exhaustively pages through src and returns every entity.
//
// The total is queried first, then pages are requested in order with
// page = fetched/pageSize + 1 until fetched >= count. The throttle is
// consulted before the count call and before every page call. Any failed
// call aborts the enumeration with a RemoteServiceError and no partial
// result is returned.
//
// A page that comes back empty before the count is reached ends the loop:
// the collection shrank while being read, which is an accepted race.
func Enumerate[T any](ctx context.Context, src Source[T], pageSize int, throttle Throttle) ([]T, error) {
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	if err := wait(ctx, throttle); err != nil {
		return nil, err
	}
	count, err := src.Count(ctx)
	if err != nil {
		return nil, NewRemoteServiceError(fmt.Sprintf("count %s", src.Name()), err)
	}

	results := make([]T, 0, count)
	for len(results) < count {
		page := len(results)/pageSize + 1

		if err := wait(ctx, throttle); err != nil {
			return nil, err
		}
		items, err := src.Page(ctx, page, pageSize)
		if err != nil {
			return nil, NewRemoteServiceError(fmt.Sprintf("list %s page %d", src.Name(), page), err)
		}
		if len(items) == 0 {
			break
		}
		results = append(results, items...)
	}

	return results, nil
}
