package commerce

import (
	"context"
	"strconv"

	"shopify-sync/core/reconcile"
)

// API is the remote commerce platform as the sync tasks consume it.
// Every response reports the remaining call budget to the rate limiter the
// implementation was built with.
type API interface {
	// Count returns the number of resources matching filter.
	Count(ctx context.Context, res Resource, filter Filter) (int, error)

	// List decodes one page of resources matching filter into dst (a slice pointer).
	List(ctx context.Context, res Resource, filter Filter, page, limit int, dst any) error

	// Get decodes the resource with id into dst.
	Get(ctx context.Context, res Resource, id int64, dst any) error

	// Update changes fields of the resource with id. dst may be nil.
	Update(ctx context.Context, res Resource, id int64, fields map[string]any, dst any) error

	// Create creates a sub-resource under parentID. dst may be nil.
	Create(ctx context.Context, sub Resource, parentID int64, fields map[string]any, dst any) error
}

// Collection adapts a filtered remote collection to reconcile.Source.
// Fields is a projection applied to pages only; Count never receives it.
type Collection[T any] struct {
	API      API
	Resource Resource
	Filter   Filter
	Fields   string
}

// Name implements reconcile.Source.
func (c Collection[T]) Name() string {
	return string(c.Resource)
}

// Count implements reconcile.Source.
func (c Collection[T]) Count(ctx context.Context) (int, error) {
	return c.API.Count(ctx, c.Resource, c.Filter)
}

// Page implements reconcile.Source.
func (c Collection[T]) Page(ctx context.Context, page, limit int) ([]T, error) {
	filter := make(Filter, len(c.Filter)+1)
	for k, v := range c.Filter {
		filter[k] = v
	}
	if c.Fields != "" {
		filter["fields"] = c.Fields
	}

	var items []T
	if err := c.API.List(ctx, c.Resource, filter, page, limit, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FetchAll enumerates the whole collection under throttle.
func FetchAll[T any](ctx context.Context, c Collection[T], pageSize int, throttle reconcile.Throttle) ([]T, error) {
	return reconcile.Enumerate[T](ctx, c, pageSize, throttle)
}

// ID formats a platform ID for logs.
func ID(id int64) string {
	return strconv.FormatInt(id, 10)
}
