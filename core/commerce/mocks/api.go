package mocks

import (
	"context"
	"encoding/json"

	"shopify-sync/core/commerce"

	"github.com/stretchr/testify/mock"
)

// API is a mock implementation of commerce.API.
//
// List and Get copy the value given as the first Return argument into dst
// through a JSON round trip, so tests return typed fixtures:
//
//	api.On("List", mock.Anything, commerce.Products, mock.Anything, 1, 250, mock.Anything).
//		Return([]commerce.Product{...}, nil)
type API struct {
	mock.Mock
}

func (m *API) Count(ctx context.Context, res commerce.Resource, filter commerce.Filter) (int, error) {
	args := m.Called(ctx, res, filter)
	return args.Int(0), args.Error(1)
}

func (m *API) List(ctx context.Context, res commerce.Resource, filter commerce.Filter, page, limit int, dst any) error {
	args := m.Called(ctx, res, filter, page, limit, dst)
	return fill(args.Get(0), dst, args.Error(1))
}

func (m *API) Get(ctx context.Context, res commerce.Resource, id int64, dst any) error {
	args := m.Called(ctx, res, id, dst)
	return fill(args.Get(0), dst, args.Error(1))
}

func (m *API) Update(ctx context.Context, res commerce.Resource, id int64, fields map[string]any, dst any) error {
	args := m.Called(ctx, res, id, fields, dst)
	return args.Error(0)
}

func (m *API) Create(ctx context.Context, sub commerce.Resource, parentID int64, fields map[string]any, dst any) error {
	args := m.Called(ctx, sub, parentID, fields, dst)
	return args.Error(0)
}

func fill(src, dst any, err error) error {
	if err != nil || src == nil || dst == nil {
		return err
	}
	data, mErr := json.Marshal(src)
	if mErr != nil {
		return mErr
	}
	return json.Unmarshal(data, dst)
}
