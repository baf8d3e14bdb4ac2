package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

func newTestCartService(t *testing.T) (*fakeAPI, CartService) {
	api := newFakeAPI(t)
	gw, sessions, _ := testClient(api)
	require.NoError(t, sessions.Save(context.Background(), model.LoginResponse{Token: "tok", User: &model.User{Role: "customer"}}))
	return api, NewCartService(gw, testLogger())
}

func TestCartService_GetCart(t *testing.T) {
	api, svc := newTestCartService(t)
	api.respond(http.MethodGet, "/cart/", http.StatusOK, `{"id":3,"items":[{"product_id":1,"quantity":2,"unit_price":4.5}]}`)

	cart, err := svc.GetCart(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, model.ID("3"), cart.ID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "Bearer tok", api.calls()[0].header.Get("Authorization"))
}

func TestCartService_GetCartFailure(t *testing.T) {
	api, svc := newTestCartService(t)
	api.respond(http.MethodGet, "/cart/", http.StatusNotFound, `{"detail":"Cart not found"}`)

	_, err := svc.GetCart(context.Background(), "")

	assert.ErrorIs(t, err, apperrors.ErrCartFetch)
	assert.EqualError(t, err, apperrors.ErrCartFetch.Error())
}

func TestCartService_EnsureCart(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(api *fakeAPI)
		expectID  model.ID
		expectErr error
		paths     []string
	}{
		{
			name: "existing cart",
			setup: func(api *fakeAPI) {
				api.respond(http.MethodGet, "/cart/", http.StatusOK, `{"id":1}`)
			},
			expectID: "1",
			paths:    []string{"GET /cart/"},
		},
		{
			name: "cart without id falls through to create",
			setup: func(api *fakeAPI) {
				api.respond(http.MethodGet, "/cart/", http.StatusOK, `{}`)
				api.respond(http.MethodPost, "/jsonar", http.StatusOK, `{"id":2}`)
			},
			expectID: "2",
			paths:    []string{"GET /cart/", "POST /jsonar"},
		},
		{
			name: "fetch failure falls through to create",
			setup: func(api *fakeAPI) {
				api.respond(http.MethodGet, "/cart/", http.StatusInternalServerError, "")
				api.respond(http.MethodPost, "/jsonar", http.StatusOK, `{"id":"abc"}`)
			},
			expectID: "abc",
			paths:    []string{"GET /cart/", "POST /jsonar"},
		},
		{
			name: "create failure is returned",
			setup: func(api *fakeAPI) {
				api.respond(http.MethodGet, "/cart/", http.StatusInternalServerError, "")
				api.respond(http.MethodPost, "/jsonar", http.StatusInternalServerError, "")
			},
			expectErr: apperrors.ErrCartCreate,
			paths:     []string{"GET /cart/", "POST /jsonar"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, svc := newTestCartService(t)
			tt.setup(api)

			cart, err := svc.EnsureCart(context.Background())

			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectID, cart.ID)
			}
			assert.Equal(t, tt.paths, api.paths())
		})
	}
}

func TestCartService_Items(t *testing.T) {
	api, svc := newTestCartService(t)
	api.respond(http.MethodGet, "/cart/items", http.StatusOK, `[{"product_id":5,"quantity":1,"unit_price":"3.00"}]`)

	items, err := svc.Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, model.ID("5"), items[0].ProductID)
	assert.Equal(t, "3", items[0].UnitPrice.String())

	api.respond(http.MethodGet, "/cart/items", http.StatusUnauthorized, "")
	_, err = svc.Items(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrCartItemsFetch)
}

func TestCartService_Mutations(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		status     int
		response   string
		call       func(CartService) (bool, error)
		expectBody string
		expectMsg  string
		expectIs   error
	}{
		{
			name:       "add item 204",
			method:     http.MethodPost,
			path:       "/cart/items",
			status:     http.StatusNoContent,
			call:       func(s CartService) (bool, error) { return s.AddItem(context.Background(), model.CartItem{ProductID: "1", Quantity: 2, UnitPrice: model.NewPrice(9.9)}) },
			expectBody: `{"product_id":1,"quantity":2,"unit_price":9.9}`,
		},
		{
			name:      "update quantity 422 surfaces server message",
			method:    http.MethodPut,
			path:      "/cart/items",
			status:    http.StatusUnprocessableEntity,
			response:  `{"detail":[{"msg":"Quantity too low"}]}`,
			call:      func(s CartService) (bool, error) { return s.UpdateQuantity(context.Background(), "1", 0) },
			expectMsg: "Quantity too low",
			expectIs:  apperrors.ErrValidation,
		},
		{
			name:      "remove item 422 without detail uses generic message",
			method:    http.MethodDelete,
			path:      "/cart/items",
			status:    http.StatusUnprocessableEntity,
			response:  `{}`,
			call:      func(s CartService) (bool, error) { return s.RemoveItem(context.Background(), "1") },
			expectMsg: apperrors.ErrValidation.Error(),
			expectIs:  apperrors.ErrValidation,
		},
		{
			name:       "remove item 204",
			method:     http.MethodDelete,
			path:       "/cart/items",
			status:     http.StatusNoContent,
			call:       func(s CartService) (bool, error) { return s.RemoveItem(context.Background(), "8") },
			expectBody: `{"product_id":8}`,
		},
		{
			name:      "update quantity other status is generic",
			method:    http.MethodPut,
			path:      "/cart/items",
			status:    http.StatusInternalServerError,
			call:      func(s CartService) (bool, error) { return s.UpdateQuantity(context.Background(), "1", 3) },
			expectMsg: apperrors.ErrCartItemUpdate.Error(),
			expectIs:  apperrors.ErrCartItemUpdate,
		},
		{
			name:       "legacy add 204",
			method:     http.MethodPost,
			path:       "/items",
			status:     http.StatusNoContent,
			call:       func(s CartService) (bool, error) { return s.AddProduct(context.Background(), "4", 1, model.NewPrice(2)) },
			expectBody: `{"product_id":4,"quantity":1,"unit_price":2}`,
		},
		{
			name:      "legacy update does not parse 422",
			method:    http.MethodPut,
			path:      "/items",
			status:    http.StatusUnprocessableEntity,
			response:  `{"detail":[{"msg":"Quantity too low"}]}`,
			call:      func(s CartService) (bool, error) { return s.UpdateProduct(context.Background(), "4", 0) },
			expectMsg: apperrors.ErrCartItemUpdate.Error(),
			expectIs:  apperrors.ErrCartItemUpdate,
		},
		{
			name:      "legacy add 200 is not success",
			method:    http.MethodPost,
			path:      "/items",
			status:    http.StatusOK,
			response:  `{}`,
			call:      func(s CartService) (bool, error) { return s.AddProduct(context.Background(), "4", 1, model.Price{}) },
			expectMsg: apperrors.ErrCartItemAdd.Error(),
			expectIs:  apperrors.ErrCartItemAdd,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, svc := newTestCartService(t)
			api.respond(tt.method, tt.path, tt.status, tt.response)

			ok, err := tt.call(svc)

			if tt.expectMsg != "" {
				assert.False(t, ok)
				assert.EqualError(t, err, tt.expectMsg)
				assert.ErrorIs(t, err, tt.expectIs)
				return
			}
			require.NoError(t, err)
			assert.True(t, ok)
			req := api.calls()[0]
			assert.JSONEq(t, tt.expectBody, req.body)
			assert.Equal(t, "application/json", req.header.Get("Content-Type"))
			assert.Equal(t, "Bearer tok", req.header.Get("Authorization"))
		})
	}
}

func TestCartService_NetworkErrorPropagates(t *testing.T) {
	api, svc := newTestCartService(t)
	api.server.Close()

	ok, err := svc.AddItem(context.Background(), model.CartItem{ProductID: "1", Quantity: 1})

	assert.False(t, ok)
	require.Error(t, err)
	var apiErr *apperrors.APIError
	assert.NotErrorAs(t, err, &apiErr)
}
