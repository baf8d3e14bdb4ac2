package service

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	apperrors "storefront/internal/errors"
	"storefront/internal/gateway"
	"storefront/internal/model"
)

// CartService talks to the server-owned cart. The session token is attached
// by the gateway on every call, so login and logout between calls are honoured.
type CartService interface {
	GetCart(ctx context.Context, token string) (*model.Cart, error)
	CreateCart(ctx context.Context) (*model.Cart, error)
	EnsureCart(ctx context.Context) (*model.Cart, error)
	Items(ctx context.Context) ([]model.CartItem, error)

	// AddProduct and UpdateProduct use the older /items endpoints.
	AddProduct(ctx context.Context, productID model.ID, quantity int, unitPrice model.Price) (bool, error)
	UpdateProduct(ctx context.Context, productID model.ID, quantity int) (bool, error)

	AddItem(ctx context.Context, item model.CartItem) (bool, error)
	UpdateQuantity(ctx context.Context, productID model.ID, quantity int) (bool, error)
	RemoveItem(ctx context.Context, productID model.ID) (bool, error)
}

type cartService struct {
	gw  gateway.Doer
	log logrus.FieldLogger
}

// NewCartService creates a new remote cart client.
func NewCartService(gw gateway.Doer, log logrus.FieldLogger) CartService {
	return &cartService{gw: gw, log: log}
}

// GetCart fetches the user's cart. token is optional; when the session holds
// a token the gateway replaces it anyway.
func (s *cartService) GetCart(ctx context.Context, token string) (*model.Cart, error) {
	header := gateway.Accept(mediaJSON)
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	var cart model.Cart
	if err := fetchJSON(ctx, s.gw, "/cart/", gateway.Request{Header: header}, apperrors.ErrCartFetch, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// CreateCart creates a cart through the alternate creation endpoint.
func (s *cartService) CreateCart(ctx context.Context) (*model.Cart, error) {
	var cart model.Cart
	req := gateway.Request{Method: http.MethodPost, Header: gateway.Accept(mediaJSON)}
	if err := fetchJSON(ctx, s.gw, "/jsonar", req, apperrors.ErrCartCreate, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// EnsureCart returns the existing cart, creating one when the fetch fails or
// yields no id. It is a fallback chain, not a transaction.
func (s *cartService) EnsureCart(ctx context.Context) (*model.Cart, error) {
	cart, err := s.GetCart(ctx, "")
	if err == nil && cart != nil && !cart.ID.IsZero() {
		return cart, nil
	}
	if err != nil {
		s.log.WithError(err).Debug("cart fetch failed, creating a new cart")
	}
	return s.CreateCart(ctx)
}

// Items lists the lines of the server cart.
func (s *cartService) Items(ctx context.Context) ([]model.CartItem, error) {
	items := []model.CartItem{}
	req := gateway.Request{Method: http.MethodGet, Header: gateway.Accept(mediaJSON)}
	if err := fetchJSON(ctx, s.gw, "/cart/items", req, apperrors.ErrCartItemsFetch, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *cartService) AddProduct(ctx context.Context, productID model.ID, quantity int, unitPrice model.Price) (bool, error) {
	return sendMutation(ctx, s.gw, mutation{
		method: http.MethodPost,
		path:   "/items",
		header: jsonHeaders(mediaJSON),
		body:   model.CartItem{ProductID: productID, Quantity: quantity, UnitPrice: unitPrice},
		op:     apperrors.ErrCartItemAdd,
	})
}

func (s *cartService) UpdateProduct(ctx context.Context, productID model.ID, quantity int) (bool, error) {
	return sendMutation(ctx, s.gw, mutation{
		method: http.MethodPut,
		path:   "/items",
		header: jsonHeaders(mediaJSON),
		body:   model.UpdateItemRequest{ProductID: productID, Quantity: quantity},
		op:     apperrors.ErrCartItemUpdate,
	})
}

func (s *cartService) AddItem(ctx context.Context, item model.CartItem) (bool, error) {
	return sendMutation(ctx, s.gw, mutation{
		method:     http.MethodPost,
		path:       "/cart/items",
		header:     jsonHeaders("*/*"),
		body:       item,
		op:         apperrors.ErrCartItemAdd,
		validation: true,
	})
}

func (s *cartService) UpdateQuantity(ctx context.Context, productID model.ID, quantity int) (bool, error) {
	return sendMutation(ctx, s.gw, mutation{
		method:     http.MethodPut,
		path:       "/cart/items",
		header:     jsonHeaders(mediaJSON),
		body:       model.UpdateItemRequest{ProductID: productID, Quantity: quantity},
		op:         apperrors.ErrCartItemUpdate,
		validation: true,
	})
}

func (s *cartService) RemoveItem(ctx context.Context, productID model.ID) (bool, error) {
	return sendMutation(ctx, s.gw, mutation{
		method:     http.MethodDelete,
		path:       "/cart/items",
		header:     jsonHeaders(mediaJSON),
		body:       model.RemoveItemRequest{ProductID: productID},
		op:         apperrors.ErrCartItemRemove,
		validation: true,
	})
}
