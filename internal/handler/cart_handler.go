package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"storefront/internal/fixture"
	"storefront/internal/model"
)

// CartHandler handles the cart and cart item endpoints. Every route needs a
// valid bearer token.
type CartHandler struct {
	store *fixture.Store
	log   logrus.FieldLogger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(store *fixture.Store, log logrus.FieldLogger) *CartHandler {
	return &CartHandler{store: store, log: log}
}

// GetCart godoc
// @Summary Get the user's cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Cart
// @Failure 401 {object} errors.DetailResponse
// @Failure 404 {object} errors.DetailResponse
// @Router /cart/ [get]
func (h *CartHandler) GetCart(c echo.Context) error {
	userID, ok := currentUser(c)
	if !ok {
		return Unauthorized(c, nil)
	}
	cart, err := h.store.Cart(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cart)
}

// CreateCart godoc
// @Summary Create the user's cart
// @Description Returns the existing cart when the user already has one. Also served at /jsonar.
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Cart
// @Failure 401 {object} errors.DetailResponse
// @Router /cart/ [post]
func (h *CartHandler) CreateCart(c echo.Context) error {
	userID, ok := currentUser(c)
	if !ok {
		return Unauthorized(c, nil)
	}
	cart := h.store.CreateCart(userID)
	h.log.WithFields(logrus.Fields{"user_id": userID, "cart_id": cart.ID}).Debug("cart ready")
	return c.JSON(http.StatusOK, cart)
}

// ListItems godoc
// @Summary List cart items
// @Description An empty list is returned when the user has no cart.
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.CartItem
// @Failure 401 {object} errors.DetailResponse
// @Router /cart/items [get]
func (h *CartHandler) ListItems(c echo.Context) error {
	userID, ok := currentUser(c)
	if !ok {
		return Unauthorized(c, nil)
	}
	cart, err := h.store.Cart(userID)
	if err != nil {
		return c.JSON(http.StatusOK, []model.CartItem{})
	}
	items := cart.Items
	if items == nil {
		items = []model.CartItem{}
	}
	return c.JSON(http.StatusOK, items)
}

// AddItem godoc
// @Summary Add a product to the cart
// @Description Quantities accumulate. Also served at POST /items.
// @Tags cart
// @Accept json
// @Security BearerAuth
// @Param request body model.CartItem true "Item"
// @Success 204
// @Failure 401 {object} errors.DetailResponse
// @Failure 422 {object} errors.ValidationResponse
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	userID, ok := currentUser(c)
	if !ok {
		return Unauthorized(c, nil)
	}
	var req model.CartItem
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	if err := h.store.AddItem(userID, req); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateItem godoc
// @Summary Set the quantity of a cart line
// @Description Also served at PUT /items.
// @Tags cart
// @Accept json
// @Security BearerAuth
// @Param request body model.UpdateItemRequest true "Item"
// @Success 204
// @Failure 401 {object} errors.DetailResponse
// @Failure 404 {object} errors.DetailResponse
// @Failure 422 {object} errors.ValidationResponse
// @Router /cart/items [put]
func (h *CartHandler) UpdateItem(c echo.Context) error {
	userID, ok := currentUser(c)
	if !ok {
		return Unauthorized(c, nil)
	}
	var req model.UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	if err := h.store.UpdateItem(userID, req.ProductID, req.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveItem godoc
// @Summary Remove a cart line
// @Tags cart
// @Accept json
// @Security BearerAuth
// @Param request body model.RemoveItemRequest true "Item"
// @Success 204
// @Failure 401 {object} errors.DetailResponse
// @Failure 404 {object} errors.DetailResponse
// @Failure 422 {object} errors.ValidationResponse
// @Router /cart/items [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, ok := currentUser(c)
	if !ok {
		return Unauthorized(c, nil)
	}
	var req model.RemoveItemRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	if err := h.store.RemoveItem(userID, req.ProductID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
