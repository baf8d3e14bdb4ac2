package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "storefront/internal/errors"
	"storefront/internal/fixture"
	"storefront/internal/model"
)

// CatalogHandler serves categories and products. All routes are public.
type CatalogHandler struct {
	store *fixture.Store
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(store *fixture.Store) *CatalogHandler {
	return &CatalogHandler{store: store}
}

// ListCategories godoc
// @Summary List all categories
// @Description Also served at /jsoner.
// @Tags catalog
// @Produce json
// @Success 200 {array} model.Category
// @Router /categories/ [get]
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Categories())
}

// CategoriesByUser godoc
// @Summary List the categories owned by an admin
// @Tags catalog
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} model.Category
// @Router /categories/user/{id} [get]
func (h *CatalogHandler) CategoriesByUser(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.CategoriesByUser(model.ID(c.Param("id"))))
}

// ListProducts godoc
// @Summary List all products
// @Tags catalog
// @Produce json
// @Success 200 {array} model.Product
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Products())
}

// GetProduct godoc
// @Summary Get a product
// @Tags catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} model.Product
// @Failure 404 {object} errors.DetailResponse
// @Router /products/{id} [get]
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.store.Product(model.ID(c.Param("id")))
	if err != nil {
		return c.JSON(http.StatusNotFound, apperrors.DetailResponse{Detail: err.Error()})
	}
	return c.JSON(http.StatusOK, product)
}

// ProductsByCategory godoc
// @Summary List the products of a category
// @Tags catalog
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {array} model.Product
// @Router /products/category/{id} [get]
func (h *CatalogHandler) ProductsByCategory(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.ProductsByCategory(model.ID(c.Param("id"))))
}

// ProductsByUser godoc
// @Summary List the products owned by an admin
// @Tags catalog
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} model.Product
// @Router /products/user/{id} [get]
func (h *CatalogHandler) ProductsByUser(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.ProductsByUser(model.ID(c.Param("id"))))
}
