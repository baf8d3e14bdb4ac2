package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	apperrors "storefront/internal/errors"
	"storefront/internal/gateway"
	"storefront/internal/model"
)

// DefaultAdminUserID is the admin whose catalog the storefront shows.
const DefaultAdminUserID = "231"

// CatalogService reads categories and products.
type CatalogService interface {
	Categories(ctx context.Context) ([]model.Category, error)
	AllCategories(ctx context.Context) ([]model.Category, error)
	CategoriesByAdmin(ctx context.Context, userID string) ([]model.Category, error)
	CategoriesByDefaultAdmin(ctx context.Context) ([]model.Category, error)

	Products(ctx context.Context) ([]model.Product, error)
	Product(ctx context.Context, id model.ID) (*model.Product, error)
	ProductsByCategory(ctx context.Context, categoryID model.ID) ([]model.Product, error)
	ProductsByDefaultAdmin(ctx context.Context) ([]model.Product, error)
	ProductsForCategories(ctx context.Context, categories []model.Category) ([]model.Product, error)
}

type catalogService struct {
	gw  gateway.Doer
	log logrus.FieldLogger
}

// NewCatalogService creates a new catalog client.
func NewCatalogService(gw gateway.Doer, log logrus.FieldLogger) CatalogService {
	return &catalogService{gw: gw, log: log}
}

func (s *catalogService) get(ctx context.Context, path string, op error, out interface{}) error {
	return fetchJSON(ctx, s.gw, path, gateway.Request{Header: gateway.Accept(mediaJSON)}, op, out)
}

func (s *catalogService) categories(ctx context.Context, path string, op error) ([]model.Category, error) {
	categories := []model.Category{}
	if err := s.get(ctx, path, op, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *catalogService) products(ctx context.Context, path string, op error) ([]model.Product, error) {
	products := []model.Product{}
	if err := s.get(ctx, path, op, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Categories uses the alternate categories path.
func (s *catalogService) Categories(ctx context.Context) ([]model.Category, error) {
	return s.categories(ctx, "/jsoner", apperrors.ErrCategoriesFetch)
}

func (s *catalogService) AllCategories(ctx context.Context) ([]model.Category, error) {
	return s.categories(ctx, "/categories/", apperrors.ErrAllCategoriesFetch)
}

func (s *catalogService) CategoriesByAdmin(ctx context.Context, userID string) ([]model.Category, error) {
	return s.categories(ctx, "/categories/user/"+url.PathEscape(userID), apperrors.ErrAdminCategories)
}

func (s *catalogService) CategoriesByDefaultAdmin(ctx context.Context) ([]model.Category, error) {
	return s.CategoriesByAdmin(ctx, DefaultAdminUserID)
}

func (s *catalogService) Products(ctx context.Context) ([]model.Product, error) {
	return s.products(ctx, "/products", apperrors.ErrProductsFetch)
}

func (s *catalogService) Product(ctx context.Context, id model.ID) (*model.Product, error) {
	var product model.Product
	if err := s.get(ctx, "/products/"+url.PathEscape(id.String()), apperrors.ErrProductFetch, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *catalogService) ProductsByCategory(ctx context.Context, categoryID model.ID) ([]model.Product, error) {
	return s.products(ctx, "/products/category/"+url.PathEscape(categoryID.String()), apperrors.ErrCategoryProducts)
}

func (s *catalogService) ProductsByDefaultAdmin(ctx context.Context) ([]model.Product, error) {
	return s.products(ctx, "/products/user/"+DefaultAdminUserID, apperrors.ErrAdminProducts)
}

// ProductsForCategories fetches each category's products one after another,
// in order, and concatenates them. The first failure aborts the batch.
func (s *catalogService) ProductsForCategories(ctx context.Context, categories []model.Category) ([]model.Product, error) {
	all := []model.Product{}
	for _, category := range categories {
		products, err := s.ProductsByCategory(ctx, category.ID)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", category.ID, err)
		}
		all = append(all, products...)
	}
	s.log.WithFields(logrus.Fields{
		"categories": len(categories),
		"products":   len(all),
	}).Debug("fetched products for categories")
	return all, nil
}
