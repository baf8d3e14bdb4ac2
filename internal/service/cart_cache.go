package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"storefront/internal/model"
	"storefront/internal/storage"
)

// CartCache is the local mirror of cart lines. It is independent of the
// server cart and is persisted after every mutation.
type CartCache interface {
	Items(ctx context.Context) ([]model.CartLine, error)
	AddItem(ctx context.Context, product model.Product, quantity int) ([]model.CartLine, error)
	UpdateItemQuantity(ctx context.Context, productID model.ID, quantity int) ([]model.CartLine, error)
	RemoveItem(ctx context.Context, productID model.ID) ([]model.CartLine, error)
	Clear(ctx context.Context) error
	Total(ctx context.Context) (decimal.Decimal, error)
}

type cartCache struct {
	store storage.Store
	log   logrus.FieldLogger
}

// NewCartCache creates a cart cache over store.
func NewCartCache(store storage.Store, log logrus.FieldLogger) CartCache {
	return &cartCache{store: store, log: log}
}

// Items returns the cached lines, or an empty list when nothing is cached.
func (c *cartCache) Items(ctx context.Context) ([]model.CartLine, error) {
	raw, ok, err := c.store.Get(ctx, storage.KeyCartItems)
	if err != nil {
		return nil, fmt.Errorf("read cart cache: %w", err)
	}
	items := []model.CartLine{}
	if !ok || raw == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("parse cart cache: %w", err)
	}
	if items == nil {
		items = []model.CartLine{}
	}
	return items, nil
}

// AddItem merges product into the cache. A quantity below one counts as one.
// Repeat adds accumulate and refresh the product data on the line.
func (c *cartCache) AddItem(ctx context.Context, product model.Product, quantity int) ([]model.CartLine, error) {
	items, err := c.Items(ctx)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		quantity = 1
	}

	idx := indexOf(items, product.ID)
	if idx != -1 {
		current := items[idx].Quantity
		if current < 0 {
			current = 0
		}
		items[idx].Quantity = current + model.Quantity(quantity)
		items[idx].Name = product.Name
		items[idx].UnitPrice = product.EffectivePrice()
		items[idx].ImagePath = product.ImagePath
	} else {
		items = append(items, model.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.EffectivePrice(),
			ImagePath: product.ImagePath,
			Quantity:  model.Quantity(quantity),
		})
	}

	if err := c.save(ctx, items); err != nil {
		return nil, err
	}
	c.log.WithFields(logrus.Fields{
		"product_id": product.ID,
		"quantity":   quantity,
	}).Debug("cart cache add")
	return items, nil
}

// UpdateItemQuantity sets a line's quantity, dropping the line when the
// quantity is not positive. Unknown products leave the cache untouched.
func (c *cartCache) UpdateItemQuantity(ctx context.Context, productID model.ID, quantity int) ([]model.CartLine, error) {
	items, err := c.Items(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(items, productID)
	if idx == -1 {
		return items, nil
	}

	if quantity <= 0 {
		items = append(items[:idx], items[idx+1:]...)
	} else {
		items[idx].Quantity = model.Quantity(quantity)
	}
	if err := c.save(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveItem drops the line for productID, if any.
func (c *cartCache) RemoveItem(ctx context.Context, productID model.ID) ([]model.CartLine, error) {
	items, err := c.Items(ctx)
	if err != nil {
		return nil, err
	}
	kept := items[:0]
	for _, line := range items {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	if err := c.save(ctx, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Clear deletes the cache key entirely.
func (c *cartCache) Clear(ctx context.Context) error {
	if err := c.store.Delete(ctx, storage.KeyCartItems); err != nil {
		return fmt.Errorf("clear cart cache: %w", err)
	}
	return nil
}

// Total sums the line subtotals.
func (c *cartCache) Total(ctx context.Context) (decimal.Decimal, error) {
	items, err := c.Items(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, line := range items {
		total = total.Add(line.Subtotal())
	}
	return total, nil
}

func (c *cartCache) save(ctx context.Context, items []model.CartLine) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart cache: %w", err)
	}
	if err := c.store.Set(ctx, storage.KeyCartItems, string(raw)); err != nil {
		return fmt.Errorf("save cart cache: %w", err)
	}
	return nil
}

func indexOf(items []model.CartLine, productID model.ID) int {
	for i, line := range items {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
