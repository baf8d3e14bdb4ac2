// Package fixture holds the in-memory data served by the mock storefront API.
package fixture

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

const bcryptCost = 10

type account struct {
	user         model.User
	passwordHash []byte
}

// Store is a concurrency-safe in-memory storefront: users, catalog and carts.
type Store struct {
	mu         sync.RWMutex
	accounts   map[string]*account // by lower-cased email
	categories []model.Category
	products   []model.Product
	carts      map[model.ID]*model.Cart // by user id
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*account),
		carts:    make(map[model.ID]*model.Cart),
	}
}

// AddUser registers a user with a bcrypt-hashed password.
func (s *Store) AddUser(user model.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[strings.ToLower(user.Email)] = &account{user: user, passwordHash: hash}
	return nil
}

// AddCategory appends a category to the catalog.
func (s *Store) AddCategory(c model.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, c)
}

// AddProduct appends a product to the catalog.
func (s *Store) AddProduct(p model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
}

// Authenticate checks credentials and returns the user.
func (s *Store) Authenticate(email, password string) (*model.User, error) {
	s.mu.RLock()
	acc, ok := s.accounts[strings.ToLower(email)]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	user := acc.user
	return &user, nil
}

// Categories returns every category.
func (s *Store) Categories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Category{}, s.categories...)
}

// CategoriesByUser returns the categories owned by userID.
func (s *Store) CategoriesByUser(userID model.ID) []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Category{}
	for _, c := range s.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out
}

// Products returns every product.
func (s *Store) Products() []model.Product {
	return s.filterProducts(func(model.Product) bool { return true })
}

// ProductsByCategory returns the products of one category.
func (s *Store) ProductsByCategory(categoryID model.ID) []model.Product {
	return s.filterProducts(func(p model.Product) bool { return p.CategoryID == categoryID })
}

// ProductsByUser returns the products owned by userID.
func (s *Store) ProductsByUser(userID model.ID) []model.Product {
	return s.filterProducts(func(p model.Product) bool { return p.UserID == userID })
}

// Product looks a product up by id.
func (s *Store) Product(id model.ID) (model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.productLocked(id)
	if !ok {
		return model.Product{}, apperrors.ErrProductNotFound
	}
	return p, nil
}

func (s *Store) filterProducts(keep func(model.Product) bool) []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Product{}
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) productLocked(id model.ID) (model.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// Cart returns the user's cart.
func (s *Store) Cart(userID model.ID) (model.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart, ok := s.carts[userID]
	if !ok {
		return model.Cart{}, apperrors.ErrCartNotFound
	}
	return copyCart(cart), nil
}

// CreateCart returns the user's cart, creating an empty one if needed.
func (s *Store) CreateCart(userID model.ID) model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCart(s.cartLocked(userID))
}

// Items returns the lines of the user's cart.
func (s *Store) Items(userID model.ID) ([]model.CartItem, error) {
	cart, err := s.Cart(userID)
	if err != nil {
		return nil, err
	}
	return cart.Items, nil
}

// AddItem adds quantity of a product, creating the cart on first use. The
// unit price is taken from the request when given, else from the catalog.
func (s *Store) AddItem(userID model.ID, item model.CartItem) error {
	if item.Quantity < 1 {
		return apperrors.ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.productLocked(item.ProductID)
	if !ok {
		return apperrors.ErrProductNotFound
	}
	if item.UnitPrice.IsZero() {
		item.UnitPrice = product.EffectivePrice()
	}

	cart := s.cartLocked(userID)
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Quantity += item.Quantity
			cart.Items[i].UnitPrice = item.UnitPrice
			return nil
		}
	}
	cart.Items = append(cart.Items, item)
	return nil
}

// UpdateItem sets the quantity of an existing line.
func (s *Store) UpdateItem(userID, productID model.ID, quantity int) error {
	if quantity < 1 {
		return apperrors.ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	if !ok {
		return apperrors.ErrCartNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			return nil
		}
	}
	return apperrors.ErrItemNotFound
}

// RemoveItem deletes a line from the user's cart.
func (s *Store) RemoveItem(userID, productID model.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	if !ok {
		return apperrors.ErrCartNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrItemNotFound
}

func (s *Store) cartLocked(userID model.ID) *model.Cart {
	cart, ok := s.carts[userID]
	if !ok {
		cart = &model.Cart{ID: model.ID(uuid.NewString()), UserID: userID}
		s.carts[userID] = cart
	}
	return cart
}

func copyCart(c *model.Cart) model.Cart {
	out := *c
	out.Items = append([]model.CartItem{}, c.Items...)
	return out
}
