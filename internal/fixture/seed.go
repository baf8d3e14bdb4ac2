package fixture

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"storefront/internal/model"
)

// Demo accounts created by Default.
const (
	AdminEmail       = "admin@storefront.test"
	AdminPassword    = "admin123"
	CustomerEmail    = "customer@storefront.test"
	CustomerPassword = "customer123"
)

// Data is the on-disk fixture format.
type Data struct {
	Users      []SeedUser       `yaml:"users"`
	Categories []model.Category `yaml:"categories"`
	Products   []SeedProduct    `yaml:"products"`
}

// SeedUser is a user plus its plaintext password.
type SeedUser struct {
	ID        string `yaml:"id"`
	Role      string `yaml:"role"`
	Name      string `yaml:"name"`
	Email     string `yaml:"email"`
	ImagePath string `yaml:"image_path"`
	Password  string `yaml:"password"`
}

// SeedProduct is a catalog product with a float price.
type SeedProduct struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	UnitPrice   float64 `yaml:"unit_price"`
	ImagePath   string  `yaml:"image_path"`
	Stock       int     `yaml:"stock"`
	CategoryID  string  `yaml:"category_id"`
	UserID      string  `yaml:"user_id"`
}

// Load fills s with data.
func (s *Store) Load(data Data) error {
	for _, u := range data.Users {
		user := model.User{
			ID:        model.ID(u.ID),
			Role:      u.Role,
			Name:      u.Name,
			Email:     u.Email,
			ImagePath: u.ImagePath,
		}
		if err := s.AddUser(user, u.Password); err != nil {
			return fmt.Errorf("add user %s: %w", u.Email, err)
		}
	}
	for _, c := range data.Categories {
		s.AddCategory(c)
	}
	for _, p := range data.Products {
		s.AddProduct(model.Product{
			ID:          model.ID(p.ID),
			Name:        p.Name,
			Description: p.Description,
			UnitPrice:   model.NewPrice(p.UnitPrice),
			ImagePath:   p.ImagePath,
			Stock:       p.Stock,
			CategoryID:  model.ID(p.CategoryID),
			UserID:      model.ID(p.UserID),
		})
	}
	return nil
}

// ReadData decodes a YAML fixture.
func ReadData(r io.Reader) (Data, error) {
	var data Data
	if err := yaml.NewDecoder(r).Decode(&data); err != nil {
		return Data{}, fmt.Errorf("decode fixture: %w", err)
	}
	return data, nil
}

// DefaultData is the built-in demo storefront. Admin 231 owns the
// default catalog.
func DefaultData() Data {
	return Data{
		Users: []SeedUser{
			{ID: "231", Role: "admin", Name: "Store Admin", Email: AdminEmail, Password: AdminPassword, ImagePath: "/static/users/231.png"},
			{ID: "17", Role: "customer", Name: "Jane Customer", Email: CustomerEmail, Password: CustomerPassword},
		},
		Categories: []model.Category{
			{ID: "1", Name: "Coffee", Description: "Beans and ground coffee", UserID: "231"},
			{ID: "2", Name: "Tea", Description: "Loose leaf and bags", UserID: "231"},
			{ID: "3", Name: "Equipment", Description: "Brewers and grinders", UserID: "231"},
			{ID: "4", Name: "Snacks", UserID: "17"},
		},
		Products: []SeedProduct{
			{ID: "101", Name: "House Blend", UnitPrice: 12.5, Stock: 40, CategoryID: "1", UserID: "231", ImagePath: "/static/products/101.png"},
			{ID: "102", Name: "Ethiopia Yirgacheffe", UnitPrice: 16.75, Stock: 12, CategoryID: "1", UserID: "231", ImagePath: "/static/products/102.png"},
			{ID: "201", Name: "Sencha", UnitPrice: 9.99, Stock: 25, CategoryID: "2", UserID: "231"},
			{ID: "301", Name: "Pour-over Kettle", Description: "1L gooseneck", UnitPrice: 39, Stock: 5, CategoryID: "3", UserID: "231"},
			{ID: "401", Name: "Shortbread", UnitPrice: 3.2, Stock: 100, CategoryID: "4", UserID: "17"},
		},
	}
}

// Default returns a store loaded with DefaultData.
func Default() (*Store, error) {
	s := NewStore()
	if err := s.Load(DefaultData()); err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot builds fixture data from a live catalog. Users cannot be read
// back from the API, so the demo accounts are used.
func Snapshot(categories []model.Category, products []model.Product) Data {
	data := Data{
		Users:      DefaultData().Users,
		Categories: categories,
		Products:   make([]SeedProduct, 0, len(products)),
	}
	for _, p := range products {
		data.Products = append(data.Products, SeedProduct{
			ID:          p.ID.String(),
			Name:        p.Name,
			Description: p.Description,
			UnitPrice:   p.EffectivePrice().InexactFloat64(),
			ImagePath:   p.ImagePath,
			Stock:       p.Stock,
			CategoryID:  p.CategoryID.String(),
			UserID:      p.UserID.String(),
		})
	}
	return data
}

// WriteData encodes data as a YAML fixture.
func WriteData(w io.Writer, data Data) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode fixture: %w", err)
	}
	return enc.Close()
}
