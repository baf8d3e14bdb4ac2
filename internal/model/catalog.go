package model

// Category is a product grouping owned by an admin user.
type Category struct {
	ID          ID     `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	UserID      ID     `json:"user_id,omitempty" yaml:"user_id,omitempty"`
}

// Product is a catalog entry. Older endpoints send price, newer ones unit_price.
type Product struct {
	ID          ID     `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	UnitPrice   Price  `json:"unit_price" yaml:"unit_price"`
	Price       Price  `json:"price" yaml:"price"`
	ImagePath   string `json:"image_path,omitempty" yaml:"image_path,omitempty"`
	Stock       int    `json:"stock,omitempty" yaml:"stock,omitempty"`
	CategoryID  ID     `json:"category_id,omitempty" yaml:"category_id,omitempty"`
	UserID      ID     `json:"user_id,omitempty" yaml:"user_id,omitempty"`
}

// EffectivePrice returns unit_price, falling back to price, then zero.
func (p Product) EffectivePrice() Price {
	if !p.UnitPrice.IsZero() {
		return p.UnitPrice
	}
	return p.Price
}
