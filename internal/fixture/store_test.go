package fixture

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

func newDefault(t *testing.T) *Store {
	t.Helper()
	s, err := Default()
	require.NoError(t, err)
	return s
}

func TestStore_Authenticate(t *testing.T) {
	s := newDefault(t)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", AdminEmail, AdminPassword, nil},
		{"email is case insensitive", strings.ToUpper(CustomerEmail), CustomerPassword, nil},
		{"wrong password", AdminEmail, "nope", apperrors.ErrInvalidCredentials},
		{"unknown user", "ghost@storefront.test", "x", apperrors.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := s.Authenticate(tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, user.ID)
		})
	}
}

func TestStore_CatalogFilters(t *testing.T) {
	s := newDefault(t)

	assert.Len(t, s.Categories(), 4)
	assert.Len(t, s.CategoriesByUser("231"), 3)
	assert.Len(t, s.ProductsByCategory("1"), 2)
	assert.Len(t, s.ProductsByUser("17"), 1)
	assert.Empty(t, s.ProductsByCategory("999"))

	p, err := s.Product("301")
	require.NoError(t, err)
	assert.Equal(t, "Pour-over Kettle", p.Name)

	_, err = s.Product("999")
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
}

func TestStore_CartLifecycle(t *testing.T) {
	s := newDefault(t)
	user := model.ID("17")

	_, err := s.Cart(user)
	assert.ErrorIs(t, err, apperrors.ErrCartNotFound)

	created := s.CreateCart(user)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, created.ID, s.CreateCart(user).ID, "second create returns the same cart")

	require.NoError(t, s.AddItem(user, model.CartItem{ProductID: "101", Quantity: 2}))
	require.NoError(t, s.AddItem(user, model.CartItem{ProductID: "101", Quantity: 1}))
	require.NoError(t, s.AddItem(user, model.CartItem{ProductID: "201", Quantity: 1, UnitPrice: model.NewPrice(8)}))

	items, err := s.Items(user)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "12.5", items[0].UnitPrice.String())
	assert.Equal(t, "8", items[1].UnitPrice.String())

	require.NoError(t, s.UpdateItem(user, "201", 5))
	assert.ErrorIs(t, s.UpdateItem(user, "201", 0), apperrors.ErrInvalidQuantity)
	assert.ErrorIs(t, s.UpdateItem(user, "999", 1), apperrors.ErrItemNotFound)

	require.NoError(t, s.RemoveItem(user, "101"))
	assert.ErrorIs(t, s.RemoveItem(user, "101"), apperrors.ErrItemNotFound)

	items, err = s.Items(user)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestStore_AddItemRejects(t *testing.T) {
	s := newDefault(t)

	assert.ErrorIs(t, s.AddItem("17", model.CartItem{ProductID: "101", Quantity: 0}), apperrors.ErrInvalidQuantity)
	assert.ErrorIs(t, s.AddItem("17", model.CartItem{ProductID: "999", Quantity: 1}), apperrors.ErrProductNotFound)

	_, err := s.Cart("17")
	assert.ErrorIs(t, err, apperrors.ErrCartNotFound, "rejected adds do not create a cart")
}

func TestStore_CartIsCopied(t *testing.T) {
	s := newDefault(t)
	require.NoError(t, s.AddItem("17", model.CartItem{ProductID: "101", Quantity: 1}))

	cart, err := s.Cart("17")
	require.NoError(t, err)
	cart.Items[0].Quantity = 99

	items, err := s.Items("17")
	require.NoError(t, err)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestReadData(t *testing.T) {
	doc := `
users:
  - id: "5"
    role: customer
    name: Sam
    email: sam@example.com
    password: pw
categories:
  - id: "9"
    name: Books
products:
  - id: "900"
    name: Novel
    unit_price: 7.5
    category_id: "9"
`
	data, err := ReadData(strings.NewReader(doc))
	require.NoError(t, err)

	s := NewStore()
	require.NoError(t, s.Load(data))

	user, err := s.Authenticate("sam@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, model.ID("5"), user.ID)

	p, err := s.Product("900")
	require.NoError(t, err)
	assert.Equal(t, "7.5", p.UnitPrice.String())
	assert.Len(t, s.ProductsByCategory("9"), 1)
}

func TestReadData_Invalid(t *testing.T) {
	_, err := ReadData(strings.NewReader("users: {"))
	assert.Error(t, err)
}

func TestSnapshot_WriteRead(t *testing.T) {
	categories := []model.Category{{ID: "1", Name: "Coffee", UserID: "231"}}
	products := []model.Product{
		{ID: "7", Name: "Old", Price: model.NewPrice(4.5), CategoryID: "1", UserID: "231"},
		{ID: "8", Name: "New", UnitPrice: model.NewPrice(6), CategoryID: "1", UserID: "231"},
	}

	var buf strings.Builder
	require.NoError(t, WriteData(&buf, Snapshot(categories, products)))

	data, err := ReadData(strings.NewReader(buf.String()))
	require.NoError(t, err)

	s := NewStore()
	require.NoError(t, s.Load(data))

	old, err := s.Product("7")
	require.NoError(t, err)
	assert.Equal(t, "4.5", old.UnitPrice.String(), "legacy price becomes unit_price")

	_, err = s.Authenticate(AdminEmail, AdminPassword)
	assert.NoError(t, err)
	assert.Len(t, s.CategoriesByUser("231"), 1)
}
