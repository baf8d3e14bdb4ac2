package router_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/auth"
	apperrors "storefront/internal/errors"
	"storefront/internal/fixture"
	"storefront/internal/gateway"
	"storefront/internal/handler"
	"storefront/internal/model"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/storage"
)

type client struct {
	auth    service.AuthService
	cart    service.CartService
	catalog service.CatalogService
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := fixture.Default()
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	jwtService := auth.NewJWTService("test-secret")
	e := echo.New()
	router.Register(
		e,
		jwtService,
		handler.NewAuthHandler(store, jwtService, log),
		handler.NewCartHandler(store, log),
		handler.NewCatalogHandler(store),
		log,
	)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(srv *httptest.Server) client {
	log := logrus.New()
	log.SetOutput(io.Discard)
	sessions := auth.NewSessionStore(storage.NewMemory())
	gw := gateway.New(srv.URL, sessions)
	return client{
		auth:    service.NewAuthService(gw, sessions, log),
		cart:    service.NewCartService(gw, log),
		catalog: service.NewCatalogService(gw, log),
	}
}

func login(t *testing.T, c client, email, password string) model.LoginResponse {
	t.Helper()
	outcome, err := c.auth.Login(context.Background(), email, password)
	require.NoError(t, err)
	ok, isOK := outcome.(service.LoginOK)
	require.True(t, isOK, "expected LoginOK, got %#v", outcome)
	return ok.Data
}

func TestLogin(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()

	t.Run("wrong password is rejected", func(t *testing.T) {
		c := newClient(srv)
		outcome, err := c.auth.Login(ctx, fixture.CustomerEmail, "wrong")
		require.NoError(t, err)

		rejected, ok := outcome.(service.LoginRejected)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, rejected.StatusCode)
		assert.Contains(t, string(rejected.Body), apperrors.ErrInvalidCredentials.Error())

		token, err := c.auth.Token(ctx)
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("valid credentials start a session", func(t *testing.T) {
		c := newClient(srv)
		data := login(t, c, fixture.AdminEmail, fixture.AdminPassword)

		assert.NotEmpty(t, data.Token)
		require.NotNil(t, data.User)
		assert.Equal(t, model.ID("231"), data.User.ID)

		profile, err := c.auth.Profile(ctx)
		require.NoError(t, err)
		assert.Equal(t, data.Token, profile.Token)
		assert.Equal(t, "admin", profile.Role)
		assert.Equal(t, "231", profile.ID)

		claims, err := auth.InspectToken(profile.Token)
		require.NoError(t, err)
		assert.Equal(t, fixture.AdminEmail, claims.Email)
	})
}

func TestLogin_ValidationError(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Post(srv.URL+"/login", "application/json", strings.NewReader(`{"email":"not-an-email"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body apperrors.ValidationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Detail, 2)
	assert.Equal(t, []interface{}{"body", "email"}, body.Detail[0].Loc)
	assert.Equal(t, "email failed on the 'email' rule", body.Detail[0].Msg)
	assert.Equal(t, "password failed on the 'required' rule", body.Detail[1].Msg)
}

func TestCreateCartIfNotExists(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := newClient(srv)
	data := login(t, c, fixture.CustomerEmail, fixture.CustomerPassword)

	first := c.auth.CreateCartIfNotExists(ctx, data.Token)
	assert.Equal(t, service.CartStatusCreated, first.Status)
	assert.NotEmpty(t, first.CartID)

	second := c.auth.CreateCartIfNotExists(ctx, data.Token)
	assert.Equal(t, service.CartStatus{Status: service.CartStatusExists, CartID: first.CartID}, second)

	cart, err := c.cart.GetCart(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, model.ID(first.CartID), cart.ID)
}

func TestCart_RequiresToken(t *testing.T) {
	srv := newServer(t)
	c := newClient(srv)

	_, err := c.cart.GetCart(context.Background(), "")

	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.ErrorIs(t, err, apperrors.ErrCartFetch)
}

func TestCart_RejectsForgedToken(t *testing.T) {
	srv := newServer(t)

	forged, err := auth.NewJWTService("other-secret").GenerateAccessToken(model.User{ID: "17"})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/cart/", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+forged)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCart_Flow(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := newClient(srv)
	login(t, c, fixture.CustomerEmail, fixture.CustomerPassword)

	items, err := c.cart.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	cart, err := c.cart.EnsureCart(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, cart.ID)

	again, err := c.cart.EnsureCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)

	ok, err := c.cart.AddItem(ctx, model.CartItem{ProductID: "101", Quantity: 2, UnitPrice: model.NewPrice(12.5)})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.cart.AddProduct(ctx, "201", 1, model.NewPrice(9.99))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.cart.UpdateQuantity(ctx, "101", 5)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.cart.UpdateProduct(ctx, "201", 3)
	require.NoError(t, err)
	assert.True(t, ok)

	items, err = c.cart.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 3, items[1].Quantity)

	ok, err = c.cart.RemoveItem(ctx, "101")
	require.NoError(t, err)
	assert.True(t, ok)

	items, err = c.cart.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, model.ID("201"), items[0].ProductID)
}

func TestCart_ValidationMessages(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := newClient(srv)
	login(t, c, fixture.CustomerEmail, fixture.CustomerPassword)

	t.Run("cart items surface the server message", func(t *testing.T) {
		ok, err := c.cart.AddItem(ctx, model.CartItem{ProductID: "101", Quantity: 0})
		assert.False(t, ok)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrInvalidQuantity.Error(), err.Error())
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("update of a missing line", func(t *testing.T) {
		ok, err := c.cart.UpdateQuantity(ctx, "999", 1)
		assert.False(t, ok)

		var apiErr *apperrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.ErrorIs(t, err, apperrors.ErrCartItemUpdate)
	})

	t.Run("legacy items keep the generic message", func(t *testing.T) {
		ok, err := c.cart.AddProduct(ctx, "999", 1, model.Price{})
		assert.False(t, ok)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCartItemAdd.Error(), err.Error())
	})
}

func TestCatalog(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	c := newClient(srv)

	categories, err := c.catalog.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 4)

	all, err := c.catalog.AllCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, categories, all)

	adminCategories, err := c.catalog.CategoriesByDefaultAdmin(ctx)
	require.NoError(t, err)
	assert.Len(t, adminCategories, 3)

	adminProducts, err := c.catalog.ProductsByDefaultAdmin(ctx)
	require.NoError(t, err)
	assert.Len(t, adminProducts, 4)

	grouped, err := c.catalog.ProductsForCategories(ctx, adminCategories)
	require.NoError(t, err)
	assert.Len(t, grouped, 4)
	assert.Equal(t, model.ID("101"), grouped[0].ID)

	product, err := c.catalog.Product(ctx, "102")
	require.NoError(t, err)
	assert.Equal(t, "16.75", product.EffectivePrice().String())

	_, err = c.catalog.Product(ctx, "999")
	assert.ErrorIs(t, err, apperrors.ErrProductFetch)
}

func TestHealthzAndNotFound(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
