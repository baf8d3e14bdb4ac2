package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/pflag"

	"storefront/internal/auth"
	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/service"
)

var errNotLoggedIn = errors.New("not logged in")

func newFlagSet(name string) *pflag.FlagSet {
	return pflag.NewFlagSet(name, pflag.ContinueOnError)
}

type loginResult struct {
	User *model.User        `json:"user,omitempty" yaml:"user,omitempty"`
	Cart service.CartStatus `json:"cart" yaml:"cart"`
}

func runLogin(ctx context.Context, a *app, args []string) error {
	var email, password string
	flags := newFlagSet("login")
	flags.StringVar(&email, "email", "", "account email")
	flags.StringVar(&password, "password", "", "account password")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if email == "" || password == "" {
		return errors.New("login needs --email and --password")
	}

	outcome, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	switch o := outcome.(type) {
	case service.LoginOK:
		if o.Data.Token == "" {
			return errors.New("login succeeded but the server sent no token")
		}
		status := a.auth.CreateCartIfNotExists(ctx, o.Data.Token)
		return a.out.print(loginResult{User: o.Data.User, Cart: status})
	case service.LoginRejected:
		return fmt.Errorf("login rejected (%d): %s", o.StatusCode, rejectionMessage(o))
	default:
		return fmt.Errorf("unexpected login outcome %T", outcome)
	}
}

// rejectionMessage pulls a readable message out of a failed login body.
func rejectionMessage(r service.LoginRejected) string {
	var detail apperrors.DetailResponse
	if err := json.Unmarshal(r.Body, &detail); err == nil && detail.Detail != "" {
		return detail.Detail
	}
	var validation apperrors.ValidationResponse
	if err := json.Unmarshal(r.Body, &validation); err == nil && len(validation.Detail) > 0 {
		return validation.Detail[0].Msg
	}
	if body := bytes.TrimSpace(r.Body); len(body) > 0 {
		return string(body)
	}
	return http.StatusText(r.StatusCode)
}

func runLogout(ctx context.Context, a *app, _ []string) error {
	return a.auth.Logout(ctx)
}

type whoami struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Email     string     `json:"email" yaml:"email"`
	Role      string     `json:"role" yaml:"role"`
	ImagePath string     `json:"image_path,omitempty" yaml:"image_path,omitempty"`
	CartID    string     `json:"cart_id,omitempty" yaml:"cart_id,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

func runWhoami(ctx context.Context, a *app, _ []string) error {
	profile, err := a.auth.Profile(ctx)
	if err != nil {
		return err
	}
	if !profile.LoggedIn() {
		return errNotLoggedIn
	}

	view := whoami{
		ID:        profile.ID,
		Name:      profile.Name,
		Email:     profile.Email,
		Role:      profile.Role,
		ImagePath: profile.ImagePath,
	}
	if cartID, ok, err := a.sessions.CartID(ctx); err == nil && ok {
		view.CartID = cartID
	}
	// Tokens from other issuers may not be JWTs; expiry is best effort.
	if claims, err := auth.InspectToken(profile.Token); err == nil && claims.ExpiresAt != nil {
		expires := claims.ExpiresAt.Time
		view.ExpiresAt = &expires
	}
	return a.out.print(view)
}

func runCategories(ctx context.Context, a *app, args []string) error {
	var all, defaultAdmin bool
	var admin string
	flags := newFlagSet("categories")
	flags.BoolVar(&all, "all", false, "use the full category listing")
	flags.StringVar(&admin, "admin", "", "only categories owned by this admin user id")
	flags.BoolVar(&defaultAdmin, "default-admin", false, "only categories owned by the default admin")
	if err := flags.Parse(args); err != nil {
		return err
	}

	var categories []model.Category
	var err error
	switch {
	case admin != "":
		categories, err = a.catalog.CategoriesByAdmin(ctx, admin)
	case defaultAdmin:
		categories, err = a.catalog.CategoriesByDefaultAdmin(ctx)
	case all:
		categories, err = a.catalog.AllCategories(ctx)
	default:
		categories, err = a.catalog.Categories(ctx)
	}
	if err != nil {
		return err
	}
	return a.out.print(categories)
}

func runProducts(ctx context.Context, a *app, args []string) error {
	var id, category string
	var defaultAdmin, adminCategories bool
	flags := newFlagSet("products")
	flags.StringVar(&id, "id", "", "show a single product")
	flags.StringVar(&category, "category", "", "only products of this category id")
	flags.BoolVar(&defaultAdmin, "default-admin", false, "only products owned by the default admin")
	flags.BoolVar(&adminCategories, "admin-categories", false, "products of every default admin category, grouped by category")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if id != "" {
		product, err := a.catalog.Product(ctx, model.ID(id))
		if err != nil {
			return err
		}
		return a.out.print(product)
	}

	var products []model.Product
	var err error
	switch {
	case category != "":
		products, err = a.catalog.ProductsByCategory(ctx, model.ID(category))
	case defaultAdmin:
		products, err = a.catalog.ProductsByDefaultAdmin(ctx)
	case adminCategories:
		var categories []model.Category
		categories, err = a.catalog.CategoriesByDefaultAdmin(ctx)
		if err == nil {
			products, err = a.catalog.ProductsForCategories(ctx, categories)
		}
	default:
		products, err = a.catalog.Products(ctx)
	}
	if err != nil {
		return err
	}
	return a.out.print(products)
}

// parseQuantity reads an optional quantity argument.
func parseQuantity(args []string, i, def int) (int, error) {
	if len(args) <= i {
		return def, nil
	}
	q, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", args[i])
	}
	return q, nil
}
