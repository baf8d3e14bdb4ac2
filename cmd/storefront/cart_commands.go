package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/internal/model"
)

type cacheView struct {
	Items []model.CartLine `json:"items" yaml:"items"`
	Total model.Price      `json:"total" yaml:"total"`
}

type mutationResult struct {
	OK bool `json:"ok" yaml:"ok"`
}

func runCache(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errors.New("cache needs a subcommand: list, add, set, remove or clear")
	}
	sub, rest := args[0], args[1:]

	var err error
	switch sub {
	case "list":
	case "add":
		if len(rest) < 1 {
			return errors.New("usage: cache add PRODUCT_ID [QTY]")
		}
		var qty int
		if qty, err = parseQuantity(rest, 1, 1); err != nil {
			return err
		}
		var product *model.Product
		if product, err = a.catalog.Product(ctx, model.ID(rest[0])); err != nil {
			return err
		}
		_, err = a.cache.AddItem(ctx, *product, qty)
	case "set":
		if len(rest) < 2 {
			return errors.New("usage: cache set PRODUCT_ID QTY")
		}
		var qty int
		if qty, err = parseQuantity(rest, 1, 0); err != nil {
			return err
		}
		_, err = a.cache.UpdateItemQuantity(ctx, model.ID(rest[0]), qty)
	case "remove":
		if len(rest) < 1 {
			return errors.New("usage: cache remove PRODUCT_ID")
		}
		_, err = a.cache.RemoveItem(ctx, model.ID(rest[0]))
	case "clear":
		err = a.cache.Clear(ctx)
	default:
		return fmt.Errorf("unknown cache subcommand %q", sub)
	}
	if err != nil {
		return err
	}
	return printCache(ctx, a)
}

func printCache(ctx context.Context, a *app) error {
	items, err := a.cache.Items(ctx)
	if err != nil {
		return err
	}
	total, err := a.cache.Total(ctx)
	if err != nil {
		return err
	}
	return a.out.print(cacheView{Items: items, Total: model.Price{Decimal: total}})
}

func runCart(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errors.New("cart needs a subcommand: show, ensure, create, items, init, add, update or remove")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "show":
		cart, err := a.cart.GetCart(ctx, "")
		if err != nil {
			return err
		}
		return a.out.print(cart)
	case "ensure":
		cart, err := a.cart.EnsureCart(ctx)
		if err != nil {
			return err
		}
		if err := a.sessions.SetCartID(ctx, cart.ID.String()); err != nil {
			return err
		}
		return a.out.print(cart)
	case "create":
		cart, err := a.cart.CreateCart(ctx)
		if err != nil {
			return err
		}
		return a.out.print(cart)
	case "items":
		items, err := a.cart.Items(ctx)
		if err != nil {
			return err
		}
		return a.out.print(items)
	case "init":
		token, err := a.auth.Token(ctx)
		if err != nil {
			return err
		}
		if token == "" {
			return errNotLoggedIn
		}
		return a.out.print(a.auth.CreateCartIfNotExists(ctx, token))
	case "add", "update", "remove":
		ok, err := runCartMutation(ctx, a, sub, rest)
		if err != nil {
			return err
		}
		return a.out.print(mutationResult{OK: ok})
	default:
		return fmt.Errorf("unknown cart subcommand %q", sub)
	}
}

func runCartMutation(ctx context.Context, a *app, sub string, args []string) (bool, error) {
	var legacy bool
	var price float64
	flags := newFlagSet("cart " + sub)
	flags.BoolVar(&legacy, "legacy", false, "use the older /items endpoints")
	if sub == "add" {
		flags.Float64Var(&price, "price", 0, "unit price (default: the catalog price)")
	}
	if err := flags.Parse(args); err != nil {
		return false, err
	}
	rest := flags.Args()
	if len(rest) < 1 {
		return false, fmt.Errorf("usage: cart %s PRODUCT_ID", sub)
	}
	productID := model.ID(rest[0])

	switch sub {
	case "add":
		qty, err := parseQuantity(rest, 1, 1)
		if err != nil {
			return false, err
		}
		unitPrice := model.Price{Decimal: decimal.NewFromFloat(price)}
		if !flags.Changed("price") {
			product, err := a.catalog.Product(ctx, productID)
			if err != nil {
				return false, err
			}
			unitPrice = product.EffectivePrice()
		}
		if legacy {
			return a.cart.AddProduct(ctx, productID, qty, unitPrice)
		}
		return a.cart.AddItem(ctx, model.CartItem{ProductID: productID, Quantity: qty, UnitPrice: unitPrice})
	case "update":
		if len(rest) < 2 {
			return false, errors.New("usage: cart update PRODUCT_ID QTY")
		}
		qty, err := parseQuantity(rest, 1, 0)
		if err != nil {
			return false, err
		}
		if legacy {
			return a.cart.UpdateProduct(ctx, productID, qty)
		}
		return a.cart.UpdateQuantity(ctx, productID, qty)
	default:
		if legacy {
			return false, errors.New("remove has no legacy endpoint")
		}
		return a.cart.RemoveItem(ctx, productID)
	}
}
