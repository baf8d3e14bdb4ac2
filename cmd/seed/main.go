// seed writes a YAML fixture for the mock storefront API. By default it
// exports the built-in demo data; with --from it snapshots the catalog of a
// running storefront API instead.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"storefront/internal/fixture"
	"storefront/internal/gateway"
	"storefront/internal/service"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	var from, out string
	flagSet := pflag.NewFlagSet("seed", pflag.ExitOnError)
	flagSet.StringVar(&from, "from", "", "storefront API origin to snapshot (default: built-in demo data)")
	flagSet.StringVarP(&out, "out", "o", "-", "fixture file to write, - for stdout")
	_ = flagSet.Parse(os.Args[1:])

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	data := fixture.DefaultData()
	if from != "" {
		log.Infof("Fetching catalog from: %s", from)
		var err error
		data, err = snapshot(ctx, from, log)
		if err != nil {
			log.WithError(err).Fatal("snapshot catalog")
		}
	}

	var w io.Writer = os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			log.WithError(err).Fatal("create fixture file")
		}
		defer f.Close()
		w = f
	}

	if err := fixture.WriteData(w, data); err != nil {
		log.WithError(err).Fatal("write fixture")
	}
	log.WithFields(logrus.Fields{
		"categories": len(data.Categories),
		"products":   len(data.Products),
	}).Info("Seed completed")
}

func snapshot(ctx context.Context, baseURL string, log logrus.FieldLogger) (fixture.Data, error) {
	catalog := service.NewCatalogService(gateway.New(baseURL, nil, gateway.WithLogger(log)), log)

	categories, err := catalog.AllCategories(ctx)
	if err != nil {
		return fixture.Data{}, fmt.Errorf("fetch categories: %w", err)
	}
	products, err := catalog.Products(ctx)
	if err != nil {
		return fixture.Data{}, fmt.Errorf("fetch products: %w", err)
	}
	log.Infof("Fetched %d categories and %d products", len(categories), len(products))
	return fixture.Snapshot(categories, products), nil
}
