package main

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ghuser/storefront/pkg/app"
	"github.com/ghuser/storefront/pkg/events"
	"github.com/ghuser/storefront/pkg/logger"
	"github.com/ghuser/storefront/pkg/metrics"
	itemsvcs "github.com/ghuser/storefront/services/item/application/services"
	itemEvents "github.com/ghuser/storefront/services/item/domain/events"
	itemmodels "github.com/ghuser/storefront/services/item/domain/models"
	itemmemory "github.com/ghuser/storefront/services/item/infrastructure/persistence/memory"
	merchantsvcs "github.com/ghuser/storefront/services/merchant/application/services"
	merchantmodels "github.com/ghuser/storefront/services/merchant/domain/models"
	merchantmemory "github.com/ghuser/storefront/services/merchant/infrastructure/persistence/memory"
)

type merchantCreator interface {
	Create(ctx context.Context, name string) (*merchantmodels.Merchant, error)
}

type itemCreator interface {
	Create(ctx context.Context, in itemsvcs.ItemInput) (*itemmodels.Item, error)
}

type seedOptions struct {
	Merchants        int
	ItemsPerMerchant int
}

type seedResult struct {
	Merchants int
	Items     int
}

var demoMerchants = []string{
	"Schroeder-Jerde",
	"Klein, Rempel and Jones",
	"Willms and Sons",
	"Cummings-Thiel",
	"Williamson Group",
}

var demoProducts = []string{
	"Item Qui Esse",
	"Item Autem Minima",
	"Item Ea Voluptatum",
	"Item Nemo Facere",
	"Item Expedita Aliquam",
}

func seedCmd() *cobra.Command {
	var (
		dryRun bool
		opts   seedOptions
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create demo merchants and items",
		Long: `Create demo merchants and items through the application services, so
every item write goes through the same validation and publishes the same
events as the API.

Examples:
  storefrontctl seed
  storefrontctl seed --merchants 3 --items 2
  storefrontctl seed --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if dryRun {
				merchants, items := inMemoryServices()
				res, err := seedCatalog(ctx, merchants, items, opts, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "dry run: would create %d merchant(s) and %d item(s)\n", res.Merchants, res.Items)
				return nil
			}
			return seedPostgres(ctx, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "seed in-memory stores instead of the database")
	cmd.Flags().IntVar(&opts.Merchants, "merchants", len(demoMerchants), "number of merchants to create")
	cmd.Flags().IntVar(&opts.ItemsPerMerchant, "items", 3, "number of items per merchant")

	return cmd
}

func seedPostgres(ctx context.Context, opts seedOptions, out io.Writer) error {
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	bus, err := events.NewBus(e.pool.DB(), events.Config{}, e.log)
	if err != nil {
		return fmt.Errorf("setup event bus: %w", err)
	}
	defer bus.Close() //nolint:errcheck

	if err := bus.EnsureTopics(itemEvents.TopicItemCreated, itemEvents.TopicItemUpdated, itemEvents.TopicItemDeleted); err != nil {
		return fmt.Errorf("initialize event topics: %w", err)
	}

	a := &app.Application{
		Config:   e.cfg,
		Db:       e.pool,
		Logger:   e.log,
		EventBus: bus,
	}
	merchants := merchantsvcs.New(a)
	items := itemsvcs.New(a, merchants.Merchant)

	res, err := seedCatalog(ctx, merchants.Merchant, items.Item, opts, out)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "created %d merchant(s) and %d item(s)\n", res.Merchants, res.Items)
	return nil
}

func inMemoryServices() (*merchantsvcs.MerchantService, *itemsvcs.ItemService) {
	m := metrics.New(prometheus.NewRegistry())
	merchants := merchantsvcs.NewMerchantService(merchantmemory.NewMerchantRepository(), m, logger.Nop())
	items := itemsvcs.NewItemService(itemmemory.NewItemRepository(), merchants, nil, m, logger.Nop())
	return merchants, items
}

// seedCatalog creates opts.Merchants merchants with opts.ItemsPerMerchant
// items each. Names cycle through the demo lists with a numeric suffix once
// they run out, so repeated seeds stay readable.
func seedCatalog(ctx context.Context, merchants merchantCreator, items itemCreator, opts seedOptions, out io.Writer) (seedResult, error) {
	var res seedResult
	if opts.Merchants < 0 || opts.ItemsPerMerchant < 0 {
		return res, fmt.Errorf("seed: counts must not be negative")
	}

	for i := range opts.Merchants {
		merchant, err := merchants.Create(ctx, cycleName(demoMerchants, i))
		if err != nil {
			return res, fmt.Errorf("seed merchant %d: %w", i+1, err)
		}
		res.Merchants++
		fmt.Fprintf(out, "merchant %d %q\n", merchant.ID, merchant.Name)

		for j := range opts.ItemsPerMerchant {
			item, err := items.Create(ctx, itemsvcs.ItemInput{
				Name:        cycleName(demoProducts, i*opts.ItemsPerMerchant+j),
				Description: fmt.Sprintf("Demo item %d of %s", j+1, merchant.Name),
				UnitPrice:   demoPrice(i, j),
				MerchantID:  merchant.ID,
			})
			if err != nil {
				return res, fmt.Errorf("seed item for merchant %d: %w", merchant.ID, err)
			}
			res.Items++
			fmt.Fprintf(out, "  item %d %q %s\n", item.ID, item.Name, item.UnitPrice.StringFixed(2))
		}
	}
	return res, nil
}

func cycleName(names []string, i int) string {
	name := names[i%len(names)]
	if round := i / len(names); round > 0 {
		return fmt.Sprintf("%s %d", name, round+1)
	}
	return name
}

// demoPrice yields deterministic prices between 1.00 and 99.99.
func demoPrice(merchant, item int) decimal.Decimal {
	cents := int64(100 + (merchant*7919+item*104729)%9900)
	return decimal.New(cents, -2)
}
