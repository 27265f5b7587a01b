package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/vendorsupply/pkg/application/services/alerts"
	"github.com/vsinha/vendorsupply/pkg/application/services/procurement"
	"github.com/vsinha/vendorsupply/pkg/application/services/scaling"
	"github.com/vsinha/vendorsupply/pkg/application/services/session"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/config"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/events"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/logging"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/sessiontoken"
	"github.com/vsinha/vendorsupply/pkg/interfaces/cli/output"
	"github.com/vsinha/vendorsupply/pkg/interfaces/httpapi"
)

// Config holds configuration for the vendorsupply command
type Config struct {
	ConfigFile string
	Dish       string
	Servings   string
	Shop       bool
	Format     string
	OutputDir  string
	Serve      bool
	Addr       string
	Verbose    bool
	Help       bool

	// Out receives reports and help text; stdout when nil
	Out io.Writer
}

// VendorSupplyCommand scales a recipe, optionally plans its procurement, or serves HTTP
type VendorSupplyCommand struct {
	config Config
}

// NewVendorSupplyCommand creates a new command with the given configuration
func NewVendorSupplyCommand(config Config) *VendorSupplyCommand {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	if config.Format == "" {
		config.Format = "text"
	}
	return &VendorSupplyCommand{config: config}
}

// market is everything loaded before a run
type market struct {
	settings  config.Config
	log       *zap.Logger
	catalog   *memory.RecipeCatalog
	directory *memory.SupplierDirectory
	events    *events.InMemoryEventStore
	feed      *alerts.Feed
}

// Execute runs the command
func (c *VendorSupplyCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	m, err := c.load()
	if err != nil {
		return err
	}
	defer func() { _ = m.log.Sync() }()

	if c.config.Serve {
		return c.serve(ctx, m)
	}
	return c.report(m)
}

func (c *VendorSupplyCommand) load() (*market, error) {
	settings, err := config.Load(c.config.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if c.config.Addr != "" {
		settings.Server.Addr = c.config.Addr
	}
	if c.config.Verbose {
		settings.Log.Level = "debug"
	}
	if err := settings.Validate(c.config.Serve); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	log, err := logging.New(logging.Options{Env: settings.Log.Env, Level: settings.Log.Level})
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	eventStore := events.NewInMemoryEventStore(log)
	feed := alerts.NewFeed(alerts.DefaultCapacity)
	if err := eventStore.Subscribe(feed.EventTypes(), feed); err != nil {
		return nil, fmt.Errorf("failed to subscribe alert feed: %w", err)
	}

	loader := csv.NewLoader()

	recipes := memory.BuiltinRecipes()
	if settings.Catalog.RecipesFile != "" {
		recipes, err = loader.LoadRecipes(settings.Catalog.RecipesFile)
		if err != nil {
			return nil, fmt.Errorf("error loading recipes: %w", err)
		}
	}
	catalog, err := memory.NewRecipeCatalogFrom(recipes, settings.Catalog.DefaultDish, log)
	if err != nil {
		return nil, fmt.Errorf("error building recipe catalog: %w", err)
	}

	directory := memory.NewSupplierDirectory(memory.StoreOptions{Publisher: eventStore, Log: log})
	if settings.Suppliers.File != "" {
		if err := loader.LoadMarket(directory, settings.Suppliers.File, settings.Suppliers.ListingsFile); err != nil {
			return nil, fmt.Errorf("error loading suppliers: %w", err)
		}
	} else if err := directory.SeedMarket(memory.DemoMarket()); err != nil {
		return nil, fmt.Errorf("error seeding demo market: %w", err)
	}

	log.Debug("market loaded",
		zap.Int("dishes", len(catalog.Dishes())),
		zap.Int("suppliers", len(directory.Profiles())))

	return &market{
		settings:  settings,
		log:       log,
		catalog:   catalog,
		directory: directory,
		events:    eventStore,
		feed:      feed,
	}, nil
}

func (c *VendorSupplyCommand) serve(ctx context.Context, m *market) error {
	tokens, err := sessiontoken.NewIssuer(m.settings.Session.Secret, m.settings.Session.TTL)
	if err != nil {
		return fmt.Errorf("failed to create token issuer: %w", err)
	}

	registry := session.NewRegistry(session.Dependencies{
		Catalog:   m.catalog,
		Directory: m.directory,
		Publisher: m.events,
		Feed:      m.feed,
		Clock:     time.Now,
		Log:       m.log,
	})

	server := httpapi.NewServer(httpapi.Options{
		Registry:       registry,
		Tokens:         tokens,
		AllowedOrigins: m.settings.Server.AllowedOrigins,
		Log:            m.log,
	})

	m.log.Info("serving", zap.String("addr", m.settings.Server.Addr))
	return server.ListenAndServe(ctx, m.settings.Server.Addr)
}

func (c *VendorSupplyCommand) report(m *market) error {
	servings, err := scaling.ParseServings(c.config.Servings)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	dish := c.config.Dish
	if dish == "" {
		dish = string(m.catalog.DefaultDish())
	}

	startTime := time.Now()
	recipe, err := scaling.NewScaler(m.catalog, m.log).ScaleDish(dish, servings)
	if err != nil {
		return fmt.Errorf("error scaling recipe: %w", err)
	}

	result := output.Report{Recipe: recipe}
	if c.config.Shop {
		plan := procurement.NewMatcher(m.log).Plan(recipe.Ingredients, m.directory.Snapshots())
		result.Plan = &plan
	}
	m.log.Debug("report built",
		zap.String("dish", string(recipe.DishKey)),
		zap.Int("servings", servings),
		zap.Duration("elapsed", time.Since(startTime)))

	err = output.Generate(result, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		Out:       c.config.Out,
	})
	if err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}
	return nil
}

// showHelp displays the help message
func (c *VendorSupplyCommand) showHelp() {
	fmt.Fprintf(c.config.Out, `vendorsupply - recipe scaling and procurement for street food vendors

USAGE:
    vendorsupply -dish <name> -servings <n> [-shop]   # Scale a recipe, optionally plan purchases
    vendorsupply -serve [-addr :8080]                 # Serve the vendor and supplier HTTP API

OPTIONS:
    -config <file>      YAML config file (optional)
    -dish <name>        Dish to scale (default: the catalog's default dish)
    -servings <n>       Number of servings, a positive integer
    -shop               Match the scaled ingredients against nearby suppliers
    -format <fmt>       Output format: text, json, csv (default: text)
    -output <dir>       Output directory for json/csv results (optional)
    -serve              Start the HTTP API instead of printing a report
    -addr <addr>        Listen address, overrides server.addr
    -verbose            Enable debug logging
    -help               Show this help message

ENVIRONMENT:
    SESSION_SECRET                 Signing key for session tokens (required with -serve)
    VENDORSUPPLY_RECIPES_FILE      recipes CSV: dish,ingredient,ratio_per_serving,unit
    VENDORSUPPLY_SUPPLIERS_FILE    suppliers CSV: supplier_id,name,distance_km,rating,location
    VENDORSUPPLY_LISTINGS_FILE     listings CSV: supplier_id,item_name,unit_price,unit,stock_quantity

EXAMPLES:
    vendorsupply -dish "Pav Bhaji" -servings 50
    vendorsupply -dish "Vada Pav" -servings 120 -shop
    vendorsupply -dish Dosa -servings 30 -shop -format csv -output results/
    SESSION_SECRET=changeme vendorsupply -serve
`)
}
