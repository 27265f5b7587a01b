package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vsinha/vendorsupply/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		configFile = flag.String("config", "", "Path to YAML config file (optional)")
		dish       = flag.String("dish", "", "Dish to scale")
		servings   = flag.String("servings", "", "Number of servings")
		shop       = flag.Bool("shop", false, "Match ingredients against nearby suppliers")
		format     = flag.String("format", "text", "Output format: text, json, csv")
		outputDir  = flag.String("output", "", "Output directory for results (optional)")
		serve      = flag.Bool("serve", false, "Serve the HTTP API")
		addr       = flag.String("addr", "", "Listen address, overrides the config")
		verbose    = flag.Bool("verbose", false, "Enable verbose output")
		help       = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	config := commands.Config{
		ConfigFile: *configFile,
		Dish:       *dish,
		Servings:   *servings,
		Shop:       *shop,
		Format:     *format,
		OutputDir:  *outputDir,
		Serve:      *serve,
		Addr:       *addr,
		Verbose:    *verbose,
		Help:       *help,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := commands.NewVendorSupplyCommand(config)
	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
