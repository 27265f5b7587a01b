package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/vsinha/vendorsupply/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Out       io.Writer
}

// Report is everything one CLI run produces
type Report struct {
	Recipe *dto.ScaledRecipe    `json:"recipe"`
	Plan   *dto.ProcurementPlan `json:"plan,omitempty"`
}

// Generate creates output in the specified format
func Generate(report Report, config Config) error {
	if config.Out == nil {
		config.Out = os.Stdout
	}

	switch config.Format {
	case "text":
		return generateTextOutput(report, config)
	case "json":
		return generateJSONOutput(report, config)
	case "csv":
		return generateCSVOutput(report, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(report Report, config Config) error {
	w := config.Out
	recipe := report.Recipe

	fmt.Fprintf(w, "🍲 %s for %d servings\n", recipe.DishKey, recipe.Servings)
	fmt.Fprintf(w, "======================\n\n")
	if recipe.UsedDefault {
		fmt.Fprintf(w, "⚠️  No recipe for %q, showing %s instead\n\n", recipe.RequestedDish, recipe.DishKey)
	}

	fmt.Fprintf(w, "%-20s %10s %-8s\n", "Ingredient", "Quantity", "Unit")
	fmt.Fprintf(w, "%-20s %10s %-8s\n", "--------------------", "----------", "--------")
	for _, ing := range recipe.Ingredients {
		fmt.Fprintf(w, "%-20s %10s %-8s\n", ing.Name, ing.QuantityString(), ing.Unit)
	}
	fmt.Fprintln(w)

	if report.Plan == nil {
		return nil
	}
	plan := report.Plan

	if len(plan.Lines) > 0 {
		fmt.Fprintf(w, "🛒 Procurement Plan:\n")
		fmt.Fprintf(w, "%-20s %-15s %10s %12s %-6s\n", "Ingredient", "Supplier", "Unit Price", "Est. Cost", "Stock")
		fmt.Fprintf(w, "%-20s %-15s %10s %12s %-6s\n",
			"--------------------", "---------------", "----------", "------------", "------")
		for _, line := range plan.Lines {
			stock := "ok"
			if line.StockShort {
				stock = "short"
			}
			fmt.Fprintf(w, "%-20s %-15s %10s %12s %-6s\n",
				line.Ingredient.Name,
				line.Candidate.Supplier.Name,
				line.Candidate.Listing.UnitPrice.StringFixed(2),
				line.EstimatedCost.StringFixed(2),
				stock)
		}
		fmt.Fprintln(w)
	}

	if len(plan.Unsourceable) > 0 {
		fmt.Fprintf(w, "⚠️  No nearby supplier lists:\n")
		for _, name := range plan.Unsourceable {
			fmt.Fprintf(w, "  - %s\n", name)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Estimated Total: %s\n", plan.EstimatedTotal.StringFixed(2))
	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(report Report, config Config) error {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}

	if config.OutputDir == "" {
		_, err = fmt.Fprintln(config.Out, string(jsonData))
		return err
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}

	filename := filepath.Join(config.OutputDir, "procurement.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return errors.Wrap(err, "failed to write JSON file")
	}

	if config.Verbose {
		fmt.Fprintf(config.Out, "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput writes ingredients.csv and, when a plan exists, plan.csv.
// Without an output directory both tables go to Out one after the other.
func generateCSVOutput(report Report, config Config) error {
	ingredients := [][]string{{"ingredient", "quantity", "unit"}}
	for _, ing := range report.Recipe.Ingredients {
		ingredients = append(ingredients, []string{ing.Name, ing.QuantityString(), ing.Unit})
	}

	tables := []struct {
		name string
		rows [][]string
	}{{"ingredients.csv", ingredients}}

	if report.Plan != nil {
		rows := [][]string{{"ingredient", "quantity", "unit", "supplier_id", "supplier_name", "unit_price", "estimated_cost", "stock_short"}}
		for _, line := range report.Plan.Lines {
			rows = append(rows, []string{
				line.Ingredient.Name,
				line.Ingredient.QuantityString(),
				line.Ingredient.Unit,
				string(line.Candidate.Supplier.ID),
				line.Candidate.Supplier.Name,
				line.Candidate.Listing.UnitPrice.StringFixed(2),
				line.EstimatedCost.StringFixed(2),
				strconv.FormatBool(line.StockShort),
			})
		}
		for _, name := range report.Plan.Unsourceable {
			rows = append(rows, []string{name, "", "", "", "", "", "", ""})
		}
		tables = append(tables, struct {
			name string
			rows [][]string
		}{"plan.csv", rows})
	}

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return errors.Wrap(err, "failed to create output directory")
		}
	}

	for _, table := range tables {
		if err := writeCSV(table.name, table.rows, config); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(name string, rows [][]string, config Config) error {
	if config.OutputDir == "" {
		writer := csv.NewWriter(config.Out)
		if err := writer.WriteAll(rows); err != nil {
			return errors.Wrapf(err, "failed to write %s", name)
		}
		return nil
	}

	filename := filepath.Join(config.OutputDir, name)
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", filename)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return errors.Wrapf(err, "failed to write %s", filename)
	}

	if config.Verbose {
		fmt.Fprintf(config.Out, "💾 CSV results saved to: %s\n", filename)
	}
	return nil
}
