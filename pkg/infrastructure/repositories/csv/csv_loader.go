package csv

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vsinha/vendorsupply/pkg/domain/entities"
	"github.com/vsinha/vendorsupply/pkg/domain/repositories"
)

var (
	recipesHeader   = []string{"dish", "ingredient", "ratio_per_serving", "unit"}
	suppliersHeader = []string{"supplier_id", "name", "distance_km", "rating", "location"}
	listingsHeader  = []string{"supplier_id", "item_name", "unit_price", "unit", "stock_quantity"}
)

// ListingRecord is one row of a listings file
type ListingRecord struct {
	SupplierID    entities.SupplierID
	ItemName      string
	UnitPrice     decimal.Decimal
	Unit          string
	StockQuantity int64
}

// Loader handles loading recipe and market seed data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadRecipes loads recipes from a CSV file. Rows of the same dish form one
// recipe; dishes and lines keep file order.
func (l *Loader) LoadRecipes(filename string) ([]*entities.Recipe, error) {
	records, err := readFile(filename, "recipes", recipesHeader)
	if err != nil {
		return nil, err
	}
	return parseRecipes(records)
}

// LoadSuppliers loads supplier profiles from a CSV file
func (l *Loader) LoadSuppliers(filename string) ([]*entities.SupplierProfile, error) {
	records, err := readFile(filename, "suppliers", suppliersHeader)
	if err != nil {
		return nil, err
	}

	profiles := make([]*entities.SupplierProfile, 0, len(records))
	for i, record := range records {
		profile, err := parseSupplier(record)
		if err != nil {
			return nil, errors.Wrapf(err, "suppliers CSV row %d", i+2)
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// LoadListings loads supplier listings from a CSV file
func (l *Loader) LoadListings(filename string) ([]ListingRecord, error) {
	records, err := readFile(filename, "listings", listingsHeader)
	if err != nil {
		return nil, err
	}

	listings := make([]ListingRecord, 0, len(records))
	for i, record := range records {
		listing, err := parseListing(record)
		if err != nil {
			return nil, errors.Wrapf(err, "listings CSV row %d", i+2)
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// LoadMarket registers the suppliers of suppliersFile in the directory and
// stocks them with the rows of listingsFile
func (l *Loader) LoadMarket(directory repositories.SupplierDirectory, suppliersFile, listingsFile string) error {
	profiles, err := l.LoadSuppliers(suppliersFile)
	if err != nil {
		return err
	}
	for _, profile := range profiles {
		if _, err := directory.Register(*profile); err != nil {
			return errors.Wrapf(err, "registering supplier %s", profile.ID)
		}
	}

	if listingsFile == "" {
		return nil
	}
	listings, err := l.LoadListings(listingsFile)
	if err != nil {
		return err
	}
	for i, row := range listings {
		store, err := directory.Store(row.SupplierID)
		if err != nil {
			return errors.Wrapf(err, "listings CSV row %d", i+2)
		}
		if _, err := store.AddListing(row.ItemName, row.UnitPrice, row.Unit, row.StockQuantity); err != nil {
			return errors.Wrapf(err, "listings CSV row %d", i+2)
		}
	}
	return nil
}

func readFile(filename, kind string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s file %s", kind, filename)
	}
	defer file.Close()

	return readRecords(file, kind, expectedHeader)
}

// readRecords validates the header and returns the data rows
func readRecords(r io.Reader, kind string, expectedHeader []string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s CSV", kind)
	}

	if len(records) < 2 {
		return nil, errors.Errorf("%s CSV must have header and at least one data row", kind)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, errors.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, header)
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, errors.Errorf("%s CSV row %d: expected %d columns, got %d", kind, i+2, len(expectedHeader), len(record))
		}
	}

	return records[1:], nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseRecipes(records [][]string) ([]*entities.Recipe, error) {
	var order []entities.DishKey
	names := make(map[entities.DishKey]string)
	lines := make(map[entities.DishKey][]entities.RecipeLine)
	firstRow := make(map[entities.DishKey]int)

	for i, record := range records {
		ratio, err := parseDecimal(record[2], "ratio_per_serving")
		if err != nil {
			return nil, errors.Wrapf(err, "recipes CSV row %d", i+2)
		}
		line, err := entities.NewRecipeLine(record[1], record[3], ratio)
		if err != nil {
			return nil, errors.Wrapf(err, "recipes CSV row %d", i+2)
		}

		key := entities.NormalizeDishKey(record[0])
		if key == "" {
			return nil, errors.Wrapf(entities.NewValidationError("dishName", "dish name cannot be empty"), "recipes CSV row %d", i+2)
		}
		if _, seen := names[key]; !seen {
			order = append(order, key)
			names[key] = strings.TrimSpace(record[0])
			firstRow[key] = i + 2
		}
		lines[key] = append(lines[key], *line)
	}

	recipes := make([]*entities.Recipe, 0, len(order))
	for _, key := range order {
		recipe, err := entities.NewRecipe(names[key], lines[key])
		if err != nil {
			return nil, errors.Wrapf(err, "recipes CSV dish %q starting at row %d", names[key], firstRow[key])
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

func parseSupplier(record []string) (*entities.SupplierProfile, error) {
	distance, err := parseDecimal(record[2], "distance_km")
	if err != nil {
		return nil, err
	}
	rating, err := parseDecimal(record[3], "rating")
	if err != nil {
		return nil, err
	}
	return entities.NewSupplierProfile(entities.SupplierID(strings.TrimSpace(record[0])), record[1], distance, rating, record[4])
}

func parseListing(record []string) (ListingRecord, error) {
	price, err := parseDecimal(record[2], "unit_price")
	if err != nil {
		return ListingRecord{}, err
	}
	stock, err := strconv.ParseInt(strings.TrimSpace(record[4]), 10, 64)
	if err != nil {
		return ListingRecord{}, errors.Wrapf(err, "invalid stock_quantity %q", record[4])
	}

	// Validate the row up front so errors carry the row number
	if _, err := entities.NewListing(record[1], price, record[3], stock, time.Time{}); err != nil {
		return ListingRecord{}, err
	}

	return ListingRecord{
		SupplierID:    entities.SupplierID(strings.TrimSpace(record[0])),
		ItemName:      strings.TrimSpace(record[1]),
		UnitPrice:     price,
		Unit:          strings.TrimSpace(record[3]),
		StockQuantity: stock,
	}, nil
}

func parseDecimal(s, column string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "invalid %s %q", column, s)
	}
	return d, nil
}
