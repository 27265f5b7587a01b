package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/vendorsupply/pkg/application/services/procurement"
	"github.com/vsinha/vendorsupply/pkg/application/services/scaling"
	"github.com/vsinha/vendorsupply/pkg/infrastructure/repositories/memory"
	testhelpers "github.com/vsinha/vendorsupply/pkg/infrastructure/testing"
)

func buildReport(t *testing.T, withPlan bool) Report {
	t.Helper()
	directory, catalog := testhelpers.BuildStreetFoodTestData(memory.StoreOptions{})
	recipe, err := scaling.NewScaler(catalog, nil).ScaleDish("Pav Bhaji", 50)
	require.NoError(t, err)

	report := Report{Recipe: recipe}
	if withPlan {
		plan := procurement.NewMatcher(nil).Plan(recipe.Ingredients, directory.Snapshots())
		report.Plan = &plan
	}
	return report
}

func TestGenerate_Text(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Generate(buildReport(t, true), Config{Format: "text", Out: &out}))

	text := out.String()
	assert.Contains(t, text, "pav bhaji for 50 servings")
	assert.Contains(t, text, "100.00")
	assert.Contains(t, text, "Green Valley")
	assert.Contains(t, text, "short")
	assert.Contains(t, text, "- Butter")
	assert.Contains(t, text, "Estimated Total: 6050.00")
}

func TestGenerate_JSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Generate(buildReport(t, false), Config{Format: "json", Out: &out}))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.NotContains(t, decoded, "plan")

	recipe := decoded["recipe"].(map[string]interface{})
	first := recipe["ingredients"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "100.00", first["quantity"])
}

func TestGenerate_CSVToDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Generate(buildReport(t, true), Config{Format: "csv", OutputDir: dir, Out: &bytes.Buffer{}}))

	ingredients, err := os.ReadFile(filepath.Join(dir, "ingredients.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(ingredients)), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "ingredient,quantity,unit", lines[0])
	assert.Equal(t, "Capsicum,15.00,kg", lines[4])

	plan, err := os.ReadFile(filepath.Join(dir, "plan.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(plan), "Tomatoes,50.00,kg,green-valley,Green Valley,38.00,1900.00,true")
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	err := Generate(buildReport(t, false), Config{Format: "xml", Out: &bytes.Buffer{}})
	assert.EqualError(t, err, "unsupported output format: xml")
}
