package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirelle/gloss/internal/common"
)

const wrappedExport = `{
	"salonName": "Studio Bella",
	"sourceUrl": "https://booking.example/studio-bella",
	"scrapedAt": "2026-08-01T10:30:00Z",
	"categories": [
		{
			"categoryName": "Strzyżenie",
			"services": [
				{"name": "Strzyżenie damskie", "description": "Mycie, strzyżenie, modelowanie", "price": "od 120 zł", "duration": "60 min"},
				{"name": "Strzyżenie męskie", "price": "80 zł"}
			]
		},
		{
			"categoryName": "Koloryzacja",
			"services": [
				{"name": "Baleyage", "price": "od 250 zł"}
			]
		}
	]
}`

func TestParseWrappedExport(t *testing.T) {
	pricelist, err := Parse(strings.NewReader(wrappedExport))
	require.NoError(t, err)

	assert.Equal(t, "Studio Bella", pricelist.SalonName)
	assert.Equal(t, "https://booking.example/studio-bella", pricelist.SourceURL)
	assert.Equal(t, time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC), pricelist.ImportedAt)

	require.Len(t, pricelist.Categories, 2)
	assert.Equal(t, "Strzyżenie", pricelist.Categories[0].Name)
	require.Len(t, pricelist.Categories[0].Services, 2)
	assert.Equal(t, "Mycie, strzyżenie, modelowanie", pricelist.Categories[0].Services[0].Description)
	assert.Empty(t, pricelist.Categories[0].Services[1].Description, "missing descriptions are tolerated")
	assert.Equal(t, 3, pricelist.ServiceCount())
}

func TestParseBareCategoryArray(t *testing.T) {
	input := `[
		{"categoryName": "Pielęgnacja", "services": [{"name": "Olaplex"}]}
	]`

	pricelist, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Empty(t, pricelist.SalonName)
	require.Len(t, pricelist.Categories, 1)
	assert.Equal(t, "Olaplex", pricelist.Categories[0].Services[0].Name)
	assert.WithinDuration(t, time.Now(), pricelist.ImportedAt, 5*time.Second)
}

func TestParseSanitizesPlaceholderRows(t *testing.T) {
	input := `{
		"categories": [
			{"categoryName": "  Strzyżenie  ", "services": [
				{"name": "  Strzyżenie damskie  ", "price": " 120 zł "},
				{"name": "   "}
			]},
			{"categoryName": "", "services": [{"name": "Osierocona usługa"}]},
			{"categoryName": "Pusta kategoria", "services": []}
		]
	}`

	pricelist, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, pricelist.Categories, 1)
	assert.Equal(t, "Strzyżenie", pricelist.Categories[0].Name)
	require.Len(t, pricelist.Categories[0].Services, 1)
	assert.Equal(t, "Strzyżenie damskie", pricelist.Categories[0].Services[0].Name)
	assert.Equal(t, "120 zł", pricelist.Categories[0].Services[0].Price)
}

func TestParseRejectsEmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty file", input: ""},
		{name: "whitespace only", input: "  \n  "},
		{name: "empty array", input: "[]"},
		{name: "no usable services", input: `{"categories": [{"categoryName": "X", "services": []}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)

			var userErr *common.UserError
			assert.ErrorAs(t, err, &userErr, "import failures carry a user-facing message")
		})
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"categories": [`))
	require.Error(t, err)

	var userErr *common.UserError
	assert.ErrorAs(t, err, &userErr)
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "studio-bella.json")
	require.NoError(t, os.WriteFile(path, []byte(wrappedExport), 0o600))

	pricelist, err := ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Studio Bella", pricelist.SalonName)
}

func TestImportFileFallsBackToFileName(t *testing.T) {
	input := `[{"categoryName": "Strzyżenie", "services": [{"name": "Strzyżenie damskie"}]}]`

	dir := t.TempDir()
	path := filepath.Join(dir, "salon_piekna.json")
	require.NoError(t, os.WriteFile(path, []byte(input), 0o600))

	pricelist, err := ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, "salon piekna", pricelist.SalonName)
}

func TestImportFileMissing(t *testing.T) {
	_, err := ImportFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	var userErr *common.UserError
	assert.ErrorAs(t, err, &userErr)
}
