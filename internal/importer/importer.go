// Package importer parses scraped booking-platform pricelist exports
// into the internal pricelist model.
package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mirelle/gloss/internal/common"
	"github.com/mirelle/gloss/internal/model"
)

// scrapedExport is the JSON shape the scraper produces. Older exports
// are a bare category array; newer ones carry salon metadata.
type scrapedExport struct {
	SalonName  string           `json:"salonName"`
	SourceURL  string           `json:"sourceUrl"`
	ScrapedAt  string           `json:"scrapedAt"`
	Categories []model.Category `json:"categories"`
}

// ImportFile reads a scraped pricelist export from disk.
func ImportFile(path string) (*model.Pricelist, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("Could not open %s", path), err)
	}
	defer func() { _ = file.Close() }()

	pricelist, err := Parse(file)
	if err != nil {
		return nil, err
	}

	if pricelist.SalonName == "" {
		pricelist.SalonName = salonNameFromPath(path)
	}
	return pricelist, nil
}

// Parse decodes a scraped export. It accepts both the wrapped form
// with salon metadata and a bare category array.
func Parse(r io.Reader) (*model.Pricelist, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}

	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 {
		return nil, common.NewUserError("The export file is empty", common.ErrEmptyPricelist)
	}

	var export scrapedExport
	if data[0] == '[' {
		if err := json.Unmarshal(data, &export.Categories); err != nil {
			return nil, common.NewUserError("The export file is not valid pricelist JSON", err)
		}
	} else {
		if err := json.Unmarshal(data, &export); err != nil {
			return nil, common.NewUserError("The export file is not valid pricelist JSON", err)
		}
	}

	categories := sanitize(export.Categories)
	if len(categories) == 0 {
		return nil, common.NewUserError("The export contains no services to import", common.ErrEmptyPricelist)
	}

	importedAt := time.Now()
	if export.ScrapedAt != "" {
		if ts, err := time.Parse(time.RFC3339, export.ScrapedAt); err == nil {
			importedAt = ts
		} else {
			slog.Warn("Ignoring unparseable scrape timestamp", "scraped_at", export.ScrapedAt)
		}
	}

	pricelist := &model.Pricelist{
		ImportedAt: importedAt,
		SalonName:  strings.TrimSpace(export.SalonName),
		SourceURL:  strings.TrimSpace(export.SourceURL),
		Categories: categories,
	}

	slog.Debug("parsed scraped export",
		"salon", pricelist.SalonName,
		"categories", len(pricelist.Categories),
		"services", pricelist.ServiceCount())

	return pricelist, nil
}

// sanitize trims whitespace and drops unnamed categories and services.
// Scrapes routinely carry empty placeholder rows.
func sanitize(categories []model.Category) []model.Category {
	result := make([]model.Category, 0, len(categories))
	for _, category := range categories {
		name := strings.TrimSpace(category.Name)
		if name == "" {
			if len(category.Services) > 0 {
				slog.Warn("Skipping unnamed category", "services", len(category.Services))
			}
			continue
		}

		services := make([]model.Service, 0, len(category.Services))
		for _, svc := range category.Services {
			svc.Name = strings.TrimSpace(svc.Name)
			if svc.Name == "" {
				continue
			}
			svc.Description = strings.TrimSpace(svc.Description)
			svc.Price = strings.TrimSpace(svc.Price)
			svc.Duration = strings.TrimSpace(svc.Duration)
			services = append(services, svc)
		}
		if len(services) == 0 {
			slog.Warn("Skipping category with no services", "category", name)
			continue
		}

		category.Name = name
		category.Services = services
		result = append(result, category)
	}
	return result
}

// salonNameFromPath derives a fallback salon name from the file name.
func salonNameFromPath(path string) string {
	base := path
	if idx := strings.LastIndexAny(base, "/\\"); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndexByte(base, '.'); idx > 0 {
		base = base[:idx]
	}
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return strings.TrimSpace(base)
}
