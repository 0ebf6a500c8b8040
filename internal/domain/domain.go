package domain

import (
	"fmt"
	"time"
)

// Observation is a single dated price reading from an external source.
type Observation struct {
	Date  time.Time
	Price float64
}

// ObservationSeries is a dated price series for one underlying asset.
// Source order is not guaranteed and the same calendar day may appear twice.
type ObservationSeries []Observation

// SourceKind identifies which external provider an asset is fetched from.
type SourceKind string

const (
	SourceYahoo SourceKind = "yahoo"
	SourceFRED  SourceKind = "fred"
)

// BaseAssetID is the catalog entry every ratio document is priced against.
const BaseAssetID = "btc_usd"

type CatalogEntry struct {
	ID     string     `yaml:"id"`
	Name   string     `yaml:"name"`
	Source SourceKind `yaml:"source"`
	Code   string     `yaml:"code"`
}

type Catalog []CatalogEntry

// DefaultCatalog returns the built-in set of tracked documents:
// the btc_usd base plus seven ratio assets.
func DefaultCatalog() Catalog {
	return Catalog{
		{ID: "btc_usd", Name: "Bitcoin", Source: SourceYahoo, Code: "BTC-USD"},
		{ID: "gold_usd", Name: "Gold", Source: SourceYahoo, Code: "GC=F"},
		{ID: "sp500", Name: "S&P 500", Source: SourceYahoo, Code: "^GSPC"},
		{ID: "housing_us_median", Name: "US Median Home Price", Source: SourceFRED, Code: "MSPUS"},
		{ID: "housing_northeast", Name: "Northeast Median Home Price", Source: SourceFRED, Code: "MSPNE"},
		{ID: "housing_midwest", Name: "Midwest Median Home Price", Source: SourceFRED, Code: "MSPMW"},
		{ID: "housing_south", Name: "South Median Home Price", Source: SourceFRED, Code: "MSPS"},
		{ID: "housing_west", Name: "West Median Home Price", Source: SourceFRED, Code: "MSPW"},
	}
}

// Validate checks the catalog is usable before any fetch starts.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("catalog is empty")
	}
	seen := make(map[string]bool, len(c))
	hasBase := false
	for _, e := range c {
		if e.ID == "" {
			return fmt.Errorf("catalog entry with empty id")
		}
		if seen[e.ID] {
			return fmt.Errorf("duplicate catalog id: %s", e.ID)
		}
		seen[e.ID] = true
		if e.Source != SourceYahoo && e.Source != SourceFRED {
			return fmt.Errorf("unknown source %q for %s", e.Source, e.ID)
		}
		if e.Code == "" {
			return fmt.Errorf("empty source code for %s", e.ID)
		}
		if e.ID == BaseAssetID {
			hasBase = true
		}
	}
	if !hasBase {
		return fmt.Errorf("catalog missing base entry %s", BaseAssetID)
	}
	return nil
}

// Base returns the btc_usd entry.
func (c Catalog) Base() (CatalogEntry, bool) {
	return c.ByID(BaseAssetID)
}

func (c Catalog) ByID(id string) (CatalogEntry, bool) {
	for _, e := range c {
		if e.ID == id {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// RatioEntries returns every entry except the base.
func (c Catalog) RatioEntries() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(c))
	for _, e := range c {
		if e.ID != BaseAssetID {
			out = append(out, e)
		}
	}
	return out
}

// RunSummary reports the outcome of one full regeneration run.
type RunSummary struct {
	StartedAt time.Time         `json:"started_at"`
	Duration  time.Duration     `json:"duration_ns"`
	Written   []string          `json:"written"`
	Errors    map[string]string `json:"errors,omitempty"`
}

func (s *RunSummary) AddError(assetID string, err error) {
	if s.Errors == nil {
		s.Errors = make(map[string]string)
	}
	s.Errors[assetID] = err.Error()
}
