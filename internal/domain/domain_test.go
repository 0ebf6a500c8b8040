package domain

import (
	"strings"
	"testing"
)

func TestDefaultCatalogValid(t *testing.T) {
	c := DefaultCatalog()
	if err := c.Validate(); err != nil {
		t.Fatalf("default catalog should validate: %v", err)
	}
	if len(c) != 8 {
		t.Fatalf("expected 8 catalog entries, got %d", len(c))
	}
	base, ok := c.Base()
	if !ok || base.Code != "BTC-USD" || base.Source != SourceYahoo {
		t.Fatalf("unexpected base entry: %+v", base)
	}
	if len(c.RatioEntries()) != 7 {
		t.Fatalf("expected 7 ratio entries, got %d", len(c.RatioEntries()))
	}
}

func TestCatalogValidate(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
		wantErr string
	}{
		{"empty", Catalog{}, "empty"},
		{"missing id", Catalog{{Source: SourceYahoo, Code: "X"}}, "empty id"},
		{"duplicate id", Catalog{
			{ID: "btc_usd", Source: SourceYahoo, Code: "BTC-USD"},
			{ID: "btc_usd", Source: SourceYahoo, Code: "BTC-USD"},
		}, "duplicate"},
		{"bad source", Catalog{{ID: "btc_usd", Source: "bloomberg", Code: "X"}}, "unknown source"},
		{"missing code", Catalog{{ID: "btc_usd", Source: SourceYahoo}}, "empty source code"},
		{"no base", Catalog{{ID: "gold_usd", Source: SourceYahoo, Code: "GC=F"}}, "missing base"},
	}
	for _, tt := range tests {
		err := tt.catalog.Validate()
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Fatalf("%s: expected error containing %q, got %v", tt.name, tt.wantErr, err)
		}
	}
}

func TestCatalogByID(t *testing.T) {
	c := DefaultCatalog()
	e, ok := c.ByID("housing_west")
	if !ok || e.Source != SourceFRED || e.Code != "MSPW" {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if _, ok := c.ByID("palladium"); ok {
		t.Fatal("expected lookup miss for unknown id")
	}
}
