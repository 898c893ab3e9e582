package ledger

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/skinledger/internal/domain/models"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain", "12.34", "12.34", false},
		{"currency symbol", "$12.34", "12.34", false},
		{"thousands separators", "$1,234.56", "1234.56", false},
		{"percent sign", "50%", "50", false},
		{"surrounding whitespace", "  $7.00  ", "7", false},
		{"inner spaces", "1 234.56", "1234.56", false},
		{"zero", "0", "0", false},
		{"integer", "42", "42", false},
		{"empty", "", "", true},
		{"decoration only", "$,", "", true},
		{"letters", "abc", "", true},
		{"mixed residue", "12.3x", "", true},
		{"double dot", "1.2.3", "", true},
		{"negative", "-5", "", true},
		{"negative decorated", "$-5.00", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeAmount("cost_per_item", tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("normalizeAmount(%q) = %s, want error", tt.raw, got)
				}
				var formatErr *models.FormatError
				if !errors.As(err, &formatErr) {
					t.Fatalf("error type = %T, want *models.FormatError", err)
				}
				if formatErr.Field != "cost_per_item" {
					t.Errorf("FormatError.Field = %q, want cost_per_item", formatErr.Field)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeAmount(%q) error: %v", tt.raw, err)
			}
			if want := decimal.RequireFromString(tt.want); !got.Equal(want) {
				t.Errorf("normalizeAmount(%q) = %s, want %s", tt.raw, got, want)
			}
		})
	}
}

func TestNormalizeCount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr bool
	}{
		{"plain", "4", 4, false},
		{"trailing zero fraction", "4.0", 4, false},
		{"decorated", " 1,200 ", 1200, false},
		{"fractional", "3.5", 0, true},
		{"zero", "0", 0, true},
		{"negative", "-2", 0, true},
		{"letters", "four", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeCount(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("normalizeCount(%q) = %d, %v; wantErr = %v", tt.raw, got, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("normalizeCount(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestBuildItem(t *testing.T) {
	t.Run("all fields supplied", func(t *testing.T) {
		item, err := buildItem(models.ItemInput{
			Date:          models.Field("2024-05-01"),
			ItemName:      models.Field("Widget"),
			CostPerItem:   models.Field("$10.50"),
			CurrentPrice:  models.Field("$12.00"),
			NumberOfItems: models.Field("4"),
			ItemLink:      models.Field("https://example.com/widget"),
		})
		if err != nil {
			t.Fatalf("buildItem: %v", err)
		}
		if item.Date != "2024-05-01" || item.ItemName != "Widget" || item.ItemLink != "https://example.com/widget" {
			t.Errorf("unexpected string fields: %+v", item)
		}
		if !item.CostPerItem.Equal(decimal.RequireFromString("10.5")) {
			t.Errorf("CostPerItem = %s", item.CostPerItem)
		}
		if !item.CurrentPrice.Equal(decimal.NewFromInt(12)) {
			t.Errorf("CurrentPrice = %s", item.CurrentPrice)
		}
		if item.NumberOfItems != 4 {
			t.Errorf("NumberOfItems = %d", item.NumberOfItems)
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		item, err := buildItem(models.ItemInput{
			Date:          models.Field("2024-05-01"),
			CostPerItem:   models.Field("10.50"),
			NumberOfItems: models.Field("4"),
			ItemLink:      models.Field("https://example.com/widget"),
		})
		if err != nil {
			t.Fatalf("buildItem: %v", err)
		}
		if item.ItemName != "" {
			t.Errorf("ItemName = %q, want empty default", item.ItemName)
		}
		// A never-repriced item has not changed value yet.
		if !item.CurrentPrice.Equal(item.CostPerItem) {
			t.Errorf("CurrentPrice = %s, want cost %s", item.CurrentPrice, item.CostPerItem)
		}
	})

	t.Run("empty current price takes the default too", func(t *testing.T) {
		item, err := buildItem(models.ItemInput{
			Date:          models.Field("2024-05-01"),
			CostPerItem:   models.Field("3"),
			CurrentPrice:  models.Field("  "),
			NumberOfItems: models.Field("1"),
			ItemLink:      models.Field("https://example.com/widget"),
		})
		if err != nil {
			t.Fatalf("buildItem: %v", err)
		}
		if !item.CurrentPrice.Equal(decimal.NewFromInt(3)) {
			t.Errorf("CurrentPrice = %s, want 3", item.CurrentPrice)
		}
	})

	t.Run("missing required fields are all named", func(t *testing.T) {
		_, err := buildItem(models.ItemInput{ItemName: models.Field("Widget")})

		var validationErr *models.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("error type = %T, want *models.ValidationError", err)
		}
		got := append([]string(nil), validationErr.Fields...)
		sort.Strings(got)
		want := []string{"cost_per_item", "date", "item_link", "number_of_items"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Fields = %v, want %v", got, want)
		}
	})

	t.Run("bad numeric field is a format error", func(t *testing.T) {
		_, err := buildItem(models.ItemInput{
			Date:          models.Field("2024-05-01"),
			CostPerItem:   models.Field("ten dollars"),
			NumberOfItems: models.Field("4"),
			ItemLink:      models.Field("https://example.com/widget"),
		})

		var formatErr *models.FormatError
		if !errors.As(err, &formatErr) {
			t.Fatalf("error type = %T, want *models.FormatError", err)
		}
		if formatErr.Field != "cost_per_item" {
			t.Errorf("FormatError.Field = %q", formatErr.Field)
		}
	})
}

func TestMergeItem(t *testing.T) {
	existing := models.Item{
		ItemID:        "id-1",
		Date:          "2024-05-01",
		ItemName:      "Widget",
		CostPerItem:   decimal.NewFromInt(10),
		CurrentPrice:  decimal.NewFromInt(15),
		NumberOfItems: 4,
		ItemLink:      "https://example.com/widget",
	}

	t.Run("only supplied fields change", func(t *testing.T) {
		merged, err := mergeItem(existing, models.ItemInput{
			CurrentPrice: models.Field("$20.00"),
		})
		if err != nil {
			t.Fatalf("mergeItem: %v", err)
		}
		if !merged.CurrentPrice.Equal(decimal.NewFromInt(20)) {
			t.Errorf("CurrentPrice = %s, want 20", merged.CurrentPrice)
		}
		if merged.Date != existing.Date || merged.ItemName != existing.ItemName ||
			merged.ItemLink != existing.ItemLink || merged.NumberOfItems != existing.NumberOfItems ||
			!merged.CostPerItem.Equal(existing.CostPerItem) {
			t.Errorf("unrelated fields changed: %+v", merged)
		}
	})

	t.Run("empty required field is invalid", func(t *testing.T) {
		_, err := mergeItem(existing, models.ItemInput{Date: models.Field("")})

		var validationErr *models.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("error type = %T, want *models.ValidationError", err)
		}
		if !reflect.DeepEqual(validationErr.Fields, []string{"date"}) {
			t.Errorf("Fields = %v, want [date]", validationErr.Fields)
		}
	})

	t.Run("name may be cleared", func(t *testing.T) {
		merged, err := mergeItem(existing, models.ItemInput{ItemName: models.Field("")})
		if err != nil {
			t.Fatalf("mergeItem: %v", err)
		}
		if merged.ItemName != "" {
			t.Errorf("ItemName = %q, want empty", merged.ItemName)
		}
	})

	t.Run("empty current price re-derives from the updated cost", func(t *testing.T) {
		merged, err := mergeItem(existing, models.ItemInput{
			CostPerItem:  models.Field("25"),
			CurrentPrice: models.Field(""),
		})
		if err != nil {
			t.Fatalf("mergeItem: %v", err)
		}
		if !merged.CurrentPrice.Equal(decimal.NewFromInt(25)) {
			t.Errorf("CurrentPrice = %s, want 25", merged.CurrentPrice)
		}
	})

	t.Run("format failure leaves nothing applied", func(t *testing.T) {
		merged, err := mergeItem(existing, models.ItemInput{
			Date:        models.Field("2024-06-01"),
			CostPerItem: models.Field("not a number"),
		})
		if err == nil {
			t.Fatal("expected error")
		}
		if merged.Date != existing.Date {
			t.Errorf("Date = %q, want unchanged %q", merged.Date, existing.Date)
		}
	})
}
