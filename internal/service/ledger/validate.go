package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/skinledger/internal/domain/models"
)

// Field names as they appear in requests and error messages.
const (
	fieldDate          = "date"
	fieldItemName      = "item_name"
	fieldCostPerItem   = "cost_per_item"
	fieldCurrentPrice  = "current_price"
	fieldNumberOfItems = "number_of_items"
	fieldItemLink      = "item_link"
)

// buildItem validates a create request and assembles the item's raw fields.
// Identity and creation time are assigned by the store afterwards.
func buildItem(input models.ItemInput) (models.Item, error) {
	var item models.Item
	var missing []string

	if trimmed(input.Date) == "" {
		missing = append(missing, fieldDate)
	}
	if trimmed(input.CostPerItem) == "" {
		missing = append(missing, fieldCostPerItem)
	}
	if trimmed(input.NumberOfItems) == "" {
		missing = append(missing, fieldNumberOfItems)
	}
	if trimmed(input.ItemLink) == "" {
		missing = append(missing, fieldItemLink)
	}
	if len(missing) > 0 {
		return item, &models.ValidationError{Fields: missing}
	}

	cost, err := normalizeAmount(fieldCostPerItem, string(*input.CostPerItem))
	if err != nil {
		return item, err
	}
	count, err := normalizeCount(string(*input.NumberOfItems))
	if err != nil {
		return item, err
	}

	// An item with no observed market update has not changed value yet, so an
	// absent or empty current price defaults to the cost per item.
	price := cost
	if trimmed(input.CurrentPrice) != "" {
		price, err = normalizeAmount(fieldCurrentPrice, string(*input.CurrentPrice))
		if err != nil {
			return item, err
		}
	}

	item.Date = trimmed(input.Date)
	item.ItemLink = trimmed(input.ItemLink)
	if input.ItemName != nil {
		item.ItemName = strings.TrimSpace(string(*input.ItemName))
	}
	item.CostPerItem = cost
	item.CurrentPrice = price
	item.NumberOfItems = count

	return item, nil
}

// mergeItem validates an update request against an existing item and returns
// the merged result. Only supplied fields are overwritten; a supplied-but-empty
// required field is a validation failure, while an empty current price
// re-derives the default from the (possibly updated) cost.
func mergeItem(existing models.Item, input models.ItemInput) (models.Item, error) {
	merged := existing

	var invalid []string
	if input.Date != nil && trimmed(input.Date) == "" {
		invalid = append(invalid, fieldDate)
	}
	if input.CostPerItem != nil && trimmed(input.CostPerItem) == "" {
		invalid = append(invalid, fieldCostPerItem)
	}
	if input.NumberOfItems != nil && trimmed(input.NumberOfItems) == "" {
		invalid = append(invalid, fieldNumberOfItems)
	}
	if input.ItemLink != nil && trimmed(input.ItemLink) == "" {
		invalid = append(invalid, fieldItemLink)
	}
	if len(invalid) > 0 {
		return existing, &models.ValidationError{Fields: invalid}
	}

	if input.Date != nil {
		merged.Date = trimmed(input.Date)
	}
	if input.ItemName != nil {
		merged.ItemName = strings.TrimSpace(string(*input.ItemName))
	}
	if input.ItemLink != nil {
		merged.ItemLink = trimmed(input.ItemLink)
	}
	if input.CostPerItem != nil {
		cost, err := normalizeAmount(fieldCostPerItem, string(*input.CostPerItem))
		if err != nil {
			return existing, err
		}
		merged.CostPerItem = cost
	}
	if input.NumberOfItems != nil {
		count, err := normalizeCount(string(*input.NumberOfItems))
		if err != nil {
			return existing, err
		}
		merged.NumberOfItems = count
	}
	if input.CurrentPrice != nil {
		if trimmed(input.CurrentPrice) == "" {
			merged.CurrentPrice = merged.CostPerItem
		} else {
			price, err := normalizeAmount(fieldCurrentPrice, string(*input.CurrentPrice))
			if err != nil {
				return existing, err
			}
			merged.CurrentPrice = price
		}
	}

	return merged, nil
}

// normalizeAmount strips display decoration from a monetary or percent field
// and parses the residue as a non-negative decimal.
func normalizeAmount(field, raw string) (decimal.Decimal, error) {
	cleaned := stripDecoration(raw)
	if cleaned == "" {
		return decimal.Zero, &models.FormatError{Field: field, Value: raw}
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil || d.IsNegative() {
		return decimal.Zero, &models.FormatError{Field: field, Value: raw}
	}

	return d, nil
}

// normalizeCount parses a count field, which must be a positive integer.
func normalizeCount(raw string) (int64, error) {
	d, err := normalizeAmount(fieldNumberOfItems, raw)
	if err != nil {
		return 0, err
	}

	if !d.IsInteger() || !d.IsPositive() {
		return 0, &models.FormatError{Field: fieldNumberOfItems, Value: raw}
	}

	return d.IntPart(), nil
}

// stripDecoration removes currency symbols, percent signs, thousands
// separators and whitespace, leaving the bare numeric text.
func stripDecoration(raw string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '$', '%', ',', ' ', '\t':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
}

func trimmed(v *models.FieldValue) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(string(*v))
}
