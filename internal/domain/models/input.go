package models

import (
	"encoding/json"
	"fmt"
)

// FieldValue is a raw request field. Clients send numeric fields as decorated
// display strings ("$1,234.56", "50%"), but plain JSON numbers are accepted
// too; either way the raw text is preserved for the validator to normalize.
type FieldValue string

// UnmarshalJSON accepts a JSON string or number.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = FieldValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*v = FieldValue(n.String())
		return nil
	}

	return fmt.Errorf("field must be a string or a number, got %s", data)
}

// Field wraps a string as an optional request field.
func Field(s string) *FieldValue {
	v := FieldValue(s)
	return &v
}

// ItemInput is the field map carried by add and edit requests. Pointers
// distinguish a field that was not supplied from one supplied empty: on
// update, nil fields retain the item's prior values.
type ItemInput struct {
	Date          *FieldValue `json:"date"`
	ItemName      *FieldValue `json:"item_name"`
	CostPerItem   *FieldValue `json:"cost_per_item"`
	CurrentPrice  *FieldValue `json:"current_price"`
	NumberOfItems *FieldValue `json:"number_of_items"`
	ItemLink      *FieldValue `json:"item_link"`
}
