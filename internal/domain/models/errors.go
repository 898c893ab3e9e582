package models

import (
	"fmt"
	"strings"
)

// ValidationError reports required fields that are missing or invalid on a
// mutation. The mutation is never partially applied.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid field(s): %s", strings.Join(e.Fields, ", "))
}

// FormatError reports a numeric field whose value could not be parsed after
// stripping display decoration.
type FormatError struct {
	Field string
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %q is not a valid value", e.Field, e.Value)
}

// NotFoundError reports an operation referencing a nonexistent item.
type NotFoundError struct {
	ItemID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item %s not found", e.ItemID)
}
