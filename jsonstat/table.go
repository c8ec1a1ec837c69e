// Package jsonstat decodes sparse JSON-stat style statistical responses into
// flat tabular records. A response carries two ordered dimension axes (geo
// and time) plus a value mapping from a row-major linear index to the
// observation; missing cells are absent from the mapping.
package jsonstat

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AxisEntry is one (code, label) pair of a dimension axis.
type AxisEntry struct {
	Code  string
	Label string
}

// Axis is an ordered dimension axis. The entry order is the order in which
// the codes appeared in the response body; position decoding depends on it.
type Axis []AxisEntry

// UnmarshalJSON decodes a JSON object into an ordered list of entries. A
// plain map would lose the key order, so the object is walked token by
// token instead.
func (a *Axis) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read axis: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("axis must be a JSON object, got: %v", tok)
	}

	entries := Axis{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read axis code: %w", err)
		}
		code, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("axis code must be a string, got: %v", keyTok)
		}

		var label string
		if err := dec.Decode(&label); err != nil {
			return fmt.Errorf("failed to read label for %s: %w", code, err)
		}

		entries = append(entries, AxisEntry{Code: code, Label: label})
	}

	*a = entries
	return nil
}

// Codes lists the axis codes in order.
func (a Axis) Codes() []string {
	codes := make([]string, len(a))
	for i, entry := range a {
		codes[i] = entry.Code
	}
	return codes
}

// Category carries the labelled entries of one dimension.
type Category struct {
	Label Axis `json:"label"`
}

// Dimension is one axis of the statistical cube.
type Dimension struct {
	Category Category `json:"category"`
}

// Table is the decoded statistical response.
type Table struct {
	Dimension struct {
		Geo  *Dimension `json:"geo"`
		Time *Dimension `json:"time"`
	} `json:"dimension"`
	Value map[string]float64 `json:"value"`
}

// SchemaError reports a response whose shape or indexing violates the
// statistical-table contract.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error in %s: %s", e.Field, e.Reason)
}

// Validate checks that both axes are present and non-empty before any
// position arithmetic runs.
func (t *Table) Validate() error {
	if t.Dimension.Geo == nil {
		return &SchemaError{Field: "dimension.geo", Reason: "missing"}
	}
	if t.Dimension.Time == nil {
		return &SchemaError{Field: "dimension.time", Reason: "missing"}
	}
	if len(t.Dimension.Geo.Category.Label) == 0 {
		return &SchemaError{Field: "dimension.geo.category.label", Reason: "empty"}
	}
	if len(t.Dimension.Time.Category.Label) == 0 {
		return &SchemaError{Field: "dimension.time.category.label", Reason: "empty"}
	}
	return nil
}
