package order

import (
	"bytes"
	"encoding/json"
	"fmt"

	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Option is one selected choice inside a modification group, e.g. "extra cheese".
type Option struct {
	Name  string          `json:"name,omitempty"`
	Price decimal.Decimal `json:"price"`
}

// Modification is a group of selected options, e.g. "toppings".
type Modification struct {
	Name    string   `json:"name,omitempty"`
	Options []Option `json:"options"`
}

// Surcharge is the sum of the option prices in the group.
func (m Modification) Surcharge() decimal.Decimal {
	sum := decimal.Zero
	for _, o := range m.Options {
		sum = sum.Add(o.Price)
	}
	return sum
}

func (m Modification) validate() error {
	for _, o := range m.Options {
		if o.Price.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause(
				"modification option price",
				fmt.Errorf("%s is negative", o.Price.String()),
			)
		}
	}
	return nil
}

// ParseModifications normalizes the two shapes clients send, a single
// modification object or a list of them, into one ordered slice.
// Empty input and JSON null yield no modifications.
func ParseModifications(raw []byte) ([]Modification, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '{':
		var single Modification
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("modifications", err)
		}
		return []Modification{single}, nil
	case '[':
		var list []Modification
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("modifications", err)
		}
		return list, nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"modifications",
			fmt.Errorf("expected an object or a list, got %q", string(trimmed[:1])),
		)
	}
}
