package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// PartyKind tags which marketplace account a Party points at.
type PartyKind string

const (
	PartyDriver   PartyKind = "Driver"
	PartyCustomer PartyKind = "Customer"
	PartyVendor   PartyKind = "Vendor"
)

// Validate accepts only the three known kinds.
func (k PartyKind) Validate() error {
	switch k {
	case PartyDriver, PartyCustomer, PartyVendor:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("party kind", fmt.Errorf("%q is not a known party kind", string(k)))
	}
}

func (k PartyKind) String() string {
	return string(k)
}

// Party is a polymorphic reference to a message recipient or sender.
type Party struct {
	Kind PartyKind
	ID   UUID
}

// NewParty validates kind and id.
func NewParty(kind PartyKind, id UUID) (Party, error) {
	if err := kind.Validate(); err != nil {
		return Party{}, err
	}
	if err := id.Validate(); err != nil {
		return Party{}, err
	}
	return Party{Kind: kind, ID: id}, nil
}

func (p Party) String() string {
	return fmt.Sprintf("%s(%s)", p.Kind, p.ID)
}
