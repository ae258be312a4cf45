package order

import (
	"errors"
	"fmt"
	"slices"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when an Item was not created via NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one line of an order. Its price is computed once, at construction,
// from the menu item base price and the surcharges of the selected modifications.
type Item struct {
	id            kernel.UUID
	menuItemID    kernel.UUID
	basePrice     decimal.Decimal
	modifications []Modification
	price         decimal.Decimal
	guard         guard.ConstructorGuard
}

// NewItem prices a new order line.
//
// Example:
//
//	mods, _ := order.ParseModifications([]byte(`[{"options":[{"price":2},{"price":1}]}]`))
//	item, _ := order.NewItem(kernel.NewUUID(), menuItemID, decimal.NewFromInt(10), mods)
//	item.Price() // 13
func NewItem(
	id kernel.UUID,
	menuItemID kernel.UUID,
	basePrice decimal.Decimal,
	modifications []Modification,
) (*Item, error) {
	item := &Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setID(id),
		item.setMenuItemID(menuItemID),
		item.setBasePrice(basePrice),
		item.setModifications(modifications),
	); err != nil {
		return nil, err
	}

	item.price = item.basePrice
	for _, m := range item.modifications {
		item.price = item.price.Add(m.Surcharge())
	}

	return item, nil
}

// RestoreItem rebuilds a persisted item. The price is recomputed, so a stored
// price that drifted from its components is corrected on load.
func RestoreItem(
	id kernel.UUID,
	menuItemID kernel.UUID,
	basePrice decimal.Decimal,
	modifications []Modification,
) (*Item, error) {
	return NewItem(id, menuItemID, basePrice, modifications)
}

func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

func (i *Item) BasePrice() decimal.Decimal {
	return i.basePrice
}

func (i *Item) Price() decimal.Decimal {
	return i.price
}

// Modifications returns a copy of the normalized modification groups.
func (i *Item) Modifications() []Modification {
	return slices.Clone(i.modifications)
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setMenuItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.menuItemID = id
	return nil
}

func (i *Item) setBasePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("base price is invalid", fmt.Errorf("%s is negative", price.String()))
	}
	i.basePrice = price
	return nil
}

func (i *Item) setModifications(modifications []Modification) error {
	for _, m := range modifications {
		if err := m.validate(); err != nil {
			return err
		}
	}
	i.modifications = slices.Clone(modifications)
	return nil
}
