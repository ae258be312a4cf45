package directory

import (
	"dispatch/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// MenuItem is a vendor's catalogue entry. Price is the base price before modifications.
type MenuItem struct {
	ID       kernel.UUID
	VendorID kernel.UUID
	Name     string
	Price    decimal.Decimal
}
