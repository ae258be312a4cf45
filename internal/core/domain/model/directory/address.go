package directory

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Address is a postal address. Unit is optional.
type Address struct {
	ID     kernel.UUID
	Street string
	Unit   string
	City   string
	State  string
	Zip    string
}

func (a Address) Validate() error {
	var errList []error
	if err := a.ID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if a.Street == "" {
		errList = append(errList, errs.NewValueIsRequiredError("street"))
	}
	if a.City == "" {
		errList = append(errList, errs.NewValueIsRequiredError("city"))
	}
	return errors.Join(errList...)
}
