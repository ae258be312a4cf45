package queries

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrVerifyDriverCredentialsQueryIsNotConstructed = errors.New(
	"VerifyDriverCredentialsQuery must be created via NewVerifyDriverCredentialsQuery constructor",
)

// VerifyDriverCredentialsQuery checks a driver's email and password.
type VerifyDriverCredentialsQuery struct {
	email    string
	password string
	guard    guard.ConstructorGuard
}

func NewVerifyDriverCredentialsQuery(email string, password string) (VerifyDriverCredentialsQuery, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var errList []error
	if email == "" {
		errList = append(errList, errs.NewValueIsRequiredError("email"))
	}
	if password == "" {
		errList = append(errList, errs.NewValueIsRequiredError("password"))
	}
	if err := errors.Join(errList...); err != nil {
		return VerifyDriverCredentialsQuery{}, err
	}

	return VerifyDriverCredentialsQuery{
		email:    email,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q VerifyDriverCredentialsQuery) Email() string {
	return q.email
}

func (q VerifyDriverCredentialsQuery) Password() string {
	return q.password
}

func (q VerifyDriverCredentialsQuery) Validate() error {
	return q.guard.Validate(ErrVerifyDriverCredentialsQueryIsNotConstructed)
}

// VerifyDriverCredentialsQueryResponse identifies the driver whose credentials matched.
type VerifyDriverCredentialsQueryResponse struct {
	DriverID       kernel.UUID
	Status         driver.Status
	EmailConfirmed bool
}
