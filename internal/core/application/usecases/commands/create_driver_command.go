package commands

import (
	"errors"
	"net/mail"
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	passwordMinLength = 8
	// bcrypt ignores everything past 72 bytes.
	passwordMaxLength = 72
)

var ErrCreateDriverCommandIsNotConstructed = errors.New(
	"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
)

// CreateDriverCommand signs up a new driver.
type CreateDriverCommand struct {
	email    string
	password string
	guard    guard.ConstructorGuard
}

func NewCreateDriverCommand(email string, password string) (CreateDriverCommand, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var emailErr, passwordErr error
	if email == "" {
		emailErr = errs.NewValueIsRequiredError("email")
	} else if _, err := mail.ParseAddress(email); err != nil {
		emailErr = errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	if n := len(password); n < passwordMinLength || n > passwordMaxLength {
		passwordErr = errs.NewValueIsOutOfRangeError("password length", n, passwordMinLength, passwordMaxLength)
	}
	if err := errors.Join(emailErr, passwordErr); err != nil {
		return CreateDriverCommand{}, err
	}

	return CreateDriverCommand{
		email:    email,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDriverCommand) Email() string {
	return c.email
}

func (c CreateDriverCommand) Password() string {
	return c.password
}

func (c CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}
