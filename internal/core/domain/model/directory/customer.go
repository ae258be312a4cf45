package directory

import (
	"slices"
	"strings"
	"unicode/utf8"

	"dispatch/internal/core/domain/model/kernel"
)

// Customer is a marketplace buyer.
type Customer struct {
	id                      kernel.UUID
	firstName               string
	lastName                string
	email                   string
	emailPreferences        kernel.Preferences
	notificationPreferences kernel.Preferences
	deviceTokens            []string
}

func NewCustomer(
	id kernel.UUID,
	firstName string,
	lastName string,
	email string,
	emailPreferences kernel.Preferences,
	notificationPreferences kernel.Preferences,
	deviceTokens []string,
) *Customer {
	return &Customer{
		id:                      id,
		firstName:               firstName,
		lastName:                lastName,
		email:                   email,
		emailPreferences:        emailPreferences,
		notificationPreferences: notificationPreferences,
		deviceTokens:            slices.Clone(deviceTokens),
	}
}

func (c *Customer) ID() kernel.UUID                             { return c.id }
func (c *Customer) FirstName() string                           { return c.firstName }
func (c *Customer) LastName() string                            { return c.lastName }
func (c *Customer) Email() string                               { return c.email }
func (c *Customer) EmailPreferences() kernel.Preferences        { return c.emailPreferences }
func (c *Customer) NotificationPreferences() kernel.Preferences { return c.notificationPreferences }
func (c *Customer) DeviceTokens() []string                      { return slices.Clone(c.deviceTokens) }

func (c *Customer) Party() kernel.Party {
	return kernel.Party{Kind: kernel.PartyCustomer, ID: c.id}
}

// ShortName is the first name followed by the last name initial, e.g. "Jane D.".
// Drivers only ever see this form.
func (c *Customer) ShortName() string {
	first := strings.TrimSpace(c.firstName)
	last := strings.TrimSpace(c.lastName)
	if last == "" {
		return first
	}
	initial, _ := utf8.DecodeRuneInString(last)
	return first + " " + strings.ToUpper(string(initial)) + "."
}
