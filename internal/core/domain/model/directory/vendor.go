package directory

import (
	"slices"

	"dispatch/internal/core/domain/model/kernel"
)

// Vendor is a restaurant or shop that sells through the marketplace.
type Vendor struct {
	id                      kernel.UUID
	businessName            string
	addressID               kernel.UUID
	email                   string
	emailPreferences        kernel.Preferences
	notificationPreferences kernel.Preferences
	deviceTokens            []string
}

func NewVendor(
	id kernel.UUID,
	businessName string,
	addressID kernel.UUID,
	email string,
	emailPreferences kernel.Preferences,
	notificationPreferences kernel.Preferences,
	deviceTokens []string,
) *Vendor {
	return &Vendor{
		id:                      id,
		businessName:            businessName,
		addressID:               addressID,
		email:                   email,
		emailPreferences:        emailPreferences,
		notificationPreferences: notificationPreferences,
		deviceTokens:            slices.Clone(deviceTokens),
	}
}

func (v *Vendor) ID() kernel.UUID                             { return v.id }
func (v *Vendor) BusinessName() string                        { return v.businessName }
func (v *Vendor) AddressID() kernel.UUID                      { return v.addressID }
func (v *Vendor) Email() string                               { return v.email }
func (v *Vendor) EmailPreferences() kernel.Preferences        { return v.emailPreferences }
func (v *Vendor) NotificationPreferences() kernel.Preferences { return v.notificationPreferences }
func (v *Vendor) DeviceTokens() []string                      { return slices.Clone(v.deviceTokens) }

func (v *Vendor) Party() kernel.Party {
	return kernel.Party{Kind: kernel.PartyVendor, ID: v.id}
}
