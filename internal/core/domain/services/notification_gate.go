package services

import "dispatch/internal/core/domain/model/kernel"

// AccountCategory is the email category for account-critical mail.
// It is delivered whatever the recipient's email preferences say.
const AccountCategory = "ACCOUNT"

// Recipient is anything a message or email can be addressed to: a driver,
// a vendor or a customer. The kind is carried by Party.
type Recipient interface {
	Party() kernel.Party
	Email() string
	DeviceTokens() []string
	EmailPreferences() kernel.Preferences
	NotificationPreferences() kernel.Preferences
}

// NotificationGate is a pure predicate over a recipient's current preferences.
// Unset categories count as disabled.
type NotificationGate struct{}

func NewNotificationGate() NotificationGate {
	return NotificationGate{}
}

// AllowsEmail reports whether r accepts email of category.
func (NotificationGate) AllowsEmail(r Recipient, category string) bool {
	if category == AccountCategory {
		return true
	}
	return r.EmailPreferences().Enabled(category)
}

// AllowsNotification reports whether r accepts push and in-app messages of category.
// An empty category is never allowed.
func (NotificationGate) AllowsNotification(r Recipient, category string) bool {
	if category == "" {
		return false
	}
	return r.NotificationPreferences().Enabled(category)
}
