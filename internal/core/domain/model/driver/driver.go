package driver

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	emailMaxLength        = 64
	passwordHashMaxLength = 128
)

// Notification categories a driver can switch on or off.
const (
	CategoryRequestDriver = "REQUEST_DRIVER"
	CategoryChat          = "CHAT"
)

var (
	// ErrDriverIsNotConstructed is returned when using a Driver that was not created through
	// NewDriver or RestoreDriver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")

	// ErrActiveOrdersOnRoute is returned when a driver with assigned orders tries to go INACTIVE.
	ErrActiveOrdersOnRoute = errors.New("There are still active orders on your route!")

	// ErrDriverIsOffline is returned when an INACTIVE driver is asked to take an order.
	ErrDriverIsOffline = errors.New("Driver is offline.")

	// ErrOrderNotOnRoute is returned when finishing an order the driver does not carry.
	ErrOrderNotOnRoute = errors.New("order is not on the driver's route")
)

// DefaultNotificationPreferences is what a new driver receives at signup.
func DefaultNotificationPreferences() kernel.Preferences {
	return kernel.NewPreferences(map[string]bool{
		CategoryRequestDriver: true,
		CategoryChat:          true,
	})
}

// Driver is a courier account. It is the aggregate root for presence, device
// fan-out, preferences and the driver's current route.
//
// Business rules:
//   - email is required and at most 64 characters, the password hash at most 128
//   - a new driver starts INACTIVE, offline, with no known location
//   - device tokens form an ordered set, the most recently registered token is last
//   - the driver cannot become INACTIVE while orders is non-empty
//   - an order id appears at most once in orders
//
// Route vendor affinity (every order in orders belongs to one vendor) needs the
// orders themselves and is checked by services.DriverAvailability before TakeOrder.
type Driver struct {
	id                      kernel.UUID
	email                   string
	passwordHash            string
	emailConfirmed          bool
	online                  bool
	location                *kernel.GeoPoint
	status                  Status
	deviceTokens            []string
	emailPreferences        kernel.Preferences
	notificationPreferences kernel.Preferences
	orders                  []kernel.UUID
	orderHistory            []kernel.UUID
	guard                   guard.ConstructorGuard
}

// NewDriver registers a driver at signup. passwordHash must already be hashed.
//
// Example:
//
//	hash, _ := hasher.Hash("secret")
//	d, err := driver.NewDriver(kernel.NewUUID(), "ann@example.com", hash)
//	if err != nil {
//	    // Handle validation error
//	}
func NewDriver(id kernel.UUID, email string, passwordHash string) (*Driver, error) {
	d := &Driver{
		status:                  StatusInactive,
		emailPreferences:        kernel.NewPreferences(nil),
		notificationPreferences: DefaultNotificationPreferences(),
		guard:                   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setEmail(email),
		d.setPasswordHash(passwordHash),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver reconstructs a driver from persistence. A nil location means the
// driver never reported a position.
func RestoreDriver(
	id kernel.UUID,
	email string,
	passwordHash string,
	emailConfirmed bool,
	online bool,
	location *kernel.GeoPoint,
	status Status,
	deviceTokens []string,
	emailPreferences kernel.Preferences,
	notificationPreferences kernel.Preferences,
	orders []kernel.UUID,
	orderHistory []kernel.UUID,
) (*Driver, error) {
	d := &Driver{
		emailConfirmed:          emailConfirmed,
		online:                  online,
		emailPreferences:        emailPreferences,
		notificationPreferences: notificationPreferences,
		orderHistory:            slices.Clone(orderHistory),
		guard:                   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setEmail(email),
		d.setPasswordHash(passwordHash),
		d.setLocation(location),
		d.setStatus(status),
		d.setDeviceTokens(deviceTokens),
		d.setOrders(orders),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the Driver instance was properly constructed.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

func (d *Driver) ID() kernel.UUID {
	return d.id
}

func (d *Driver) Email() string {
	return d.email
}

func (d *Driver) PasswordHash() string {
	return d.passwordHash
}

func (d *Driver) EmailConfirmed() bool {
	return d.emailConfirmed
}

func (d *Driver) Online() bool {
	return d.online
}

// Location returns the last reported position and false when none was reported.
func (d *Driver) Location() (kernel.GeoPoint, bool) {
	if d.location == nil {
		return kernel.GeoPoint{}, false
	}
	return *d.location, true
}

func (d *Driver) Status() Status {
	return d.status
}

// DeviceTokens returns a copy of the registered tokens, oldest first.
func (d *Driver) DeviceTokens() []string {
	return slices.Clone(d.deviceTokens)
}

func (d *Driver) EmailPreferences() kernel.Preferences {
	return d.emailPreferences
}

func (d *Driver) NotificationPreferences() kernel.Preferences {
	return d.notificationPreferences
}

// Orders returns a copy of the ids of the orders on the driver's current route.
func (d *Driver) Orders() []kernel.UUID {
	return slices.Clone(d.orders)
}

// OrderHistory returns a copy of the ids of delivered or dropped orders.
func (d *Driver) OrderHistory() []kernel.UUID {
	return slices.Clone(d.orderHistory)
}

func (d *Driver) HasActiveOrders() bool {
	return len(d.orders) > 0
}

// Party is the driver as a message recipient or sender.
func (d *Driver) Party() kernel.Party {
	return kernel.Party{Kind: kernel.PartyDriver, ID: d.id}
}

// ConfirmEmail marks the email address as verified.
func (d *Driver) ConfirmEmail() {
	d.emailConfirmed = true
}

// ChangeStatus switches the driver between ACTIVE and INACTIVE. Going INACTIVE is
// refused with ErrActiveOrdersOnRoute while orders remain on the route; the status is left untouched.
func (d *Driver) ChangeStatus(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if next == StatusInactive && d.HasActiveOrders() {
		return ErrActiveOrdersOnRoute
	}

	d.status = next
	return nil
}

// AddDeviceToken registers token for push fan-out. A token that is already known
// is moved to the end, so calling this twice leaves exactly one occurrence, last.
func (d *Driver) AddDeviceToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errs.NewValueIsRequiredError("device token")
	}

	d.deviceTokens = slices.DeleteFunc(d.deviceTokens, func(t string) bool { return t == token })
	d.deviceTokens = append(d.deviceTokens, token)
	return nil
}

// UpdatePresence records whether the driver app is connected and where the driver is.
func (d *Driver) UpdatePresence(online bool, location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	d.online = online
	d.location = &location
	return nil
}

// TakeOrder puts orderID on the driver's route. The caller is expected to have
// checked route vendor affinity with services.DriverAvailability.
func (d *Driver) TakeOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if !d.status.IsActive() {
		return ErrDriverIsOffline
	}
	if slices.ContainsFunc(d.orders, orderID.IsEqual) {
		return errs.NewValueIsInvalidErrorWithCause("order", fmt.Errorf("order %s is already on the route", orderID))
	}

	d.orders = append(d.orders, orderID)
	return nil
}

// FinishOrder moves orderID from the route to the order history.
func (d *Driver) FinishOrder(orderID kernel.UUID) error {
	idx := slices.IndexFunc(d.orders, orderID.IsEqual)
	if idx < 0 {
		return ErrOrderNotOnRoute
	}

	d.orders = slices.Delete(d.orders, idx, idx+1)
	d.orderHistory = append(d.orderHistory, orderID)
	return nil
}

func (d *Driver) SetEmailPreference(category string, enabled bool) error {
	if strings.TrimSpace(category) == "" {
		return errs.NewValueIsRequiredError("email category")
	}
	d.emailPreferences = d.emailPreferences.With(category, enabled)
	return nil
}

func (d *Driver) SetNotificationPreference(category string, enabled bool) error {
	if strings.TrimSpace(category) == "" {
		return errs.NewValueIsRequiredError("notification category")
	}
	d.notificationPreferences = d.notificationPreferences.With(category, enabled)
	return nil
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if len(email) > emailMaxLength {
		return errs.NewValueIsOutOfRangeError("email length", len(email), 1, emailMaxLength)
	}
	d.email = email
	return nil
}

func (d *Driver) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("password hash")
	}
	if len(hash) > passwordHashMaxLength {
		return errs.NewValueIsOutOfRangeError("password hash length", len(hash), 1, passwordHashMaxLength)
	}
	d.passwordHash = hash
	return nil
}

func (d *Driver) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		d.location = nil
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	loc := *location
	d.location = &loc
	return nil
}

func (d *Driver) setStatus(status Status) error {
	if status == "" {
		status = StatusInactive
	}
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

func (d *Driver) setDeviceTokens(tokens []string) error {
	d.deviceTokens = nil
	for _, token := range tokens {
		if err := d.AddDeviceToken(token); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) setOrders(orders []kernel.UUID) error {
	d.orders = make([]kernel.UUID, 0, len(orders))
	for _, id := range orders {
		if err := id.Validate(); err != nil {
			return err
		}
		if slices.ContainsFunc(d.orders, id.IsEqual) {
			continue
		}
		d.orders = append(d.orders, id)
	}
	return nil
}
