// Package services contains stateless domain services: decisions that span more
// than one aggregate or read model and so belong to no single one of them.
//
//   - NotificationGate decides whether a recipient accepts an email or push category.
//   - DriverAvailability decides whether a driver may be offered an order.
//   - AddressFormatter renders an address for notification payloads.
package services
