// Package kernel provides the shared value objects of the dispatch domain.
//
// The package includes:
//   - UUID: identifier value object backed by github.com/google/uuid
//   - GeoPoint: a validated latitude/longitude pair for driver presence
//   - Party: the tagged reference {Kind, ID} used for message recipients and senders
//   - Preferences: a category -> enabled mapping used by notification and email settings
//
// All values are immutable once constructed and safe for concurrent use.
package kernel
