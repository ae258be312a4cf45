// Package order provides the Order aggregate of the dispatch domain.
//
// The package includes:
//   - Order: the aggregate root holding customer/vendor/address references, the item ledger,
//     financials, the optional assigned driver and the disposition
//   - Disposition: the lifecycle state (NEW, PAID, COMPLETE, CANCELED, DELIVERED) with an
//     enumerated transition graph and a TransitionPolicy deciding whether the graph is enforced
//   - Item: an order line priced from its menu item base price plus modification surcharges
//   - Modification: a normalized modification group parsed from either a single JSON object
//     or a JSON list
//
// Key business rules:
//   - total always equals the sum of the current items' prices
//   - items can only change while the order is mutable (not DELIVERED or CANCELED)
//   - an order carries at most one driver; assigning a second one fails
//   - a new order starts in NEW with PICKUP fulfillment
package order
