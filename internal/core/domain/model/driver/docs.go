// Package driver contains the Driver aggregate: a courier account with presence,
// device tokens, notification preferences and the route of orders currently assigned to it.
//
// A driver serves one vendor's route at a time and cannot go INACTIVE while that
// route still holds orders. The orders themselves are owned by the order package;
// the driver only keeps their ids.
package driver
