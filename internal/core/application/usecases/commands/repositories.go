// Package commands contains the write operations of the dispatch core.
// Every handler follows the same shape: validate the command, open a unit of
// work, load aggregates, let the domain decide, persist, commit.
//
// Handlers never return bare errors. A non-nil error is either a
// *errs.RefusalError (an expected "no" to show the caller) or a
// *errs.FailureError naming the operation that failed.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	MessageRepoFactory interface {
		MessageRepository() ports.MessageRepository
	}

	DirectoryRepoFactory interface {
		DirectoryRepository() ports.DirectoryRepository
	}

	// DriverUoW serves commands that touch only the driver aggregate.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// OrderUoW serves the order ledger and lifecycle commands, which read menu
	// items from the directory.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		DirectoryRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// MessageUoW serves the push relay, which only touches the message outbox.
	MessageUoW interface {
		TxManager
		MessageRepoFactory
	}

	MessageUoWFactory interface {
		Create() MessageUoW
	}

	// UoW spans drivers, orders, messages and the directory. Used by the
	// assignment and notification commands.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   d, err := uow.DriverRepository().Get(ctx, driverID)
	//   o, err := uow.OrderRepository().Get(ctx, orderID)
	//   // ... decide, dispatch
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		DriverRepoFactory
		OrderRepoFactory
		MessageRepoFactory
		DirectoryRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// Operation names reported in *errs.FailureError and *errs.RefusalError.
const (
	fnRequestDriver        = "requestDriver"
	fnNotifyOrderReady     = "notifyOrderReady"
	fnNotifyOrderCanceled  = "notifyOrderCanceled"
	fnToggleStatus         = "toggleStatus"
	fnAddDeviceToken       = "addDeviceToken"
	fnAddOrderItem         = "addOrderItem"
	fnRemoveOrderItem      = "removeOrderItem"
	fnChangeDisposition    = "changeDisposition"
	fnCreateDriver         = "createDriver"
	fnAcceptOrder          = "acceptOrder"
	fnCompleteDelivery     = "completeDelivery"
	fnUpdateDriverPresence = "updateDriverPresence"
	fnRelayPushes          = "relayPushes"
)
