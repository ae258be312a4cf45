package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const MaxRelayBatch = 500

var ErrRelayPushesCommandIsNotConstructed = errors.New(
	"RelayPushesCommand must be created via NewRelayPushesCommand constructor",
)

// RelayPushesCommand hands up to batch stored messages to the push transport.
type RelayPushesCommand struct {
	batch int
	guard guard.ConstructorGuard
}

func NewRelayPushesCommand(batch int) (RelayPushesCommand, error) {
	if batch < 1 || batch > MaxRelayBatch {
		return RelayPushesCommand{}, errs.NewValueIsOutOfRangeError("batch", batch, 1, MaxRelayBatch)
	}
	return RelayPushesCommand{batch: batch, guard: guard.NewConstructorGuard()}, nil
}

func (c RelayPushesCommand) Batch() int {
	return c.batch
}

func (c RelayPushesCommand) Validate() error {
	return c.guard.Validate(ErrRelayPushesCommandIsNotConstructed)
}
