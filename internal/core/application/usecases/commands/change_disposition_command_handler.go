package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ChangeDispositionCommandHandler moves an order through its lifecycle.
// The policy decides whether transitions outside the graph are refused.
type ChangeDispositionCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     order.TransitionPolicy
}

func NewChangeDispositionCommandHandler(
	uowFactory OrderUoWFactory,
	policy order.TransitionPolicy,
) ChangeDispositionCommandHandler {
	return ChangeDispositionCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h ChangeDispositionCommandHandler) Handle(
	ctx context.Context,
	command ChangeDispositionCommand,
) (_ *order.Order, err error) {
	defer errs.Recover(fnChangeDisposition, &err)

	o, err := h.handle(ctx, command)
	return o, errs.AsFailure(fnChangeDisposition, err)
}

func (h ChangeDispositionCommandHandler) handle(ctx context.Context, command ChangeDispositionCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.ChangeDisposition(command.Disposition(), h.policy); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
