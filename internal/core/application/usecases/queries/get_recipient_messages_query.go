// Package queries contains read operations. Handlers read straight from the
// database with SQL shaped for the caller and bypass the aggregates.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	DefaultMessagesLimit = 50
	MaxMessagesLimit     = 200
)

var ErrGetRecipientMessagesQueryIsNotConstructed = errors.New(
	"GetRecipientMessagesQuery must be created via NewGetRecipientMessagesQuery constructor",
)

// GetRecipientMessagesQuery lists the newest messages stored for one recipient.
//
// Example:
//
//	query, err := NewGetRecipientMessagesQuery(driver.Party(), 20)
//	if err != nil {
//	    return err
//	}
//	messages, err := NewGetRecipientMessagesQueryHandler(db).Handle(ctx, query)
type GetRecipientMessagesQuery struct {
	recipient kernel.Party
	limit     int
	guard     guard.ConstructorGuard
}

// NewGetRecipientMessagesQuery builds the query. A limit of 0 selects DefaultMessagesLimit.
func NewGetRecipientMessagesQuery(recipient kernel.Party, limit int) (GetRecipientMessagesQuery, error) {
	if _, err := kernel.NewParty(recipient.Kind, recipient.ID); err != nil {
		return GetRecipientMessagesQuery{}, err
	}
	if limit == 0 {
		limit = DefaultMessagesLimit
	}
	if limit < 1 || limit > MaxMessagesLimit {
		return GetRecipientMessagesQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxMessagesLimit)
	}

	return GetRecipientMessagesQuery{
		recipient: recipient,
		limit:     limit,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetRecipientMessagesQuery) Recipient() kernel.Party {
	return q.recipient
}

func (q GetRecipientMessagesQuery) Limit() int {
	return q.limit
}

func (q GetRecipientMessagesQuery) Validate() error {
	return q.guard.Validate(ErrGetRecipientMessagesQueryIsNotConstructed)
}

// GetRecipientMessagesQueryResponse is one message in the recipient's inbox.
type GetRecipientMessagesQueryResponse struct {
	ID          kernel.UUID
	MessageType string
	Sender      *kernel.Party
	Title       string
	Body        string
	Data        map[string]string
	CreatedAt   time.Time
	PushedAt    *time.Time
}
