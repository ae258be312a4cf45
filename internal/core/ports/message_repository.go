package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/message"
)

// MessageRepository stores notification records. Records are never updated
// except for the push bookkeeping.
type MessageRepository interface {
	Add(ctx context.Context, m *message.Message) error

	// GetUnpushed returns up to limit messages not yet handed to the push
	// transport, oldest first.
	GetUnpushed(ctx context.Context, limit int) ([]*message.Message, error)

	// MarkPushed stores the pushed timestamp of the message with id.
	MarkPushed(ctx context.Context, id kernel.UUID, at time.Time) error
}
