package queries

import (
	"context"
	"encoding/json"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const fnGetRecipientMessages = "getRecipientMessages"

// GetRecipientMessagesQueryHandler returns a recipient's messages, newest first.
type GetRecipientMessagesQueryHandler struct {
	db *gorm.DB
}

func NewGetRecipientMessagesQueryHandler(db *gorm.DB) GetRecipientMessagesQueryHandler {
	return GetRecipientMessagesQueryHandler{db: db}
}

func (h GetRecipientMessagesQueryHandler) Handle(
	ctx context.Context,
	query GetRecipientMessagesQuery,
) (_ []GetRecipientMessagesQueryResponse, err error) {
	defer errs.Recover(fnGetRecipientMessages, &err)

	res, err := h.handle(ctx, query)
	if err != nil {
		return nil, errs.AsFailure(fnGetRecipientMessages, err)
	}
	return res, nil
}

func (h GetRecipientMessagesQueryHandler) handle(
	ctx context.Context,
	query GetRecipientMessagesQuery,
) ([]GetRecipientMessagesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	recipient := query.Recipient()
	messages := make([]GetRecipientMessagesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			message_type,
			sender_id,
			sender_model,
			title,
			body,
			data,
			created_at,
			pushed_at
		FROM messages
		WHERE recipient_id = ? AND recipient_model = ?
		ORDER BY created_at DESC, id
		LIMIT ?
	`, recipient.ID.Bytes(), recipient.Kind.String(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			msg         GetRecipientMessagesQueryResponse
			id          uuid.UUID
			senderID    uuid.NullUUID
			senderModel *string
			data        []byte
		)

		err = rows.Scan(
			&id,
			&msg.MessageType,
			&senderID,
			&senderModel,
			&msg.Title,
			&msg.Body,
			&data,
			&msg.CreatedAt,
			&msg.PushedAt,
		)
		if err != nil {
			return nil, err
		}

		if msg.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}

		if senderID.Valid && senderModel != nil {
			sender, senderErr := kernel.UUIDFromBytes(senderID.UUID[:])
			if senderErr != nil {
				return nil, senderErr
			}
			msg.Sender = &kernel.Party{Kind: kernel.PartyKind(*senderModel), ID: sender}
		}

		msg.Data = map[string]string{}
		if len(data) > 0 {
			if err = json.Unmarshal(data, &msg.Data); err != nil {
				return nil, err
			}
		}

		messages = append(messages, msg)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
