// Package messagerepo persists notification records. The table doubles as the
// push outbox: rows with a NULL pushed_at are waiting for the relay job.
package messagerepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/message"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type MessageDTO struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey"`
	MessageType    string            `gorm:"type:varchar(64);not null"`
	RecipientID    uuid.UUID         `gorm:"type:uuid;not null;index:idx_messages_recipient"`
	RecipientModel string            `gorm:"type:varchar(16);not null;index:idx_messages_recipient"`
	SenderID       *uuid.UUID        `gorm:"type:uuid"`
	SenderModel    *string           `gorm:"type:varchar(16)"`
	Title          string            `gorm:"type:text"`
	Body           string            `gorm:"type:text"`
	Data           map[string]string `gorm:"serializer:json;type:jsonb"`
	DeviceTokens   pq.StringArray    `gorm:"type:text[]"`
	CreatedAt      time.Time         `gorm:"not null;index"`
	PushedAt       *time.Time        `gorm:"index"`
}

func (MessageDTO) TableName() string {
	return "messages"
}

func fromDomain(m *message.Message) MessageDTO {
	dto := MessageDTO{
		ID:             m.ID().Bytes(),
		MessageType:    m.MessageType(),
		RecipientID:    m.Recipient().ID.Bytes(),
		RecipientModel: m.Recipient().Kind.String(),
		Title:          m.Title(),
		Body:           m.Body(),
		Data:           m.Data(),
		DeviceTokens:   pq.StringArray(m.DeviceTokens()),
		CreatedAt:      m.CreatedAt(),
		PushedAt:       m.PushedAt(),
	}

	if sender := m.Sender(); sender != nil {
		id := sender.ID.Bytes()
		kind := sender.Kind.String()
		dto.SenderID = &id
		dto.SenderModel = &kind
	}

	return dto
}

func toDomain(dto MessageDTO) (*message.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	var sender *kernel.Party
	if dto.SenderID != nil && dto.SenderModel != nil {
		senderID, senderErr := kernel.UUIDFromBytes((*dto.SenderID)[:])
		if senderErr != nil {
			return nil, senderErr
		}
		sender = &kernel.Party{Kind: kernel.PartyKind(*dto.SenderModel), ID: senderID}
	}

	return message.RestoreMessage(
		id,
		kernel.Party{Kind: kernel.PartyKind(dto.RecipientModel), ID: recipientID},
		sender,
		message.Content{
			MessageType: dto.MessageType,
			Title:       dto.Title,
			Body:        dto.Body,
			Data:        dto.Data,
		},
		dto.DeviceTokens,
		dto.CreatedAt,
		dto.PushedAt,
	)
}
