package model

import (
	"time"

	"github.com/google/uuid"
)

// PlanMessage is a chat message in a plan's group chat. Messages are
// independent appends with no shared counters, so they are written outside
// any transaction.
type PlanMessage struct {
	ID        uuid.UUID `json:"id"`
	PlanID    uuid.UUID `json:"plan_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Username  *string   `json:"username,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type ListMessagesParams struct {
	Before *time.Time
	Limit  int
}
