package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification types
const (
	NotificationPlanJoined      = "plan_joined"
	NotificationJoinRequested   = "join_requested"
	NotificationJoinApproved    = "join_approved"
	NotificationJoinRejected    = "join_rejected"
	NotificationPlanUpdated     = "plan_updated"
	NotificationPlanCancelled   = "plan_cancelled"
	NotificationNewFollower     = "new_follower"
	NotificationFollowRequested = "follow_requested"
	NotificationFollowAccepted  = "follow_accepted"
)

// Notification is an append-only fan-out record; only IsRead mutates.
type Notification struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	ActorID   *uuid.UUID `json:"actor_id,omitempty"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	RefType   *string    `json:"ref_type,omitempty"`
	RefID     *uuid.UUID `json:"ref_id,omitempty"`
	IsRead    bool       `json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
}

type ListNotificationsParams struct {
	UnreadOnly bool
	Page       int
	PageSize   int
}
