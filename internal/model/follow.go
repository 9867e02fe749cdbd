package model

import (
	"time"

	"github.com/google/uuid"
)

// Follow is one edge of the social graph.
type Follow struct {
	FollowerID  uuid.UUID `json:"follower_id"`
	FollowingID uuid.UUID `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// FollowRequest is the pending-approval edge used when the target account
// is private. A single row serves both the target's pending view and the
// requester's sent view, so the two sides cannot drift apart.
type FollowRequest struct {
	RequesterID uuid.UUID `json:"requester_id"`
	TargetID    uuid.UUID `json:"target_id"`
	Username    *string   `json:"username,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FollowOutcome is the result of the follow-toggle decision table.
type FollowOutcome int

const (
	// FollowRemoved: was following, edge removed
	FollowRemoved FollowOutcome = iota
	// FollowRequested: target is private, request queued
	FollowRequested
	// FollowAdded: edge created immediately
	FollowAdded
)

// DecideFollowToggle mirrors the join decision table for the social graph.
// The caller must hold both user rows locked.
func DecideFollowToggle(alreadyFollowing, targetPrivate bool) FollowOutcome {
	if alreadyFollowing {
		return FollowRemoved
	}
	if targetPrivate {
		return FollowRequested
	}
	return FollowAdded
}

type FollowToggleRequest struct {
	FollowingID uuid.UUID `json:"following_id" validate:"required"`
}

// FollowToggleResult is what the toggle endpoint returns to the client.
type FollowToggleResult struct {
	Following bool `json:"following"`
	Pending   bool `json:"pending"`
}

type FollowUser struct {
	ID        uuid.UUID `json:"id"`
	Username  *string   `json:"username,omitempty"`
	FirstName *string   `json:"firstname,omitempty"`
	LastName  *string   `json:"lastname,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}
