package model

import (
	"time"

	"github.com/google/uuid"
)

// Plan statuses
const (
	PlanStatusUpcoming  = "upcoming"
	PlanStatusOngoing   = "ongoing"
	PlanStatusCompleted = "completed"
	PlanStatusCancelled = "cancelled"
)

// Plan is a capacity-bounded group event. CurrentParticipants mirrors the
// participant set and is only ever changed through AddParticipant and
// RemoveParticipant, inside the same transaction as the set mutation.
type Plan struct {
	ID                  uuid.UUID  `json:"id"`
	OrganizerID         uuid.UUID  `json:"organizer_id"`
	Title               string     `json:"title"`
	Description         *string    `json:"description,omitempty"`
	ImageURL            *string    `json:"image_url,omitempty"`
	Location            string     `json:"location"`
	DateTime            time.Time  `json:"date_time"`
	MaxParticipants     *int       `json:"max_participants,omitempty"`
	CurrentParticipants int        `json:"current_participants"`
	CostPerHead         float64    `json:"cost_per_head"`
	Currency            string     `json:"currency"`
	IsPrivate           bool       `json:"is_private"`
	Status              string     `json:"status"`
	ParticipantIDs      []uuid.UUID `json:"participant_ids,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// JoinOutcome is the result of the join decision table.
type JoinOutcome int

const (
	// JoinNoop: already a participant, nothing to do
	JoinNoop JoinOutcome = iota
	// JoinPending: private plan, queued for organizer approval
	JoinPending
	// JoinFull: capacity reached
	JoinFull
	// JoinAccepted: becomes a participant immediately
	JoinAccepted
)

// JoinResult is what join-shaped endpoints return to the client.
type JoinResult struct {
	Joined  bool `json:"joined"`
	Pending bool `json:"pending"`
}

// DecideJoin evaluates the join decision table in order: membership,
// privacy, capacity. The caller must hold the plan row locked so the
// decision and the mutation see the same snapshot.
func (p *Plan) DecideJoin(alreadyParticipant bool) JoinOutcome {
	if alreadyParticipant {
		return JoinNoop
	}
	if p.IsPrivate {
		return JoinPending
	}
	if p.IsFull() {
		return JoinFull
	}
	return JoinAccepted
}

// DecideLeave rejects organizer leave (a plan without an organizer is
// undefined) and leave by a non-member.
func (p *Plan) DecideLeave(userID uuid.UUID, isParticipant bool) error {
	if userID == p.OrganizerID {
		return ErrOrganizerLeave
	}
	if !isParticipant {
		return ErrNotParticipant
	}
	return nil
}

// IsFull reports whether the plan has reached its capacity. Plans without
// max_participants are unbounded.
func (p *Plan) IsFull() bool {
	return p.MaxParticipants != nil && p.CurrentParticipants >= *p.MaxParticipants
}

// AddParticipant is the single mutating entry point for the participant
// counter on join.
func (p *Plan) AddParticipant() {
	p.CurrentParticipants++
	p.UpdatedAt = time.Now()
}

// RemoveParticipant decrements with a floor of zero as a defensive clamp
// against counter drift.
func (p *Plan) RemoveParticipant() {
	if p.CurrentParticipants > 0 {
		p.CurrentParticipants--
	}
	p.UpdatedAt = time.Now()
}

type CreatePlanRequest struct {
	Title           string    `json:"title" validate:"required,min=3,max=120"`
	Description     string    `json:"description"`
	ImageURL        string    `json:"image_url" validate:"omitempty,url"`
	Location        string    `json:"location" validate:"required"`
	DateTime        time.Time `json:"date_time" validate:"required,futuretime"`
	MaxParticipants *int      `json:"max_participants" validate:"omitempty,min=1,max=1000"`
	CostPerHead     float64   `json:"cost_per_head" validate:"min=0"`
	Currency        string    `json:"currency" validate:"required,currency"`
	IsPrivate       bool      `json:"is_private"`
}

type UpdatePlanRequest struct {
	Title           string    `json:"title" validate:"required,min=3,max=120"`
	Description     string    `json:"description"`
	ImageURL        string    `json:"image_url" validate:"omitempty,url"`
	Location        string    `json:"location" validate:"required"`
	DateTime        time.Time `json:"date_time" validate:"required,futuretime"`
	MaxParticipants *int      `json:"max_participants" validate:"omitempty,min=1,max=1000"`
	CostPerHead     float64   `json:"cost_per_head" validate:"min=0"`
	Currency        string    `json:"currency" validate:"required,currency"`
	IsPrivate       bool      `json:"is_private"`
}

type CancelPlanRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type CreatePlanResponse struct {
	ID uuid.UUID `json:"id"`
}

// PlanJoinRequest is a user's request to join a private plan, awaiting
// organizer approval.
type PlanJoinRequest struct {
	PlanID    uuid.UUID `json:"plan_id"`
	UserID    uuid.UUID `json:"user_id"`
	Username  *string   `json:"username,omitempty"`
	Message   *string   `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ListPlansParams struct {
	Status   string
	Page     int
	PageSize int
}
