package model

import "errors"

// Domain errors. Repos return these; helpers map them onto the uniform
// status taxonomy (not-found -> 404, business-rule violation -> 409).
var (
	ErrPlanNotFound    = errors.New("plan not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrPlanFull        = errors.New("plan is full")
	ErrPlanCancelled   = errors.New("plan is cancelled")
	ErrNotParticipant  = errors.New("user is not a participant of this plan")
	ErrOrganizerLeave  = errors.New("organizer cannot leave their own plan")
	ErrNotOrganizer    = errors.New("only the organizer can manage this plan")
	ErrSelfFollow      = errors.New("cannot follow yourself")
	ErrRequestNotFound = errors.New("request not found")
)
