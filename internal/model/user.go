package model

import (
	"time"

	"github.com/google/uuid"
)

// User carries denormalized follower/following counts. The counts mirror
// the follows table and are only updated inside the same transaction as
// the follows-set mutation.
type User struct {
	ID                uuid.UUID `json:"id"`
	FirstName         *string   `json:"firstname,omitempty"`
	LastName          *string   `json:"lastname,omitempty"`
	Username          *string   `json:"username,omitempty"`
	Email             string    `json:"email"`
	AvatarURL         *string   `json:"avatar_url,omitempty"`
	Bio               *string   `json:"bio,omitempty"`
	IsPrivate         bool      `json:"is_private"`
	IsDeleted         bool      `json:"is_deleted"`
	AuthProvider      string    `json:"auth_provider,omitempty"`
	IsVerified        bool      `json:"is_verified"`
	FollowerCount     int       `json:"follower_count"`
	FollowingCount    int       `json:"following_count"`
	PreferredLanguage *string   `json:"preferred_language,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`
	Username  *string `json:"username" validate:"omitempty,min=3,max=30"`
	Bio       *string `json:"bio" validate:"omitempty,max=300"`
	IsPrivate *bool   `json:"is_private"`
}

type UpdateLanguageRequest struct {
	Language string `json:"language" validate:"required"`
}
