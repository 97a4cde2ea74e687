package types

import (
	"time"

	"github.com/google/uuid"
)

type UserProfile struct {
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name"`
	PictureURL *string   `json:"picture_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateProfileRequest struct {
	Name       string  `json:"name" example:"Ana Popescu"`
	PictureURL *string `json:"picture_url,omitempty"`
}

// UpdateProfileRequest is a partial update; nil fields are left unchanged.
type UpdateProfileRequest struct {
	Name       *string `json:"name,omitempty"`
	PictureURL *string `json:"picture_url,omitempty"`
}

// ProfileResponse joins the account with its optional profile.
type ProfileResponse struct {
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	Name       *string `json:"name,omitempty"`
	PictureURL *string `json:"picture_url,omitempty"`
}
