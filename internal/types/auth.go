package types

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// User is an account row. PasswordHash never leaves the server.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RefreshToken is a stored, revocable refresh token.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Claims are the custom claims carried by access tokens.
type Claims struct {
	UserID   string `json:"uid"`
	Username string `json:"usr,omitempty"`
	Email    string `json:"eml"`
	jwt.RegisteredClaims
}

type RegisterRequest struct {
	Username string `json:"username" example:"traveller"`
	Email    string `json:"email,omitempty" example:"traveller@example.com"`
	Password string `json:"password" example:"Str0ngP@ss!"`
}

type LoginRequest struct {
	Username string `json:"username" example:"traveller"`
	Password string `json:"password" example:"Str0ngP@ss!"`
}

type RefreshTokenRequest struct {
	Refresh string `json:"refresh"`
}

type LogoutRequest struct {
	Refresh string `json:"refresh"`
}

// TokenPair is what the token endpoints hand back.
type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

type RegisterResponse struct {
	Message  string    `json:"message" example:"User registered successfully!"`
	UserID   uuid.UUID `json:"userid"`
	Username string    `json:"username"`
	Tokens   TokenPair `json:"tokens"`
}
