package dto

import "time"

// DevTokenRequest asks the development server to mint a token for a user
type DevTokenRequest struct {
	UserID string `json:"userId" validate:"required,max=255"`
	Name   string `json:"name" validate:"max=200"`
	Photo  string `json:"photo" validate:"omitempty,url"`
}

// TokenResponse contains an access token
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// UserProfileResponse represents the authenticated user's profile
type UserProfileResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Photo string `json:"photo,omitempty"`
}
