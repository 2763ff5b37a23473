package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoRefreshToken     = errors.New("no refresh token available")
	ErrSessionExpired     = errors.New("session expired")
)

// User is the profile snapshot returned by the auth endpoints. The backend
// identifies users by Mongo-style object IDs, hence the "_id" key.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResult is the unwrapped payload of a successful login.
type AuthResult struct {
	AccessToken string `json:"accessToken"`
	User        *User  `json:"user"`
}

// RefreshResult is the unwrapped payload of a token refresh. The backend may
// rotate the refresh token; when it does not, RefreshToken is empty.
type RefreshResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}
