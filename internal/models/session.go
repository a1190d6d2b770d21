package models

import "time"

// SessionUser is the serialized current-user object kept next to the token.
type SessionUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Session is created on login or registration and destroyed on logout.
type Session struct {
	Token        string
	RefreshToken string
	User         SessionUser
}

// RefreshToken is the server-side record of an issued refresh token.
type RefreshToken struct {
	UserID    int64
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
