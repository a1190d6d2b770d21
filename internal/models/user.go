// Package models defines the data shared by the storefront server and client.
package models

import "time"

// User is an account record. Password holds a bcrypt hash once the record
// has passed through a repository.
type User struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Password  string
	CreatedAt time.Time
}

// SessionUser returns the public part of the user that is safe to hand out.
func (u *User) SessionUser() SessionUser {
	return SessionUser{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

// Registration is the sign-up form as submitted by the user.
type Registration struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}
