package models

import "time"

// User is a registered account, keyed by the same id the session carries.
type User struct {
	ID            string    `bson:"_id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Email         string    `bson:"email" json:"email"`
	PasswordHash  string    `bson:"passwordHash" json:"-"`
	EmailVerified bool      `bson:"emailVerified" json:"emailVerified"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// Principal is the verified identity resolved from a session cookie.
// It is derived per request and never stored.
type Principal struct {
	UserID        string `json:"uid"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
}
