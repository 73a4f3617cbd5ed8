package model

import "time"

// Credential is a username and its bcrypt password hash
type Credential struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}
