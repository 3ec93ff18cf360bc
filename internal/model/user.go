package model

import "time"

// User owns assets and authenticates with a username and password.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Token is the response body of the token endpoint.
type Token struct {
	Token string `json:"token"`
}
