package models

import "time"

// User is the auth identity returned by the auth API.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Director is the app-domain profile of an account holder. It is linked to
// a User by AuthUserID and may not exist yet for a freshly registered user.
type Director struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	AuthUserID string    `json:"auth_user_id"`
	CreatedAt  time.Time `json:"created_at"`
}
