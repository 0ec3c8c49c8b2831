package domain

import "time"

// User is a credential record. PasswordHash holds a bcrypt hash and is never
// serialised.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
