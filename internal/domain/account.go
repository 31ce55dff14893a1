package domain

import "time"

// Account is provisioned on first login with an unseen email. The id is an
// opaque string and never changes once assigned.
type Account struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
