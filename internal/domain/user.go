package domain

import "time"

// Profile is a row of the application-owned users table. AuthUserId links
// the row to the identity provider account; it is nil for users created by
// an admin without credentials.
type Profile struct {
	Id         string
	AuthUserId *string
	Email      string
	FirstName  *string
	LastName   *string
	Phone      *string
	Avatar     *string
	Admin      bool
	Banned     bool
	CreatedAt  time.Time
	UpdatedAt  *time.Time

	// Filled from the identity provider, not the profile table.
	EmailConfirmedAt *time.Time
	PhoneConfirmedAt *time.Time
}
