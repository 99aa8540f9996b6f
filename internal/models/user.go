// Package models defines the domain values exchanged with the backend:
// the current user profile, community posts and comments, notices,
// reservations and hospital search results.
package models

// User is the profile of the authenticated account. It is owned by the
// session store and always replaced wholesale, never partially mutated.
type User struct {
	ID            string
	UserName      string
	Email         string
	Phone         string
	Birthdate     string
	Address       string
	AddressDetail string
	SessionID     string
}
