package domain

import "time"

// HistoryRecord is one question/answer exchange owned by a user.
// Records are append-only: they are written once after a successful
// generation and never updated or deleted.
type HistoryRecord struct {
	// ID is the unique identifier for the record.
	ID string

	// UserID is the owning user. History queries are always scoped to
	// a single owner; a record is never visible to another user.
	UserID string

	// Question is the question as the user submitted it.
	Question string

	// Answer is the reply that was delivered to the user.
	Answer string

	// CreatedAt is when the record was written.
	CreatedAt time.Time
}

// DefaultHistoryLimit is the maximum number of records returned by a
// history query.
const DefaultHistoryLimit = 50

// User is an authenticated actor in the web variant.
type User struct {
	// ID is the unique identifier for the user.
	ID string

	// Username is the login name. Unique.
	Username string

	// PasswordHash is the bcrypt hash of the password. Never the
	// plaintext.
	PasswordHash string

	// CreatedAt is when the account was created.
	CreatedAt time.Time
}

// Session is a server-side login session referenced by an opaque cookie.
type Session struct {
	// ID is the opaque session token.
	ID string

	// UserID is the logged-in user.
	UserID string

	// CreatedAt is when the session was established.
	CreatedAt time.Time

	// ExpiresAt is when the session stops being honoured.
	ExpiresAt time.Time
}

// Expired returns true if the session is past its expiry.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
