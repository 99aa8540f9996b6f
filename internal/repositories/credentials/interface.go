// Package credentials persists "remember me" state across process restarts:
// the saved login id and password, the auto-login flag, and the last session
// id.
//
// The password is stored as-is to stay behaviorally compatible with the
// shipped mobile client. That is a known weakness of the existing scheme;
// treat the credentials database as sensitive material.
package credentials

import "context"

// Keys used in the credentials store.
const (
	KeyLoginID   = "login_id"
	KeyPassword  = "password"
	KeyAutoLogin = "auto_login"
	KeySessionID = "session_id"
)

// SavedLogin is the remember-me record written on a successful login.
type SavedLogin struct {
	LoginID   string
	Password  string
	AutoLogin bool
}

// Repository is a durable string key-value store. Get returns "" (and no
// error) for an absent key.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error

	// SaveLogin writes the whole remember-me record in one transaction.
	SaveLogin(ctx context.Context, login SavedLogin) error
	// LoadLogin reads the remember-me record; a zero value means nothing
	// was saved.
	LoadLogin(ctx context.Context) (SavedLogin, error)
}
