package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalapp/client-go/internal/api"
	"github.com/hospitalapp/client-go/internal/common"
	"github.com/hospitalapp/client-go/internal/models"
	"github.com/hospitalapp/client-go/internal/repositories/credentials"
	"github.com/hospitalapp/client-go/internal/session"
)

func loginSuccess() api.Success {
	return api.Success{Data: api.Document{
		"status":  "success",
		"message": "welcome",
		"session": "sid-123",
		"data": map[string]any{
			"id":       float64(1),
			"username": "alice",
			"email":    "a@x.com",
		},
	}}
}

func newUserService(f *fakeAPI, creds credentials.Repository) (*UserService, *session.Store) {
	store := session.New(creds, nil)
	svc := NewUserService(f, store, creds, nil)
	svc.retryBase = time.Millisecond
	return svc, store
}

func TestUserService_Login_PopulatesSessionStore(t *testing.T) {
	f := &fakeAPI{outcomes: []api.Outcome{loginSuccess()}}
	svc, store := newUserService(f, nil)

	user, err := svc.Login(context.Background(), "alice", "secret", false)
	require.NoError(t, err)

	require.NotNil(t, user)
	assert.Equal(t, "1", user.ID)
	assert.Equal(t, "alice", user.UserName)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "sid-123", user.SessionID)

	cur := store.Current()
	require.NotNil(t, cur)
	assert.Equal(t, *user, *cur)
	assert.Equal(t, "sid-123", store.SessionID())

	assert.Equal(t, 1, f.calls)
	assert.Equal(t, api.PathLogin, f.lastPath)
	assert.Equal(t, "alice", f.lastBody["username"])
}

func TestUserService_Login_RetriesTransportErrors(t *testing.T) {
	f := &fakeAPI{outcomes: []api.Outcome{
		api.Error{Message: "network failure: connection refused"},
		api.Error{Code: 503, Message: "unavailable"},
		loginSuccess(),
	}}
	svc, _ := newUserService(f, nil)

	user, err := svc.Login(context.Background(), "alice", "secret", false)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.UserName)
	assert.Equal(t, 3, f.calls, "two failures then success means exactly three calls")
}

func TestUserService_Login_GivesUpAfterThreeAttempts(t *testing.T) {
	f := &fakeAPI{outcomes: []api.Outcome{
		api.Error{Code: 500, Message: "boom"},
	}}
	svc, store := newUserService(f, nil)

	_, err := svc.Login(context.Background(), "alice", "secret", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom", "final error carries the last failure's message")
	assert.Equal(t, 3, f.calls)
	assert.Nil(t, store.Current())
}

func TestUserService_Login_BusinessFailureNotRetried(t *testing.T) {
	f := &fakeAPI{outcomes: []api.Outcome{
		api.Success{Data: api.Document{"status": "fail", "message": "wrong password"}},
	}}
	svc, store := newUserService(f, nil)

	_, err := svc.Login(context.Background(), "alice", "wrong", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrBusiness))
	assert.Contains(t, err.Error(), "wrong password")
	assert.Equal(t, 1, f.calls, "a decoded business failure must end the retry loop")
	assert.Nil(t, store.Current())
}

func TestUserService_Login_MalformedResponseNotRetried(t *testing.T) {
	f := &fakeAPI{outcomes: []api.Outcome{
		api.Success{Data: api.Document{"status": "success"}}, // no session, no data
	}}
	svc, _ := newUserService(f, nil)

	_, err := svc.Login(context.Background(), "alice", "secret", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrMalformedResponse))
	assert.Equal(t, 1, f.calls)
}

func TestUserService_Login_RememberSavesCredentials(t *testing.T) {
	creds := newFakeCreds()
	f := &fakeAPI{outcomes: []api.Outcome{loginSuccess()}}
	svc, _ := newUserService(f, creds)

	_, err := svc.Login(context.Background(), "alice", "secret", true)
	require.NoError(t, err)

	saved, err := creds.LoadLogin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, credentials.SavedLogin{LoginID: "alice", Password: "secret", AutoLogin: true}, saved)
}

func TestUserService_AutoLogin(t *testing.T) {
	creds := newFakeCreds()
	require.NoError(t, creds.SaveLogin(context.Background(), credentials.SavedLogin{
		LoginID: "alice", Password: "secret", AutoLogin: true,
	}))

	f := &fakeAPI{outcomes: []api.Outcome{loginSuccess()}}
	svc, store := newUserService(f, creds)

	user, err := svc.AutoLogin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", user.UserName)
	assert.NotNil(t, store.Current())
}

func TestUserService_AutoLogin_NothingSaved(t *testing.T) {
	f := &fakeAPI{}
	svc, _ := newUserService(f, newFakeCreds())

	_, err := svc.AutoLogin(context.Background())
	assert.True(t, errors.Is(err, common.ErrNotLoggedIn))
	assert.Zero(t, f.calls)
}

func TestUserService_Register(t *testing.T) {
	f := &fakeAPI{outcomes: []api.Outcome{
		api.Success{Data: api.Document{"status": "success"}},
	}}
	svc, _ := newUserService(f, nil)

	err := svc.Register(context.Background(), RegisterRequest{
		UserID: "bob", Password: "pw", Email: "b@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, api.PathRegister, f.lastPath)
	assert.Equal(t, "bob", f.lastBody["username"])
	assert.Equal(t, "b@x.com", f.lastBody["email"])
}

func TestUserService_Register_Rejected(t *testing.T) {
	f := &fakeAPI{outcomes: []api.Outcome{
		api.Success{Data: api.Document{"status": "fail", "message": "duplicate id"}},
	}}
	svc, _ := newUserService(f, nil)

	err := svc.Register(context.Background(), RegisterRequest{UserID: "bob"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrBusiness))
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestUserService_UpdateProfile_ReplacesWholeUser(t *testing.T) {
	f := &fakeAPI{outcomes: []api.Outcome{
		api.Success{Data: api.Document{"status": "success"}},
	}}
	svc, store := newUserService(f, nil)
	store.SetCurrentUser(models.User{
		ID: "1", UserName: "alice", Email: "old@x.com", SessionID: "sid-123",
	})

	err := svc.UpdateProfile(context.Background(), "new@x.com", "010", "1990-01-01", "Seoul", "2F")
	require.NoError(t, err)

	cur := store.Current()
	require.NotNil(t, cur)
	assert.Equal(t, "new@x.com", cur.Email)
	assert.Equal(t, "Seoul", cur.Address)
	assert.Equal(t, "sid-123", cur.SessionID, "session survives a profile update")
	assert.Equal(t, api.PathUserUpdate, f.lastPath)
}

func TestUserService_UpdateProfile_NotLoggedIn(t *testing.T) {
	f := &fakeAPI{}
	svc, _ := newUserService(f, nil)

	err := svc.UpdateProfile(context.Background(), "e", "p", "b", "a", "d")
	assert.True(t, errors.Is(err, common.ErrNotLoggedIn))
	assert.Zero(t, f.calls)
}

func TestUserService_ChangePassword(t *testing.T) {
	f := &fakeAPI{outcomes: []api.Outcome{
		api.Success{Data: api.Document{"status": "success"}},
	}}
	svc, _ := newUserService(f, nil)

	require.NoError(t, svc.ChangePassword(context.Background(), "old", "new"))
	assert.Equal(t, api.PathChangePassword, f.lastPath)
	assert.Equal(t, "old", f.lastBody["current_password"])
	assert.Equal(t, "new", f.lastBody["new_password"])
}

func TestUserService_Withdraw_ClearsSession(t *testing.T) {
	f := &fakeAPI{outcomes: []api.Outcome{
		api.Success{Data: api.Document{"status": "success"}}, // withdraw
		api.Success{Data: api.Document{"status": "success"}}, // remote logout
	}}
	svc, store := newUserService(f, nil)
	store.SetCurrentUser(models.User{ID: "1"})

	require.NoError(t, svc.Withdraw(context.Background(), "pw"))
	assert.Nil(t, store.Current())
	assert.Equal(t, []string{api.PathWithdraw, api.PathLogout}, f.paths)
}

func TestSessionStore_Logout_FiresRemoteCall(t *testing.T) {
	f := &fakeAPI{outcomes: []api.Outcome{
		api.Success{Data: api.Document{"status": "success"}},
	}}
	_, store := newUserService(f, nil)
	store.SetCurrentUser(models.User{ID: "1"})

	store.Logout(context.Background())

	assert.Equal(t, 1, f.calls)
	assert.Equal(t, api.PathLogout, f.lastPath)
	assert.Nil(t, store.Current())
}

func TestSessionStore_Logout_RemoteErrorStillClears(t *testing.T) {
	f := &fakeAPI{outcomes: []api.Outcome{
		api.Error{Code: 500, Message: "server down"},
	}}
	_, store := newUserService(f, nil)
	store.SetCurrentUser(models.User{ID: "1"})

	store.Logout(context.Background())
	store.Logout(context.Background()) // idempotent

	assert.Nil(t, store.Current())
	assert.Empty(t, store.SessionID())
}
