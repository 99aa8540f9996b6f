package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalapp/client-go/internal/api"
	"github.com/hospitalapp/client-go/internal/models"
	"github.com/hospitalapp/client-go/internal/services"
	"github.com/hospitalapp/client-go/internal/session"
)

// scriptedClient replays canned outcomes for handler tests.
type scriptedClient struct {
	outcomes []api.Outcome
	paths    []string
}

func (c *scriptedClient) next() api.Outcome {
	if len(c.outcomes) == 0 {
		return api.Error{Message: "no outcome scripted"}
	}
	o := c.outcomes[0]
	if len(c.outcomes) > 1 {
		c.outcomes = c.outcomes[1:]
	}
	return o
}

func (c *scriptedClient) Get(_ context.Context, path string) api.Outcome {
	c.paths = append(c.paths, path)
	return c.next()
}

func (c *scriptedClient) Post(_ context.Context, path string, _ api.Document, _ ...api.RequestOption) api.Outcome {
	c.paths = append(c.paths, path)
	return c.next()
}

func newTestApp(client api.Client, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	store := session.New(nil, nil)
	return &App{
		store:        store,
		users:        services.NewUserService(client, store, nil, nil),
		posts:        services.NewPostService(client, nil),
		comments:     services.NewCommentService(client, nil),
		reservations: services.NewReservationService(client, nil),
		hospitals:    services.NewHospitalService(client, nil),
		chat:         services.NewChatService(client, nil),
		reader:       bufio.NewReader(strings.NewReader(input)),
		out:          &out,
	}, &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer, string) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func TestApp_Login(t *testing.T) {
	stubPassword(t, "secret")

	client := &scriptedClient{outcomes: []api.Outcome{
		api.Success{Data: api.Document{
			"status":  "success",
			"session": "sid-1",
			"data":    map[string]any{"id": float64(1), "username": "alice"},
		}},
	}}
	app, out := newTestApp(client, "alice\nn\n")

	require.NoError(t, app.Login(context.Background()))
	assert.Contains(t, out.String(), "Welcome, alice!")
	assert.True(t, app.isLoggedIn())
	assert.Equal(t, []string{api.PathLogin}, client.paths)
}

func TestApp_Login_Rejected(t *testing.T) {
	stubPassword(t, "wrong")

	client := &scriptedClient{outcomes: []api.Outcome{
		api.Success{Data: api.Document{"status": "fail", "message": "wrong password"}},
	}}
	app, out := newTestApp(client, "alice\nn\n")

	require.Error(t, app.Login(context.Background()))
	assert.Contains(t, out.String(), "Login failed")
	assert.False(t, app.isLoggedIn())
}

func TestApp_Whoami(t *testing.T) {
	app, out := newTestApp(&scriptedClient{}, "")

	require.NoError(t, app.Whoami(context.Background()))
	assert.Contains(t, out.String(), "Not logged in")

	app.store.SetCurrentUser(models.User{UserName: "alice", Email: "a@x.com"})
	require.NoError(t, app.Whoami(context.Background()))
	assert.Contains(t, out.String(), "alice <a@x.com>")
}

func TestApp_Logout(t *testing.T) {
	client := &scriptedClient{outcomes: []api.Outcome{
		api.Success{Data: api.Document{"status": "success"}},
	}}
	app, out := newTestApp(client, "")
	app.store.SetCurrentUser(models.User{UserName: "alice"})

	require.NoError(t, app.Logout(context.Background()))
	assert.Contains(t, out.String(), "Logged out")
	assert.False(t, app.isLoggedIn())
	assert.Equal(t, []string{api.PathLogout}, client.paths)
}
