package services

import (
	"context"

	"github.com/hospitalapp/client-go/internal/api"
	"github.com/hospitalapp/client-go/internal/repositories/credentials"
)

// fakeAPI replays a scripted list of outcomes and records every call.
type fakeAPI struct {
	outcomes []api.Outcome

	calls    int
	paths    []string
	methods  []string
	bodies   []api.Document
	lastPath string
	lastBody api.Document
}

func (f *fakeAPI) next() api.Outcome {
	if len(f.outcomes) == 0 {
		return api.Error{Message: "fake: no outcome scripted"}
	}
	o := f.outcomes[0]
	if len(f.outcomes) > 1 {
		f.outcomes = f.outcomes[1:]
	}
	return o
}

func (f *fakeAPI) Get(_ context.Context, path string) api.Outcome {
	f.calls++
	f.paths = append(f.paths, path)
	f.methods = append(f.methods, "GET")
	f.lastPath = path
	return f.next()
}

func (f *fakeAPI) Post(_ context.Context, path string, body api.Document, _ ...api.RequestOption) api.Outcome {
	f.calls++
	f.paths = append(f.paths, path)
	f.methods = append(f.methods, "POST")
	f.bodies = append(f.bodies, body)
	f.lastPath = path
	f.lastBody = body
	return f.next()
}

// fakeCreds is an in-memory credentials.Repository.
type fakeCreds struct {
	data map[string]string
}

func newFakeCreds() *fakeCreds {
	return &fakeCreds{data: make(map[string]string)}
}

func (f *fakeCreds) Get(_ context.Context, key string) (string, error) { return f.data[key], nil }

func (f *fakeCreds) Set(_ context.Context, key, value string) error {
	f.data[key] = value
	return nil
}

func (f *fakeCreds) Delete(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeCreds) Clear(_ context.Context) error {
	f.data = make(map[string]string)
	return nil
}

func (f *fakeCreds) SaveLogin(_ context.Context, login credentials.SavedLogin) error {
	f.data[credentials.KeyLoginID] = login.LoginID
	f.data[credentials.KeyPassword] = login.Password
	if login.AutoLogin {
		f.data[credentials.KeyAutoLogin] = "true"
	} else {
		f.data[credentials.KeyAutoLogin] = "false"
	}
	return nil
}

func (f *fakeCreds) LoadLogin(_ context.Context) (credentials.SavedLogin, error) {
	return credentials.SavedLogin{
		LoginID:   f.data[credentials.KeyLoginID],
		Password:  f.data[credentials.KeyPassword],
		AutoLogin: f.data[credentials.KeyAutoLogin] == "true",
	}, nil
}
