package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/hospitalapp/client-go/internal/api"
	"github.com/hospitalapp/client-go/internal/common"
	"github.com/hospitalapp/client-go/internal/logging"
	"github.com/hospitalapp/client-go/internal/models"
	"github.com/hospitalapp/client-go/internal/repositories/credentials"
	"github.com/hospitalapp/client-go/internal/session"
)

// RegisterRequest carries the fields of a new account.
type RegisterRequest struct {
	UserID        string
	Password      string
	Email         string
	Birthdate     string
	Phone         string
	Address       string
	AddressDetail string
}

// UserService maps account operations onto the backend. Login feeds the
// session store; Logout and Withdraw clear it.
type UserService struct {
	api       api.Client
	store     *session.Store
	creds     credentials.Repository
	log       logging.Logger
	retryBase time.Duration
}

// NewUserService wires the adapter and installs itself as the store's
// remote-logout hook. creds may be nil when remember-me is not configured.
func NewUserService(client api.Client, store *session.Store, creds credentials.Repository, log logging.Logger) *UserService {
	if log == nil {
		log = logging.Nop{}
	}
	s := &UserService{
		api:       client,
		store:     store,
		creds:     creds,
		log:       log,
		retryBase: defaultRetryBase,
	}
	store.BindRemoteLogout(s.remoteLogout)
	return s
}

// Register creates a new account. The session is not established; the
// caller logs in afterwards.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) error {
	outcome := s.api.Post(ctx, api.PathRegister, api.Document{
		"username":       req.UserID,
		"password":       req.Password,
		"email":          req.Email,
		"birthdate":      req.Birthdate,
		"phone":          req.Phone,
		"address":        req.Address,
		"address_detail": req.AddressDetail,
	})
	return requireSuccess(outcome, "registration rejected")
}

// Login authenticates and populates the session store with the returned
// profile and session id. Transport and server errors are retried up to
// three times with growing delays; a rejected login (business failure)
// returns immediately. When remember is set and durable storage is
// configured, the credentials are saved for auto-login.
func (s *UserService) Login(ctx context.Context, userID, password string, remember bool) (*models.User, error) {
	var user *models.User

	err := withRetry(ctx, s.retryBase, func(ctx context.Context) error {
		outcome := s.api.Post(ctx, api.PathLogin, api.Document{
			"username": userID,
			"password": password,
		})

		switch o := outcome.(type) {
		case api.Error:
			s.log.Warn(ctx, "login attempt failed", "error", o.String())
			return retry.RetryableError(errors.New(o.String()))

		case api.Success:
			u, err := s.decodeLogin(o.Data)
			if err != nil {
				return err
			}
			s.store.SetSessionID(ctx, u.SessionID)
			s.store.SetCurrentUser(*u)
			user = u
			return nil

		default:
			return fmt.Errorf("unexpected outcome type %T", outcome)
		}
	})
	if err != nil {
		return nil, err
	}

	if remember && s.creds != nil {
		saved := credentials.SavedLogin{LoginID: userID, Password: password, AutoLogin: true}
		if err := s.creds.SaveLogin(ctx, saved); err != nil {
			s.log.Warn(ctx, "failed to save login for auto-login", "error", err.Error())
		}
	}
	return user, nil
}

func (s *UserService) decodeLogin(doc api.Document) (*models.User, error) {
	if doc.OptString("status", "") != "success" {
		return nil, fmt.Errorf("%w: %s", common.ErrBusiness, doc.OptString("message", "login rejected"))
	}

	sid := doc.OptString("session", "")
	if sid == "" {
		return nil, fmt.Errorf("%w: missing session id", common.ErrMalformedResponse)
	}

	data := doc.Object("data")
	if data == nil {
		return nil, fmt.Errorf("%w: missing data object", common.ErrMalformedResponse)
	}

	return &models.User{
		ID:            data.OptString("id", ""),
		UserName:      data.OptString("username", ""),
		Email:         data.OptString("email", ""),
		Phone:         data.OptString("phone", ""),
		Birthdate:     data.OptString("birthdate", ""),
		Address:       data.OptString("address", ""),
		AddressDetail: data.OptString("address_detail", ""),
		SessionID:     sid,
	}, nil
}

// AutoLogin replays a saved remember-me login, if one exists and is
// enabled. Returns common.ErrNotLoggedIn when nothing was saved.
func (s *UserService) AutoLogin(ctx context.Context) (*models.User, error) {
	if s.creds == nil {
		return nil, common.ErrNotLoggedIn
	}
	saved, err := s.creds.LoadLogin(ctx)
	if err != nil {
		return nil, err
	}
	if !saved.AutoLogin || saved.LoginID == "" {
		return nil, common.ErrNotLoggedIn
	}
	return s.Login(ctx, saved.LoginID, saved.Password, true)
}

// UpdateProfile sends the changed contact fields and, on success, replaces
// the stored profile wholesale with the updated value.
func (s *UserService) UpdateProfile(ctx context.Context, email, phone, birthdate, address, addressDetail string) error {
	cur := s.store.Current()
	if cur == nil {
		return common.ErrNotLoggedIn
	}

	outcome := s.api.Post(ctx, api.PathUserUpdate, api.Document{
		"email":          email,
		"phone":          phone,
		"birthdate":      birthdate,
		"address":        address,
		"address_detail": addressDetail,
	})
	if err := requireSuccess(outcome, "profile update rejected"); err != nil {
		return err
	}

	updated := *cur
	updated.Email = email
	updated.Phone = phone
	updated.Birthdate = birthdate
	updated.Address = address
	updated.AddressDetail = addressDetail
	s.store.SetCurrentUser(updated)
	return nil
}

// ChangePassword swaps the account password.
func (s *UserService) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	outcome := s.api.Post(ctx, api.PathChangePassword, api.Document{
		"current_password": currentPassword,
		"new_password":     newPassword,
	})
	return requireSuccess(outcome, "password change rejected")
}

// Withdraw deletes the account, then clears all local session state.
func (s *UserService) Withdraw(ctx context.Context, password string) error {
	outcome := s.api.Post(ctx, api.PathWithdraw, api.Document{"password": password})
	if err := requireSuccess(outcome, "withdrawal rejected"); err != nil {
		return err
	}
	s.store.Logout(ctx)
	return nil
}

// remoteLogout is the best-effort server call fired by session.Store.Logout.
func (s *UserService) remoteLogout(ctx context.Context) error {
	outcome := s.api.Post(ctx, api.PathLogout, nil)
	if e, ok := outcome.(api.Error); ok {
		return errors.New(e.String())
	}
	return nil
}

// outcomeError renders a non-Success outcome as an error. Transport
// failures map to ErrUnavailable and 401 to ErrUnauthorized so callers can
// match with errors.Is.
func outcomeError(outcome api.Outcome) error {
	e, ok := outcome.(api.Error)
	if !ok {
		return fmt.Errorf("unexpected outcome type %T", outcome)
	}
	switch e.Code {
	case 0:
		return fmt.Errorf("%w: %s", common.ErrUnavailable, e.Message)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", common.ErrUnauthorized, e.Message)
	default:
		return errors.New(e.String())
	}
}

// requireSuccess collapses an outcome into an error: executor errors go
// through outcomeError, a non-success status field becomes a business
// error.
func requireSuccess(outcome api.Outcome, rejected string) error {
	switch o := outcome.(type) {
	case api.Error:
		return outcomeError(o)
	case api.Success:
		if o.Data.OptString("status", "") != "success" {
			return fmt.Errorf("%w: %s", common.ErrBusiness, o.Data.OptString("message", rejected))
		}
		return nil
	default:
		return fmt.Errorf("unexpected outcome type %T", outcome)
	}
}
