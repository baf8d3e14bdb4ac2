package service

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"storefront/internal/auth"
	"storefront/internal/gateway"
	"storefront/internal/model"
)

// Cart creation outcomes reported by CreateCartIfNotExists.
const (
	CartStatusExists  = "exists"
	CartStatusCreated = "created"
	CartStatusError   = "error"
)

// CartStatus is the never-failing result of CreateCartIfNotExists.
type CartStatus struct {
	Status string `json:"status" yaml:"status"`
	CartID string `json:"cart_id,omitempty" yaml:"cart_id,omitempty"`
}

// LoginOutcome is either LoginOK or LoginRejected.
type LoginOutcome interface {
	loginOutcome()
}

// LoginOK is returned for HTTP 200. Data is the decoded body whether or not
// it carried enough to persist a session.
type LoginOK struct {
	Data model.LoginResponse
}

// LoginRejected is returned for every other status, with the raw body.
type LoginRejected struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (LoginOK) loginOutcome()       {}
func (LoginRejected) loginOutcome() {}

// AuthService handles the client session: login, logout and the cart bootstrap.
type AuthService interface {
	Login(ctx context.Context, email, password string) (LoginOutcome, error)
	Token(ctx context.Context) (string, error)
	UserRole(ctx context.Context) (string, error)
	Profile(ctx context.Context) (model.Profile, error)
	Logout(ctx context.Context) error
	CreateCartIfNotExists(ctx context.Context, token string) CartStatus
}

type authService struct {
	gw       gateway.Doer
	sessions auth.SessionStoreInterface
	log      logrus.FieldLogger
}

// NewAuthService creates a new authentication service.
func NewAuthService(gw gateway.Doer, sessions auth.SessionStoreInterface, log logrus.FieldLogger) AuthService {
	return &authService{
		gw:       gw,
		sessions: sessions,
		log:      log,
	}
}

// Login posts the credentials and persists the session on success.
func (s *authService) Login(ctx context.Context, email, password string) (LoginOutcome, error) {
	body, err := gateway.JSONBody(model.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	resp, err := s.gw.Do(ctx, "/login", gateway.Request{Method: http.MethodPost, Body: body})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read login response: %w", err)
		}
		s.log.WithField("status", resp.StatusCode).Warn("login rejected")
		return LoginRejected{StatusCode: resp.StatusCode, Header: resp.Header, Body: raw}, nil
	}

	var data model.LoginResponse
	if err := gateway.DecodeJSON(resp, &data); err != nil {
		return nil, err
	}

	if data.Token != "" && data.User != nil && data.User.Role != "" {
		if err := s.sessions.Save(ctx, data); err != nil {
			return nil, err
		}
		s.log.WithFields(logrus.Fields{
			"user_id": data.User.ID,
			"role":    data.User.Role,
		}).Info("session started")
	}
	return LoginOK{Data: data}, nil
}

func (s *authService) Token(ctx context.Context) (string, error) {
	return s.sessions.Token(ctx)
}

func (s *authService) UserRole(ctx context.Context) (string, error) {
	return s.sessions.UserRole(ctx)
}

func (s *authService) Profile(ctx context.Context) (model.Profile, error) {
	return s.sessions.Profile(ctx)
}

// Logout removes every session key. It is safe to call when logged out.
func (s *authService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return err
	}
	s.log.Info("session cleared")
	return nil
}

// CreateCartIfNotExists makes sure a server cart id is cached. Failures of
// any kind are reported as CartStatusError, never as an error.
func (s *authService) CreateCartIfNotExists(ctx context.Context, token string) CartStatus {
	cartID, ok, err := s.sessions.CartID(ctx)
	if err != nil {
		s.log.WithError(err).Warn("read cached cart id")
		return CartStatus{Status: CartStatusError}
	}
	if ok {
		return CartStatus{Status: CartStatusExists, CartID: cartID}
	}

	resp, err := s.gw.Do(ctx, "/cart/", gateway.Request{
		Method: http.MethodPost,
		Header: http.Header{
			"Accept":        []string{mediaJSON},
			"Authorization": []string{"Bearer " + token},
		},
		Body: []byte{},
	})
	if err != nil {
		s.log.WithError(err).Warn("create cart request failed")
		return CartStatus{Status: CartStatusError}
	}
	if resp.StatusCode != http.StatusOK {
		gateway.Discard(resp)
		s.log.WithField("status", resp.StatusCode).Warn("create cart rejected")
		return CartStatus{Status: CartStatusError}
	}

	var cart model.Cart
	if err := gateway.DecodeJSON(resp, &cart); err != nil || cart.ID.IsZero() {
		s.log.WithError(err).Warn("create cart returned no id")
		return CartStatus{Status: CartStatusError}
	}
	if err := s.sessions.SetCartID(ctx, cart.ID.String()); err != nil {
		s.log.WithError(err).Warn("cache cart id")
		return CartStatus{Status: CartStatusError}
	}
	return CartStatus{Status: CartStatusCreated, CartID: cart.ID.String()}
}
