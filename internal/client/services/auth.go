// Package services contains application services for the CrickShots client.
// This file defines the authentication service: register, login, logout and
// restoring the stored session at start-up.
package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/crickshots/internal/client/client"
	"github.com/dmitrijs2005/crickshots/internal/client/session"
	"github.com/dmitrijs2005/crickshots/internal/common"
	"github.com/dmitrijs2005/crickshots/internal/models"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register/Login: authenticate against the server and persist the session.
//   - Logout: revoke the refresh token (best effort) and drop the session.
//   - Current: the stored session or common.ErrNoSession.
//   - Restore: Current, plus installing its tokens into the API client.
//   - Profile: the server's view of the account; refreshes the stored copy.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, r models.Registration) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*models.Session, error)
	Restore(ctx context.Context) (*models.Session, error)
	Profile(ctx context.Context) (*models.SessionUser, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  *session.Store
}

// NewAuthService binds the API client to the session store. Rotated tokens
// are written back to the store as soon as the client receives them.
func NewAuthService(c client.Client, store *session.Store) AuthService {
	a := &authService{client: c, store: store}
	c.OnTokensRefreshed(func(accessToken, refreshToken string) {
		if err := store.UpdateTokens(context.Background(), accessToken, refreshToken); err != nil {
			log.Printf("could not save refreshed tokens: %s", err.Error())
		}
	})
	return a
}

func (a *authService) Register(ctx context.Context, r models.Registration) (*models.Session, error) {
	sess, err := a.client.Register(ctx, r)
	if err != nil {
		return nil, err
	}
	if err := a.store.Save(ctx, *sess); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return sess, nil
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	sess, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := a.store.Save(ctx, *sess); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return sess, nil
}

// Logout succeeds offline too; only a failure to clear local keys is
// reported.
func (a *authService) Logout(ctx context.Context) error {
	_ = a.client.Logout(ctx)
	return a.store.Clear(ctx)
}

func (a *authService) Current(ctx context.Context) (*models.Session, error) {
	return a.store.Load(ctx)
}

func (a *authService) Restore(ctx context.Context) (*models.Session, error) {
	sess, err := a.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	a.client.SetTokens(sess.Token, sess.RefreshToken)
	return sess, nil
}

// Profile falls back to the stored user while the server is unreachable.
// A rejected session is dropped locally.
func (a *authService) Profile(ctx context.Context) (*models.SessionUser, error) {
	sess, err := a.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	u, err := a.client.Profile(ctx)
	switch {
	case err == nil:
	case errors.Is(err, client.ErrUnavailable):
		return &sess.User, nil
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrRefreshTokenExpired),
		errors.Is(err, common.ErrInvalidToken):
		_ = a.store.Clear(ctx)
		return nil, common.ErrNoSession
	default:
		return nil, err
	}

	// the call may have rotated the token pair; only the user is rewritten
	if err := a.store.UpdateUser(ctx, *u); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return u, nil
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
