// Package session persists the signed-in account on the client. A Session
// is stored under three metadata keys and restored at CLI start-up.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/crickshots/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/crickshots/internal/common"
	"github.com/dmitrijs2005/crickshots/internal/dbx"
	"github.com/dmitrijs2005/crickshots/internal/models"
)

const (
	KeyAuthToken    = "authToken"
	KeyUserData     = "userData"
	KeyRefreshToken = "refreshToken"
)

var keys = []string{KeyAuthToken, KeyUserData, KeyRefreshToken}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save writes all session keys atomically.
func (s *Store) Save(ctx context.Context, sess models.Session) error {
	userData, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("failed to encode user data: %w", err)
	}
	return s.put(ctx, map[string][]byte{
		KeyAuthToken:    []byte(sess.Token),
		KeyRefreshToken: []byte(sess.RefreshToken),
		KeyUserData:     userData,
	})
}

// UpdateTokens replaces the stored token pair, keeping the user data.
func (s *Store) UpdateTokens(ctx context.Context, accessToken, refreshToken string) error {
	return s.put(ctx, map[string][]byte{
		KeyAuthToken:    []byte(accessToken),
		KeyRefreshToken: []byte(refreshToken),
	})
}

// UpdateUser replaces the stored user data, keeping the token pair.
func (s *Store) UpdateUser(ctx context.Context, u models.SessionUser) error {
	userData, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode user data: %w", err)
	}
	return s.put(ctx, map[string][]byte{KeyUserData: userData})
}

func (s *Store) put(ctx context.Context, pairs map[string][]byte) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Put(ctx, pairs)
	})
}

// Load returns common.ErrNoSession unless both the token and the user data
// are present.
func (s *Store) Load(ctx context.Context) (*models.Session, error) {
	vals, err := metadata.NewSQLiteRepository(s.db).Fetch(ctx, keys...)
	if err != nil {
		return nil, err
	}

	token, ok := vals[KeyAuthToken]
	if !ok {
		return nil, common.ErrNoSession
	}
	userData, ok := vals[KeyUserData]
	if !ok {
		return nil, common.ErrNoSession
	}

	var user models.SessionUser
	if err := json.Unmarshal(userData, &user); err != nil {
		return nil, fmt.Errorf("%w: corrupt user data", common.ErrNoSession)
	}

	return &models.Session{
		Token:        string(token),
		RefreshToken: string(vals[KeyRefreshToken]),
		User:         user,
	}, nil
}

// Clear removes the session keys only; the purchase ledger is untouched.
func (s *Store) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx, keys...)
}
