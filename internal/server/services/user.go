// Package services contains the storefront's server-side business logic.
// This file implements UserService: registration, login, token refresh and
// logout over the injected user and refresh-token repositories.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/crickshots/internal/common"
	"github.com/dmitrijs2005/crickshots/internal/models"
	"github.com/dmitrijs2005/crickshots/internal/server/auth"
	"github.com/dmitrijs2005/crickshots/internal/server/config"
	"github.com/dmitrijs2005/crickshots/internal/server/repositories/repomanager"
)

// FixtureUser is the demo account available on a fresh server. Password is
// plaintext here and hashed at seed time.
var FixtureUser = models.User{
	Name:     "Test User",
	Email:    "test@example.com",
	Phone:    "+1234567890",
	Password: "password123",
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides authentication-related operations:
// - Register: validate the sign-up form, create the user and open a session
// - Login: verify credentials and open a session
// - RefreshToken: rotate refresh tokens and mint new access tokens
// - Logout: revoke a refresh token
type UserService struct {
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	bcryptCost                   int
	now                          func() time.Time
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		bcryptCost:                   bcrypt.DefaultCost,
		now:                          time.Now,
	}
}

// Register validates the form in a fixed order (confirmation, length,
// required fields, uniqueness) and fails on the first problem found. No
// user is created unless every check passes.
func (s *UserService) Register(ctx context.Context, r models.Registration) (*models.Session, error) {
	if r.Password != r.ConfirmPassword {
		return nil, common.ErrPasswordMismatch
	}
	if len(r.Password) < common.MinPasswordLength {
		return nil, common.ErrWeakPassword
	}
	if strings.TrimSpace(r.Name) == "" {
		return nil, fmt.Errorf("%w: name", common.ErrMissingField)
	}
	if strings.TrimSpace(r.Email) == "" {
		return nil, fmt.Errorf("%w: email", common.ErrMissingField)
	}

	users := s.repomanager.Users()

	// point-in-time check; the repository enforces uniqueness again on Create
	if _, err := users.GetByEmail(ctx, r.Email); err == nil {
		return nil, common.ErrDuplicateUser
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := users.Create(ctx, &models.User{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Password: string(hash),
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUser) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.openSession(ctx, user)
}

// Login looks the user up by exact email and checks the password.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	user, err := s.repomanager.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, common.ErrInvalidCredentials
	}

	return s.openSession(ctx, user)
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Unknown tokens yield ErrInvalidToken, expired
// ones ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens()

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(s.now()) {
		_ = repo.Delete(ctx, refreshToken)
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := s.repomanager.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		if err := repos.RefreshTokens().Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, repos)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout revokes refreshToken. Unknown tokens are not an error.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.repomanager.RefreshTokens().Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}

func (s *UserService) Profile(ctx context.Context, userID int64) (*models.SessionUser, error) {
	user, err := s.repomanager.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	su := user.SessionUser()
	return &su, nil
}

// SeedFixtureUser creates FixtureUser unless an account with its email
// already exists.
func (s *UserService) SeedFixtureUser(ctx context.Context) error {
	users := s.repomanager.Users()
	if _, err := users.GetByEmail(ctx, FixtureUser.Email); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(FixtureUser.Password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	u := FixtureUser
	u.Password = string(hash)

	if _, err := users.Create(ctx, &u); err != nil && !errors.Is(err, common.ErrDuplicateUser) {
		return fmt.Errorf("error seeding fixture user: %w", err)
	}
	return nil
}

// --- helpers below ---

func (s *UserService) openSession(ctx context.Context, user *models.User) (*models.Session, error) {
	pair, err := s.generateTokenPair(ctx, user.ID, s.repomanager)
	if err != nil {
		return nil, err
	}
	return &models.Session{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user.SessionUser(),
	}, nil
}

func (s *UserService) generateAccessToken(userID int64) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *UserService) generateTokenPair(ctx context.Context, userID int64, repos repomanager.Repositories) (*TokenPair, error) {
	access, err := s.generateAccessToken(userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := repos.RefreshTokens().Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
