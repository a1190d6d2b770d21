package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/crickshots/internal/common"
	"github.com/dmitrijs2005/crickshots/internal/models"
	"github.com/dmitrijs2005/crickshots/internal/server/auth"
	"github.com/dmitrijs2005/crickshots/internal/server/repositories/repomanager"
)

func validRegistration() models.Registration {
	return models.Registration{
		Name:            "Rahul",
		Email:           "rahul@example.com",
		Phone:           "+919999999999",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestRegister_Success(t *testing.T) {
	rm := repomanager.NewInMemoryRepositoryManager(nil)
	s := newUserService(t, rm)

	sess, err := s.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	assert.Equal(t, models.SessionUser{ID: 1, Name: "Rahul", Email: "rahul@example.com", Phone: "+919999999999"}, sess.User)
	assert.NotEmpty(t, sess.RefreshToken)

	uid, err := auth.GetUserIDFromToken(sess.Token, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), uid)

	stored, err := rm.Users().GetByEmail(context.Background(), "rahul@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.Password, "password must be hashed")

	_, err = rm.RefreshTokens().Find(context.Background(), sess.RefreshToken)
	assert.NoError(t, err)
}

func TestRegister_ValidationOrder(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.Registration)
		want   error
	}{
		{"mismatch wins over weak", func(r *models.Registration) { r.Password = "abc"; r.ConfirmPassword = "abd" }, common.ErrPasswordMismatch},
		{"weak password", func(r *models.Registration) { r.Password = "abc"; r.ConfirmPassword = "abc" }, common.ErrWeakPassword},
		{"weak wins over missing name", func(r *models.Registration) { r.Name = ""; r.Password = "abc"; r.ConfirmPassword = "abc" }, common.ErrWeakPassword},
		{"missing name", func(r *models.Registration) { r.Name = " " }, common.ErrMissingField},
		{"missing email", func(r *models.Registration) { r.Email = "" }, common.ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rm := repomanager.NewInMemoryRepositoryManager(nil)
			s := newUserService(t, rm)

			r := validRegistration()
			tt.mutate(&r)
			_, err := s.Register(context.Background(), r)
			assert.ErrorIs(t, err, tt.want)

			n, _ := rm.Users().Count(context.Background())
			assert.Zero(t, n, "no user may be created on validation failure")
		})
	}
}

func TestRegister_SixCharPasswordAccepted(t *testing.T) {
	s := newUserService(t, repomanager.NewInMemoryRepositoryManager(nil))
	r := validRegistration()
	r.Password, r.ConfirmPassword = "123456", "123456"
	_, err := s.Register(context.Background(), r)
	assert.NoError(t, err)
}

func TestRegister_Duplicate(t *testing.T) {
	rm := repomanager.NewInMemoryRepositoryManager(nil)
	s := newUserService(t, rm)

	_, err := s.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = s.Register(context.Background(), validRegistration())
	assert.ErrorIs(t, err, common.ErrDuplicateUser)
	assert.Equal(t, "User with this email already exists", err.Error())

	n, _ := rm.Users().Count(context.Background())
	assert.Equal(t, int64(1), n)
}

func TestRegister_SequentialIDs(t *testing.T) {
	s := newUserService(t, repomanager.NewInMemoryRepositoryManager(nil))

	for i, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		r := validRegistration()
		r.Email = email
		sess, err := s.Register(context.Background(), r)
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), sess.User.ID)
	}
}

func TestLogin(t *testing.T) {
	rm := repomanager.NewInMemoryRepositoryManager(nil)
	s := newUserService(t, rm)
	_, err := s.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		sess, err := s.Login(context.Background(), "rahul@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "Rahul", sess.User.Name)
		assert.NotEmpty(t, sess.Token)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := s.Login(context.Background(), "nobody@example.com", "secret1")
		assert.ErrorIs(t, err, common.ErrUserNotFound)
	})

	t.Run("email match is exact", func(t *testing.T) {
		_, err := s.Login(context.Background(), "Rahul@example.com", "secret1")
		assert.ErrorIs(t, err, common.ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Login(context.Background(), "rahul@example.com", "wrong")
		assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	})
}

func TestSeedFixtureUser(t *testing.T) {
	rm := repomanager.NewInMemoryRepositoryManager(nil)
	s := newUserService(t, rm)

	require.NoError(t, s.SeedFixtureUser(context.Background()))
	require.NoError(t, s.SeedFixtureUser(context.Background()), "seeding twice is a no-op")

	n, _ := rm.Users().Count(context.Background())
	assert.Equal(t, int64(1), n)

	sess, err := s.Login(context.Background(), FixtureUser.Email, FixtureUser.Password)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sess.User.ID)
}

func TestRefreshToken_Success(t *testing.T) {
	rm := repomanager.NewInMemoryRepositoryManager(nil)
	s := newUserService(t, rm)
	ctx := context.Background()
	require.NoError(t, rm.RefreshTokens().Create(ctx, 7, "refresh-xyz", time.Minute))

	pair, err := s.RefreshToken(ctx, "refresh-xyz")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEqual(t, "refresh-xyz", pair.RefreshToken)

	_, err = rm.RefreshTokens().Find(ctx, "refresh-xyz")
	assert.ErrorIs(t, err, common.ErrorNotFound, "old token rotated out")

	rt, err := rm.RefreshTokens().Find(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), rt.UserID)
}

func TestRefreshToken_Expired(t *testing.T) {
	rm := repomanager.NewInMemoryRepositoryManager(nil)
	s := newUserService(t, rm)
	ctx := context.Background()
	require.NoError(t, rm.RefreshTokens().Create(ctx, 1, "r", -time.Minute))

	_, err := s.RefreshToken(ctx, "r")
	assert.ErrorIs(t, err, common.ErrRefreshTokenExpired)

	_, err = rm.RefreshTokens().Find(ctx, "r")
	assert.ErrorIs(t, err, common.ErrorNotFound, "expired token is purged")
}

func TestRefreshToken_Unknown(t *testing.T) {
	s := newUserService(t, repomanager.NewInMemoryRepositoryManager(nil))
	_, err := s.RefreshToken(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestRefreshToken_TxError(t *testing.T) {
	inner := repomanager.NewInMemoryRepositoryManager(nil)
	rm := &failingManager{InMemoryRepositoryManager: inner, txErr: errBoom{}}
	s := newUserService(t, rm)
	require.NoError(t, inner.RefreshTokens().Create(context.Background(), 1, "r", time.Minute))

	_, err := s.RefreshToken(context.Background(), "r")
	assert.True(t, errors.Is(err, errBoom{}))
}

func TestLogout(t *testing.T) {
	rm := repomanager.NewInMemoryRepositoryManager(nil)
	s := newUserService(t, rm)
	ctx := context.Background()

	sess, err := s.Register(ctx, validRegistration())
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx, sess.RefreshToken))
	_, err = rm.RefreshTokens().Find(ctx, sess.RefreshToken)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.NoError(t, s.Logout(ctx, sess.RefreshToken), "logout is idempotent")
	assert.NoError(t, s.Logout(ctx, ""))
}

func TestProfile(t *testing.T) {
	rm := repomanager.NewInMemoryRepositoryManager(nil)
	s := newUserService(t, rm)
	_, err := s.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	u, err := s.Profile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "rahul@example.com", u.Email)

	_, err = s.Profile(context.Background(), 99)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
