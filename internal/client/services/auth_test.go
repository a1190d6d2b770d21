package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/crickshots/internal/client/client"
	"github.com/dmitrijs2005/crickshots/internal/client/session"
	"github.com/dmitrijs2005/crickshots/internal/common"
	"github.com/dmitrijs2005/crickshots/internal/models"
)

func fixtureSession() *models.Session {
	return &models.Session{
		Token:        "A1",
		RefreshToken: "R1",
		User:         models.SessionUser{ID: 1, Name: "Test User", Email: "test@example.com", Phone: "+1234567890"},
	}
}

func newAuth(t *testing.T, fc *fakeClient) (AuthService, *session.Store) {
	t.Helper()
	store := session.NewStore(setupDB(t))
	return NewAuthService(fc, store), store
}

func TestLogin_PersistsSession(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{SessionRet: fixtureSession()}
	a, store := newAuth(t, fc)

	sess, err := a.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)
	require.Equal(t, "Test User", sess.User.Name)
	require.Equal(t, "test@example.com", fc.LastEmail)
	require.Equal(t, "password123", fc.LastPassword)

	stored, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, *fixtureSession(), *stored)
}

func TestLogin_FailureLeavesNoSession(t *testing.T) {
	ctx := context.Background()
	tests := []error{common.ErrUserNotFound, common.ErrInvalidCredentials, client.ErrUnavailable}
	for _, want := range tests {
		t.Run(want.Error(), func(t *testing.T) {
			a, store := newAuth(t, &fakeClient{SessionErr: want})
			_, err := a.Login(ctx, "x@y.z", "pw")
			require.ErrorIs(t, err, want)

			_, err = store.Load(ctx)
			require.ErrorIs(t, err, common.ErrNoSession)
		})
	}
}

func TestRegister_PersistsSession(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{SessionRet: fixtureSession()}
	a, _ := newAuth(t, fc)

	r := models.Registration{Name: "Test User", Email: "test@example.com", Password: "secret1", ConfirmPassword: "secret1"}
	_, err := a.Register(ctx, r)
	require.NoError(t, err)
	require.Equal(t, r, fc.LastRegistration)

	cur, err := a.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, "A1", cur.Token)
}

func TestRegister_MapsError(t *testing.T) {
	a, _ := newAuth(t, &fakeClient{SessionErr: fmt.Errorf("%w: email", common.ErrMissingField)})
	_, err := a.Register(context.Background(), models.Registration{})
	require.ErrorIs(t, err, common.ErrMissingField)
}

func TestLogout_ClearsEvenWhenServerFails(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{LogoutErr: client.ErrUnavailable}
	a, store := newAuth(t, fc)
	require.NoError(t, store.Save(ctx, *fixtureSession()))

	require.NoError(t, a.Logout(ctx))
	require.Equal(t, 1, fc.LogoutCalls)

	_, err := a.Current(ctx)
	require.ErrorIs(t, err, common.ErrNoSession)
}

func TestRestore_InstallsTokens(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{}
	a, store := newAuth(t, fc)

	_, err := a.Restore(ctx)
	require.ErrorIs(t, err, common.ErrNoSession)

	require.NoError(t, store.Save(ctx, *fixtureSession()))
	sess, err := a.Restore(ctx)
	require.NoError(t, err)
	require.Equal(t, "Test User", sess.User.Name)
	require.Equal(t, "A1", fc.AccessToken)
	require.Equal(t, "R1", fc.RefreshToken)
}

func TestRefreshedTokensArePersisted(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{}
	_, store := newAuth(t, fc)
	require.NoError(t, store.Save(ctx, *fixtureSession()))

	require.NotNil(t, fc.OnRefresh)
	fc.OnRefresh("A2", "R2")

	sess, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "A2", sess.Token)
	require.Equal(t, "R2", sess.RefreshToken)
}

func TestProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("no session", func(t *testing.T) {
		a, _ := newAuth(t, &fakeClient{})
		_, err := a.Profile(ctx)
		require.ErrorIs(t, err, common.ErrNoSession)
	})

	t.Run("updates stored user", func(t *testing.T) {
		fc := &fakeClient{ProfileRet: &models.SessionUser{ID: 1, Name: "Renamed", Email: "test@example.com"}}
		a, store := newAuth(t, fc)
		require.NoError(t, store.Save(ctx, *fixtureSession()))

		u, err := a.Profile(ctx)
		require.NoError(t, err)
		require.Equal(t, "Renamed", u.Name)

		sess, err := store.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, "Renamed", sess.User.Name)
		require.Equal(t, "A1", sess.Token)
	})

	t.Run("tokens rotated during the call are kept", func(t *testing.T) {
		fc := &fakeClient{
			ProfileRet:      &models.SessionUser{ID: 1, Name: "Renamed", Email: "test@example.com"},
			RotateOnProfile: [2]string{"A2", "R2"},
		}
		a, store := newAuth(t, fc)
		require.NoError(t, store.Save(ctx, *fixtureSession()))

		_, err := a.Profile(ctx)
		require.NoError(t, err)

		sess, err := store.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, "A2", sess.Token)
		require.Equal(t, "R2", sess.RefreshToken)
		require.Equal(t, "Renamed", sess.User.Name)
	})

	t.Run("offline uses stored user", func(t *testing.T) {
		a, store := newAuth(t, &fakeClient{ProfileErr: fmt.Errorf("%w: down", client.ErrUnavailable)})
		require.NoError(t, store.Save(ctx, *fixtureSession()))

		u, err := a.Profile(ctx)
		require.NoError(t, err)
		require.Equal(t, "Test User", u.Name)
	})

	t.Run("rejected session is dropped", func(t *testing.T) {
		a, store := newAuth(t, &fakeClient{ProfileErr: common.ErrRefreshTokenExpired})
		require.NoError(t, store.Save(ctx, *fixtureSession()))

		_, err := a.Profile(ctx)
		require.ErrorIs(t, err, common.ErrNoSession)
		_, err = store.Load(ctx)
		require.ErrorIs(t, err, common.ErrNoSession)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		boom := errors.New("boom")
		a, store := newAuth(t, &fakeClient{ProfileErr: boom})
		require.NoError(t, store.Save(ctx, *fixtureSession()))
		_, err := a.Profile(ctx)
		require.ErrorIs(t, err, boom)
	})
}

func TestRefreshedTokens_SaveFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	db := setupDB(t)
	fc := &fakeClient{}
	NewAuthService(fc, session.NewStore(db))
	require.NoError(t, db.Close())

	fc.OnRefresh("A2", "R2")
	require.Contains(t, buf.String(), "could not save refreshed tokens")
}

func TestPingAndClose(t *testing.T) {
	a, _ := newAuth(t, &fakeClient{PingErr: client.ErrUnavailable})
	require.ErrorIs(t, a.Ping(context.Background()), client.ErrUnavailable)
	require.NoError(t, a.Close(context.Background()))
}
