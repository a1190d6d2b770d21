package cli

import (
	"bytes"
	"context"
	"log"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/dmitrijs2005/crickshots/internal/client/client"
	"github.com/dmitrijs2005/crickshots/internal/models"
)

func TestIsLoggedIn(t *testing.T) {
	app := &App{}
	if app.isLoggedIn() {
		t.Fatalf("expected isLoggedIn() == false without a session")
	}
	app.session = &models.Session{Token: "A"}
	if !app.isLoggedIn() {
		t.Fatalf("expected isLoggedIn() == true with a session")
	}
}

func TestSetMode_ChangesAndLogsOnce(t *testing.T) {
	app := &App{}
	var buf bytes.Buffer

	old := log.Default().Writer()
	defer log.SetOutput(old)
	log.SetOutput(&buf)

	app.setMode(ModeOnline)
	if app.Mode() != ModeOnline {
		t.Fatalf("expected mode to be %q, got %q", ModeOnline, app.Mode())
	}
	if got := buf.String(); got == "" {
		t.Fatalf("expected log output on mode change, got empty")
	}

	buf.Reset()

	app.setMode(ModeOnline)
	if got := buf.String(); got != "" {
		t.Fatalf("expected no log output when mode doesn't change, got: %q", got)
	}

	app.setMode(ModeOffline)
	if app.Mode() != ModeOffline {
		t.Fatalf("expected mode to be %q, got %q", ModeOffline, app.Mode())
	}
	if got := buf.String(); got == "" {
		t.Fatalf("expected log output on mode change to offline, got empty")
	}
}

func TestCheckOnline(t *testing.T) {
	silenceLog(t)
	auth := &fakeAuth{}
	app := &App{authService: auth}

	app.checkOnline(context.Background())
	if app.Mode() != ModeOnline {
		t.Fatalf("want online, got %q", app.Mode())
	}

	auth.pingErr = client.ErrUnavailable
	app.checkOnline(context.Background())
	if app.Mode() != ModeOffline {
		t.Fatalf("want offline, got %q", app.Mode())
	}
}

func TestStartOnlineStatusWatcher_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)
	silenceLog(t)

	auth := &fakeAuth{}
	app := &App{authService: auth}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for app.Mode() != ModeOnline {
		select {
		case <-deadline:
			t.Fatal("watcher never probed the server")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done
}
