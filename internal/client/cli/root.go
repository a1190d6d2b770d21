package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/crickshots/internal/common"
)

func (a *App) getStatus() string {
	s := ""
	if a.session != nil {
		s = a.session.User.Email + " "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// restoreSession picks up the session saved by a previous run.
func (a *App) restoreSession(ctx context.Context) {
	sess, err := a.authService.Restore(ctx)
	switch {
	case err == nil:
		a.session = sess
		log.Printf("Welcome back, %s", sess.User.Name)
	case errors.Is(err, common.ErrNoSession):
	default:
		log.Printf("could not restore session: %s", err.Error())
	}
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to CrickShots CLI (type 'help' for commands)")

	a.restoreSession(ctx)
	a.checkOnline(ctx)

	go func() {
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	runREPL(ctx, a, a.getStatus, a.reader)
}
