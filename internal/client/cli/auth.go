package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/crickshots/internal/common"
	"github.com/dmitrijs2005/crickshots/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readSecret(prompt string) (string, error) {
	pw, err := getPassword(prompt, a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// Register prompts for the sign-up form and creates an account. On success
// the new session is stored and the user is signed in.
func (a *App) Register(ctx context.Context) error {
	var r models.Registration
	var err error

	if r.Name, err = getSimpleText(a.reader, "Full name", a.out); err != nil {
		return err
	}
	if r.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if r.Phone, err = getSimpleText(a.reader, "Phone (optional)", a.out); err != nil {
		return err
	}
	if r.Password, err = a.readSecret("Password"); err != nil {
		return err
	}
	if r.ConfirmPassword, err = a.readSecret("Confirm password"); err != nil {
		return err
	}

	sess, err := a.authService.Register(ctx, r)
	if err != nil {
		return err
	}

	a.session = sess
	fmt.Fprintf(a.out, "Account created. Welcome, %s!\n", sess.User.Name)
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readSecret("Password")
	if err != nil {
		return err
	}

	sess, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.session = sess
	fmt.Fprintf(a.out, "Welcome, %s!\n", sess.User.Name)
	return nil
}

// Logout forgets the session locally even when the server cannot be
// reached. The purchase ledger is kept.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.session = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.authService.Profile(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNoSession) {
			a.session = nil
		}
		return err
	}
	a.session.User = *u

	fmt.Fprintf(a.out, "Name:  %s\nEmail: %s\n", u.Name, u.Email)
	if u.Phone != "" {
		fmt.Fprintf(a.out, "Phone: %s\n", u.Phone)
	}
	return nil
}
