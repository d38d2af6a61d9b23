package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/azbs/giftregistry/internal/services"
)

func (a *App) Login(ctx context.Context) error {
	email, err := getText(a.reader, a.out, "Email")
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}

	sess, err := a.users.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			fmt.Fprintln(a.out, "Invalid email or password.")
			return nil
		}
		a.reportErr(err)
		return nil
	}

	a.session.Login(ctx, sess)
	fmt.Fprintf(a.out, "Welcome, %s!\n", sess.Name)
	return nil
}

func (a *App) Register(ctx context.Context) error {
	in := services.RegisterInput{}
	var err error
	if in.Email, err = getText(a.reader, a.out, "Email"); err != nil {
		return err
	}
	if in.Name, err = getText(a.reader, a.out, "Full name"); err != nil {
		return err
	}
	if in.Number, err = getText(a.reader, a.out, "Contact number"); err != nil {
		return err
	}
	if in.Password, err = getPassword(a.out, "Password (min 6 characters)"); err != nil {
		return err
	}

	sess, err := a.users.Register(ctx, in)
	if err != nil {
		a.reportErr(err)
		return nil
	}

	a.session.Login(ctx, sess)
	fmt.Fprintf(a.out, "Account created. Welcome, %s!\n", sess.Name)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.pending = nil
	a.pendingFor = nil
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	s := a.requireSession()
	if s == nil {
		return nil
	}
	fmt.Fprintf(a.out, "Current profile: %s <%s>, contact %s\n", s.Name, s.Email, s.Number)

	in := services.RegisterInput{}
	var err error
	if in.Name, err = getText(a.reader, a.out, "New full name"); err != nil {
		return err
	}
	if in.Email, err = getText(a.reader, a.out, "New email"); err != nil {
		return err
	}
	if in.Number, err = getText(a.reader, a.out, "New contact number"); err != nil {
		return err
	}
	if in.Password, err = getPassword(a.out, "Password (min 6 characters)"); err != nil {
		return err
	}

	updated, err := a.users.UpdateProfile(ctx, s.Email, in)
	if err != nil {
		a.reportErr(err)
		return nil
	}

	// Re-login refreshes both the in-memory session and the persisted
	// record with the new identity.
	a.session.Login(ctx, updated)
	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}
