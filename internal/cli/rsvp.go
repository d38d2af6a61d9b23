package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/azbs/giftregistry/internal/services"
)

// RSVP lists the user's guests and lets them flip a guest's going flag.
func (a *App) RSVP(ctx context.Context) error {
	s := a.requireSession()
	if s == nil {
		return nil
	}
	guests, err := a.guests.List(ctx, s.Email)
	if err != nil {
		a.reportErr(err)
		return nil
	}
	if len(guests) == 0 {
		fmt.Fprintln(a.out, "No guests yet; use 'addguest' to add one.")
		return nil
	}
	for n, g := range guests {
		status := "not going"
		if g.Going {
			status = "going"
		}
		fmt.Fprintf(a.out, "  %2d. %-20s %-14s %s\n", n+1, g.Name, g.Number, status)
	}

	line, err := getText(a.reader, a.out, "Guest number to update (empty to go back)")
	if err != nil {
		return err
	}
	if line == "" {
		return nil
	}
	idx, err := strconv.Atoi(line)
	if err != nil || idx < 1 || idx > len(guests) {
		fmt.Fprintf(a.out, "No guest numbered %q.\n", line)
		return nil
	}
	guest := guests[idx-1]

	going, err := getYesNo(a.reader, a.out, fmt.Sprintf("Is %s going?", guest.Name))
	if err != nil {
		return err
	}
	if err := a.guests.SetGoing(ctx, s.Email, guest.Name, guest.Number, going); err != nil {
		a.reportErr(err)
		return nil
	}
	fmt.Fprintln(a.out, "RSVP updated.")
	return nil
}

func (a *App) AddGuest(ctx context.Context) error {
	s := a.requireSession()
	if s == nil {
		return nil
	}
	name, err := getText(a.reader, a.out, "Guest name")
	if err != nil {
		return err
	}
	number, err := getText(a.reader, a.out, "Guest contact number")
	if err != nil {
		return err
	}

	if err := a.guests.Add(ctx, s.Email, services.GuestInput{Name: name, Number: number}); err != nil {
		a.reportErr(err)
		return nil
	}
	fmt.Fprintf(a.out, "Guest %s added.\n", name)
	return nil
}

// DeleteGuest removes a guest and releases all their claims.
func (a *App) DeleteGuest(ctx context.Context) error {
	s := a.requireSession()
	if s == nil {
		return nil
	}
	name, err := getText(a.reader, a.out, "Guest name")
	if err != nil {
		return err
	}
	number, err := getText(a.reader, a.out, "Guest contact number")
	if err != nil {
		return err
	}

	sure, err := getYesNo(a.reader, a.out,
		fmt.Sprintf("Remove %s and release their claims?", name))
	if err != nil {
		return err
	}
	if !sure {
		return nil
	}
	if err := a.guests.Delete(ctx, name, number); err != nil {
		a.reportErr(err)
		return nil
	}
	fmt.Fprintf(a.out, "Guest %s removed.\n", name)
	return nil
}
