package cli

import (
	"context"
	"fmt"

	"github.com/azbs/giftregistry/internal/models"
)

// requireAdmin gates the item-management commands. Authorization proper
// lives in the backend; this only keeps the commands out of casual reach.
func (a *App) requireAdmin() *models.Session {
	s := a.requireSession()
	if s == nil {
		return nil
	}
	if !s.IsAdmin() {
		fmt.Fprintln(a.out, "Admin commands need an admin account.")
		return nil
	}
	return s
}

func (a *App) AddItem(ctx context.Context) error {
	if a.requireAdmin() == nil {
		return nil
	}
	name, err := getText(a.reader, a.out, "Item name")
	if err != nil {
		return err
	}
	qty, err := getInt(a.reader, a.out, "Quantity")
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return nil
	}
	link, err := getText(a.reader, a.out, "Purchase link (optional)")
	if err != nil {
		return err
	}

	if err := a.items.Create(ctx, models.Item{Name: name, Quantity: qty, Link: link}); err != nil {
		a.reportErr(err)
		return nil
	}
	fmt.Fprintf(a.out, "Item %q added.\n", name)
	return nil
}

// DeleteItem removes an item and every claim against it.
func (a *App) DeleteItem(ctx context.Context) error {
	if a.requireAdmin() == nil {
		return nil
	}
	name, err := getText(a.reader, a.out, "Item name")
	if err != nil {
		return err
	}
	sure, err := getYesNo(a.reader, a.out,
		fmt.Sprintf("Delete %q and all claims on it?", name))
	if err != nil {
		return err
	}
	if !sure {
		return nil
	}

	if err := a.items.Delete(ctx, name); err != nil {
		a.reportErr(err)
		return nil
	}
	fmt.Fprintf(a.out, "Item %q deleted.\n", name)
	return nil
}

func (a *App) Seed(ctx context.Context) error {
	if a.requireAdmin() == nil {
		return nil
	}
	created, err := a.items.Seed(ctx)
	if err != nil {
		a.reportErr(err)
		return nil
	}
	fmt.Fprintf(a.out, "%d mock items created.\n", created)
	return nil
}

// ExportClaims dumps every claim as the raw export feed.
func (a *App) ExportClaims(ctx context.Context) error {
	if a.requireAdmin() == nil {
		return nil
	}
	claims, err := a.items.AllClaims(ctx)
	if err != nil {
		a.reportErr(err)
		return nil
	}
	if len(claims) == 0 {
		fmt.Fprintln(a.out, "No claims recorded.")
		return nil
	}
	for _, c := range claims {
		fmt.Fprintf(a.out, "  %-24s x%d  %s (%s)\n", c.ItemName, c.Quantity, c.GuestName, c.GuestNumber)
	}
	fmt.Fprintf(a.out, "%d claims total.\n", len(claims))
	return nil
}
