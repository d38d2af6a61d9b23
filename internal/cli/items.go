package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/azbs/giftregistry/internal/models"
)

// Items lists what is still claimable.
func (a *App) Items(ctx context.Context) error {
	if a.requireSession() == nil {
		return nil
	}
	items, err := a.claims.ListClaimableItems(ctx)
	if err != nil {
		a.reportErr(err)
		return nil
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Nothing left to claim. Check 'myclaims' for what you already hold.")
		return nil
	}
	fmt.Fprintln(a.out, "Available items:")
	for n, it := range items {
		fmt.Fprintf(a.out, "  %2d. %-24s %d of %d available\n", n+1, it.Name, it.Available(), it.Quantity)
	}
	return nil
}

// askClaimant asks whether the claim is for the user or one of their
// guests and returns the claimant identity.
func (a *App) askClaimant(s *models.Session) (models.Claimant, error) {
	forGuest, err := getYesNo(a.reader, a.out, "Claim on behalf of a guest?")
	if err != nil {
		return models.Claimant{}, err
	}
	if !forGuest {
		return models.SelfClaimant(s), nil
	}
	name, err := getText(a.reader, a.out, "Guest name")
	if err != nil {
		return models.Claimant{}, err
	}
	number, err := getText(a.reader, a.out, "Guest contact number")
	if err != nil {
		return models.Claimant{}, err
	}
	return models.Claimant{Name: name, Number: number, UserEmail: s.Email}, nil
}

// Claim runs the multi-select claim screen: pick items by number with a
// quantity each, choose who claims, submit as one best-effort batch.
func (a *App) Claim(ctx context.Context) error {
	s := a.requireSession()
	if s == nil {
		return nil
	}

	items, err := a.claims.ListClaimableItems(ctx)
	if err != nil {
		a.reportErr(err)
		return nil
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Nothing left to claim.")
		return nil
	}
	for n, it := range items {
		fmt.Fprintf(a.out, "  %2d. %-24s %d available\n", n+1, it.Name, it.Available())
	}

	line, err := getText(a.reader, a.out, `Selections as "index quantity", comma separated (e.g. "1 2, 3 1")`)
	if err != nil {
		return err
	}
	selections, err := parseSelections(line, items)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return nil
	}
	if len(selections) == 0 {
		fmt.Fprintln(a.out, "Nothing selected.")
		return nil
	}

	claimant, err := a.askClaimant(s)
	if err != nil {
		return err
	}
	return a.submitBatch(ctx, claimant, selections)
}

// Retry resubmits the failed subset of the previous claim batch.
func (a *App) Retry(ctx context.Context) error {
	if a.requireSession() == nil {
		return nil
	}
	if len(a.pending) == 0 || a.pendingFor == nil {
		fmt.Fprintln(a.out, "Nothing to retry.")
		return nil
	}
	return a.submitBatch(ctx, *a.pendingFor, a.pending)
}

func (a *App) submitBatch(ctx context.Context, claimant models.Claimant, selections []models.Selection) error {
	// A non-nil report may come back together with an error (the
	// post-mutation refresh can fail after the requests went out); the
	// per-item outcomes and the pending state must be applied regardless.
	report, err := a.claims.ClaimBatch(ctx, claimant, selections)
	if report == nil {
		a.reportErr(err)
		return nil
	}

	for _, res := range report.Results {
		if res.Err == nil {
			fmt.Fprintf(a.out, "  claimed  %-24s x%d\n", res.ItemName, res.Quantity)
		} else {
			fmt.Fprintf(a.out, "  FAILED   %-24s x%d: %v\n", res.ItemName, res.Quantity, res.Err)
		}
	}
	fmt.Fprintf(a.out, "%d claimed, %d failed.\n", report.Succeeded(), report.Failed())

	a.pending = report.Pending
	if len(report.Pending) > 0 {
		a.pendingFor = &claimant
		fmt.Fprintln(a.out, "Failed items kept selected; type 'retry' to submit them again.")
	} else {
		a.pendingFor = nil
	}

	if err != nil {
		a.reportErr(err)
	}
	return nil
}

// parseSelections turns "1 2, 3 1" into selections against the listed
// items. Indexes are 1-based as printed.
func parseSelections(line string, items []models.Item) ([]models.Selection, error) {
	var out []models.Selection
	for _, part := range strings.Split(line, ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("cannot parse selection %q, expected \"index quantity\"", strings.TrimSpace(part))
		}
		idx, err := strconv.Atoi(fields[0])
		if err != nil || idx < 1 || idx > len(items) {
			return nil, fmt.Errorf("no item numbered %q", fields[0])
		}
		qty, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%q is not a quantity", fields[1])
		}
		out = append(out, models.Selection{ItemName: items[idx-1].Name, Quantity: qty})
	}
	return out, nil
}

// MyClaims shows what the user and their guests hold, including items
// whose availability dropped to zero.
func (a *App) MyClaims(ctx context.Context) error {
	s := a.requireSession()
	if s == nil {
		return nil
	}
	claimed, err := a.claims.ClaimedByUser(ctx, s)
	if err != nil {
		a.reportErr(err)
		return nil
	}
	if len(claimed) == 0 {
		fmt.Fprintln(a.out, "No claims yet.")
		return nil
	}
	for _, ci := range claimed {
		who := "you"
		if !ci.ForSelf {
			who = ci.Guest.Name
		}
		fmt.Fprintf(a.out, "  %-24s x%d  (claimed by %s)\n", ci.Item.Name, ci.Claim.Quantity, who)
	}
	return nil
}

func (a *App) EditClaim(ctx context.Context) error {
	s := a.requireSession()
	if s == nil {
		return nil
	}
	claimant, err := a.askClaimant(s)
	if err != nil {
		return err
	}
	itemName, err := getText(a.reader, a.out, "Item name")
	if err != nil {
		return err
	}
	qty, err := getInt(a.reader, a.out, "New quantity")
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return nil
	}

	if _, err := a.claims.UpdateClaimQuantity(ctx, claimant, itemName, qty); err != nil {
		a.reportErr(err)
		return nil
	}
	fmt.Fprintf(a.out, "Claim on %q set to %d.\n", itemName, qty)
	return nil
}

func (a *App) Unclaim(ctx context.Context) error {
	s := a.requireSession()
	if s == nil {
		return nil
	}
	claimant, err := a.askClaimant(s)
	if err != nil {
		return err
	}
	itemName, err := getText(a.reader, a.out, "Item name")
	if err != nil {
		return err
	}

	if _, err := a.claims.Unclaim(ctx, claimant, itemName); err != nil {
		a.reportErr(err)
		return nil
	}
	fmt.Fprintf(a.out, "Claim on %q released.\n", itemName)
	return nil
}
