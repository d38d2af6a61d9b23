// Package services contains the application services of the registry
// client. This file holds the claim reconciliation engine: it derives
// every item's remaining availability from fresh backend data, enforces
// the claim-quantity bound before any mutation is sent, and re-fetches
// after every write so no screen renders arithmetic done on stale counts.
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/azbs/giftregistry/internal/api"
	"github.com/azbs/giftregistry/internal/models"
)

// BatchReport is the outcome of one multi-item claim action. The batch
// is best effort: each selection is attempted independently and a
// failure never rolls back or blocks the others.
type BatchReport struct {
	// Results holds one entry per selection, sorted by item name so the
	// report is deterministic regardless of request completion order.
	Results []models.ClaimResult

	// Pending is the failed subset, in a form callers can resubmit as-is.
	Pending []models.Selection

	// Items is the authoritative post-mutation state, fetched after the
	// last request finished.
	Items []models.Item
}

// Succeeded counts selections that were accepted.
func (r *BatchReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts selections that were rejected, locally or by the backend.
func (r *BatchReport) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// ClaimService is the claim reconciliation engine.
type ClaimService interface {
	// ListClaimableItems returns items with availability > 0, ascending
	// by name.
	ListClaimableItems(ctx context.Context) ([]models.Item, error)

	// ClaimBatch claims each selection for the claimant. Quantity bounds
	// are checked against a fetch made at the start of the call, adjusted
	// for earlier successes within the same batch.
	ClaimBatch(ctx context.Context, claimant models.Claimant, selections []models.Selection) (*BatchReport, error)

	// UpdateClaimQuantity changes the quantity of an existing claim. The
	// ceiling is currentQuantity + availability, i.e. the claimant's own
	// reservation is released and re-granted. Returns fresh items.
	UpdateClaimQuantity(ctx context.Context, claimant models.Claimant, itemName string, newQuantity int) ([]models.Item, error)

	// Unclaim removes the claim entirely. A backend "not found" is
	// treated as success: the desired end state already holds.
	Unclaim(ctx context.Context, claimant models.Claimant, itemName string) ([]models.Item, error)

	// ClaimedByUser lists items claimed by the user or any of their
	// guests, including items whose availability has reached zero.
	ClaimedByUser(ctx context.Context, session *models.Session) ([]models.ClaimedItem, error)
}

type claimService struct {
	client api.Client
	log    zerolog.Logger
}

// NewClaimService returns the ClaimService backed by the given API client.
func NewClaimService(client api.Client, log zerolog.Logger) ClaimService {
	return &claimService{client: client, log: log}
}

// fetchItems pulls the authoritative item list and indexes it by name.
func (s *claimService) fetchItems(ctx context.Context) ([]models.Item, map[string]*models.Item, error) {
	items, err := s.client.Items(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch items: %w", err)
	}
	byName := make(map[string]*models.Item, len(items))
	for n := range items {
		byName[items[n].Name] = &items[n]
	}
	return items, byName, nil
}

func sortItems(items []models.Item) {
	sort.Slice(items, func(i, j int) bool {
		return strings.Compare(items[i].Name, items[j].Name) < 0
	})
}

func (s *claimService) ListClaimableItems(ctx context.Context) ([]models.Item, error) {
	items, _, err := s.fetchItems(ctx)
	if err != nil {
		return nil, err
	}
	claimable := make([]models.Item, 0, len(items))
	for _, it := range items {
		if it.Available() > 0 {
			claimable = append(claimable, it)
		}
	}
	sortItems(claimable)
	return claimable, nil
}

func (s *claimService) ClaimBatch(ctx context.Context, claimant models.Claimant, selections []models.Selection) (*BatchReport, error) {
	if len(selections) == 0 {
		return nil, &ValidationError{Field: "selections", Message: "select at least one item to claim"}
	}

	// One fresh fetch bounds the whole batch; earlier successes within
	// the batch reduce what later selections may take.
	_, byName, err := s.fetchItems(ctx)
	if err != nil {
		return nil, err
	}
	remaining := make(map[string]int, len(byName))
	for name, it := range byName {
		remaining[name] = it.Available()
	}

	report := &BatchReport{}
	for _, sel := range selections {
		res := models.ClaimResult{ItemName: sel.ItemName, Quantity: sel.Quantity}

		switch {
		case sel.Quantity < 1:
			res.Err = &ValidationError{Field: "quantity",
				Message: fmt.Sprintf("quantity for %q must be at least 1", sel.ItemName)}
		case byName[sel.ItemName] == nil:
			res.Err = fmt.Errorf("item %q: %w", sel.ItemName, api.ErrNotFound)
		case sel.Quantity > remaining[sel.ItemName]:
			res.Err = &ValidationError{Field: "quantity",
				Message: fmt.Sprintf("requested %d of %q but only %d available",
					sel.Quantity, sel.ItemName, remaining[sel.ItemName])}
		default:
			res.Err = s.client.ClaimItem(ctx, sel.ItemName, &api.ClaimRequest{
				Name:      claimant.Name,
				Number:    claimant.Number,
				UserEmail: claimant.UserEmail,
				Quantity:  sel.Quantity,
			})
			if res.Err == nil {
				remaining[sel.ItemName] -= sel.Quantity
			}
		}

		if res.Err != nil {
			report.Pending = append(report.Pending, sel)
			s.log.Debug().Err(res.Err).Str("item", sel.ItemName).Int("quantity", sel.Quantity).
				Msg("claim rejected")
		}
		report.Results = append(report.Results, res)
	}

	sort.Slice(report.Results, func(i, j int) bool {
		return strings.Compare(report.Results[i].ItemName, report.Results[j].ItemName) < 0
	})

	// Write-then-invalidate: no caller may trust pre-mutation arithmetic.
	fresh, _, err := s.fetchItems(ctx)
	if err != nil {
		return report, fmt.Errorf("refresh after claim: %w", err)
	}
	sortItems(fresh)
	report.Items = fresh

	s.log.Info().Int("succeeded", report.Succeeded()).Int("failed", report.Failed()).
		Str("claimant", claimant.Name).Msg("claim batch finished")
	return report, nil
}

func (s *claimService) UpdateClaimQuantity(ctx context.Context, claimant models.Claimant, itemName string, newQuantity int) ([]models.Item, error) {
	if newQuantity < 1 {
		return nil, &ValidationError{Field: "quantity", Message: "quantity must be at least 1"}
	}

	_, byName, err := s.fetchItems(ctx)
	if err != nil {
		return nil, err
	}
	item := byName[itemName]
	if item == nil {
		return nil, fmt.Errorf("item %q: %w", itemName, api.ErrNotFound)
	}
	claim := item.ClaimBy(claimant)
	if claim == nil {
		return nil, fmt.Errorf("claim on %q by %s: %w", itemName, claimant.Name, api.ErrNotFound)
	}

	// The claimant's held quantity is released and re-granted, so the
	// ceiling is what they hold plus what is still open.
	bound := claim.Quantity + item.Available()
	if newQuantity > bound {
		return nil, &ValidationError{Field: "quantity",
			Message: fmt.Sprintf("requested %d of %q but at most %d can be held", newQuantity, itemName, bound)}
	}

	if err := s.client.UpdateClaim(ctx, claimant.Name, claimant.Number, itemName, newQuantity); err != nil {
		return nil, fmt.Errorf("update claim: %w", err)
	}

	fresh, _, err := s.fetchItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh after update: %w", err)
	}
	sortItems(fresh)
	return fresh, nil
}

func (s *claimService) Unclaim(ctx context.Context, claimant models.Claimant, itemName string) ([]models.Item, error) {
	err := s.client.DeleteClaim(ctx, claimant.Name, claimant.Number, itemName)
	if err != nil && !errors.Is(err, api.ErrNotFound) {
		return nil, fmt.Errorf("unclaim: %w", err)
	}
	if errors.Is(err, api.ErrNotFound) {
		s.log.Debug().Str("item", itemName).Msg("unclaim of absent claim, treating as done")
	}

	fresh, _, err := s.fetchItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh after unclaim: %w", err)
	}
	sortItems(fresh)
	return fresh, nil
}

func (s *claimService) ClaimedByUser(ctx context.Context, session *models.Session) ([]models.ClaimedItem, error) {
	guests, err := s.client.GuestsByUser(ctx, session.Email)
	if err != nil {
		return nil, fmt.Errorf("fetch guests: %w", err)
	}

	items, _, err := s.fetchItems(ctx)
	if err != nil {
		return nil, err
	}

	self := models.SelfClaimant(session)
	claimants := make([]models.Claimant, 0, len(guests)+1)
	claimants = append(claimants, self)
	for _, g := range guests {
		claimants = append(claimants, models.Claimant{Name: g.Name, Number: g.Number, UserEmail: g.UserEmail})
	}
	guestByKey := make(map[string]models.Guest, len(guests))
	for _, g := range guests {
		guestByKey[g.Name+"\x00"+g.Number] = g
	}

	var claimed []models.ClaimedItem
	for _, it := range items {
		for _, c := range claimants {
			claim := it.ClaimBy(c)
			if claim == nil {
				continue
			}
			ci := models.ClaimedItem{Item: it, Claim: *claim}
			if c.Name == self.Name && c.Number == self.Number {
				ci.ForSelf = true
			} else {
				ci.Guest = guestByKey[c.Name+"\x00"+c.Number]
			}
			claimed = append(claimed, ci)
		}
	}

	sort.Slice(claimed, func(i, j int) bool {
		if claimed[i].Item.Name != claimed[j].Item.Name {
			return strings.Compare(claimed[i].Item.Name, claimed[j].Item.Name) < 0
		}
		return strings.Compare(claimed[i].Claim.GuestName, claimed[j].Claim.GuestName) < 0
	})
	return claimed, nil
}
