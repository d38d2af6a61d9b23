package services

import (
	"context"
	"net/http"

	"github.com/azbs/giftregistry/internal/api"
	"github.com/azbs/giftregistry/internal/models"
)

// fakeClient is an in-memory stand-in for the backend: it holds
// authoritative item/guest/claim state and mutates it the way the real
// service would, so re-fetch-after-write behavior is observable. Error
// injection fields force failures per operation.
type fakeClient struct {
	items  []models.Item
	guests []models.Guest
	user   *models.User

	itemsErr     error
	guestsErr    error
	claimErr     map[string]error // per item name, forced ClaimItem failure
	updateErr    error
	deleteErr    error
	registerErr  error
	updateUsrErr error

	itemFetches  int
	claimCalls   []api.ClaimRequest
	updateCalls  []string
	deleteCalls  []string
	createdItems []string
}

func newFakeClient() *fakeClient {
	return &fakeClient{claimErr: map[string]error{}}
}

func notFound(msg string) error {
	return &api.BackendError{Status: http.StatusNotFound, Message: msg}
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) item(name string) *models.Item {
	for n := range f.items {
		if f.items[n].Name == name {
			return &f.items[n]
		}
	}
	return nil
}

func copyItems(items []models.Item) []models.Item {
	out := make([]models.Item, len(items))
	for n, it := range items {
		out[n] = it
		out[n].Claims = append([]models.Claim(nil), it.Claims...)
	}
	return out
}

// --- users ---

func (f *fakeClient) RegisterUser(_ context.Context, user *models.User) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	f.user = user
	return nil
}

func (f *fakeClient) GetUser(_ context.Context, email string) (*models.User, error) {
	if f.user == nil || f.user.Email != email {
		return nil, notFound("user not found")
	}
	u := *f.user
	return &u, nil
}

func (f *fakeClient) UpdateUser(_ context.Context, _ string, user *models.User) error {
	if f.updateUsrErr != nil {
		return f.updateUsrErr
	}
	f.user = user
	return nil
}

func (f *fakeClient) GetUserWithGuests(ctx context.Context, email string) (*models.User, []models.Guest, error) {
	u, err := f.GetUser(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	g, err := f.GuestsByUser(ctx, email)
	return u, g, err
}

// --- guests ---

func (f *fakeClient) CreateGuest(_ context.Context, guest *models.Guest) error {
	f.guests = append(f.guests, *guest)
	return nil
}

func (f *fakeClient) UpdateGuest(_ context.Context, name, number string, guest *models.Guest) error {
	for n := range f.guests {
		if f.guests[n].Name == name && f.guests[n].Number == number {
			f.guests[n] = *guest
			return nil
		}
	}
	return notFound("guest not found")
}

func (f *fakeClient) DeleteGuest(_ context.Context, name, number string) error {
	for n := range f.guests {
		if f.guests[n].Name == name && f.guests[n].Number == number {
			f.guests = append(f.guests[:n], f.guests[n+1:]...)
			return nil
		}
	}
	return notFound("guest not found")
}

func (f *fakeClient) GuestsByUser(_ context.Context, email string) ([]models.Guest, error) {
	if f.guestsErr != nil {
		return nil, f.guestsErr
	}
	var out []models.Guest
	for _, g := range f.guests {
		if g.UserEmail == email {
			out = append(out, g)
		}
	}
	return out, nil
}

// --- items ---

func (f *fakeClient) Items(_ context.Context) ([]models.Item, error) {
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}
	f.itemFetches++
	return copyItems(f.items), nil
}

func (f *fakeClient) ClaimedItems(ctx context.Context) ([]models.Item, error) {
	all, err := f.Items(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Item
	for _, it := range all {
		if it.Claimed() > 0 {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeClient) UnclaimedItems(ctx context.Context) ([]models.Item, error) {
	all, err := f.Items(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Item
	for _, it := range all {
		if it.Claimed() == 0 {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeClient) CreateItem(_ context.Context, item *models.Item) error {
	f.createdItems = append(f.createdItems, item.Name)
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeClient) DeleteItem(_ context.Context, name string) error {
	for n := range f.items {
		if f.items[n].Name == name {
			f.items = append(f.items[:n], f.items[n+1:]...)
			return nil
		}
	}
	return notFound("item not found")
}

func (f *fakeClient) ClaimItem(_ context.Context, itemName string, req *api.ClaimRequest) error {
	f.claimCalls = append(f.claimCalls, *req)
	if err := f.claimErr[itemName]; err != nil {
		return err
	}
	it := f.item(itemName)
	if it == nil {
		return notFound("item not found")
	}
	for n := range it.Claims {
		c := &it.Claims[n]
		if c.GuestName == req.Name && c.GuestNumber == req.Number {
			c.Quantity += req.Quantity
			return nil
		}
	}
	it.Claims = append(it.Claims, models.Claim{
		GuestName:   req.Name,
		GuestNumber: req.Number,
		ItemName:    itemName,
		Quantity:    req.Quantity,
		UserEmail:   req.UserEmail,
	})
	return nil
}

func (f *fakeClient) UnclaimItem(_ context.Context, itemName string) error {
	it := f.item(itemName)
	if it == nil {
		return notFound("item not found")
	}
	it.Claims = nil
	return nil
}

// --- claims ---

func (f *fakeClient) Claims(_ context.Context) ([]models.Claim, error) {
	var out []models.Claim
	for _, it := range f.items {
		out = append(out, it.Claims...)
	}
	return out, nil
}

func (f *fakeClient) ClaimsByGuest(_ context.Context, name, number string) ([]models.Claim, error) {
	var out []models.Claim
	for _, it := range f.items {
		for _, c := range it.Claims {
			if c.GuestName == name && c.GuestNumber == number {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func (f *fakeClient) ClaimsByItem(_ context.Context, itemName string) ([]models.Claim, error) {
	it := f.item(itemName)
	if it == nil {
		return nil, notFound("item not found")
	}
	return append([]models.Claim(nil), it.Claims...), nil
}

func (f *fakeClient) CreateClaim(ctx context.Context, claim *models.Claim) error {
	return f.ClaimItem(ctx, claim.ItemName, &api.ClaimRequest{
		Name:      claim.GuestName,
		Number:    claim.GuestNumber,
		UserEmail: claim.UserEmail,
		Quantity:  claim.Quantity,
	})
}

func (f *fakeClient) UpdateClaim(_ context.Context, name, number, itemName string, quantity int) error {
	f.updateCalls = append(f.updateCalls, itemName)
	if f.updateErr != nil {
		return f.updateErr
	}
	it := f.item(itemName)
	if it == nil {
		return notFound("item not found")
	}
	for n := range it.Claims {
		c := &it.Claims[n]
		if c.GuestName == name && c.GuestNumber == number {
			c.Quantity = quantity
			return nil
		}
	}
	return notFound("claim not found")
}

func (f *fakeClient) DeleteClaim(_ context.Context, name, number, itemName string) error {
	f.deleteCalls = append(f.deleteCalls, itemName)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	it := f.item(itemName)
	if it == nil {
		return notFound("item not found")
	}
	for n := range it.Claims {
		c := it.Claims[n]
		if c.GuestName == name && c.GuestNumber == number {
			it.Claims = append(it.Claims[:n], it.Claims[n+1:]...)
			return nil
		}
	}
	return notFound("claim not found")
}

func (f *fakeClient) DeleteClaimsByGuest(_ context.Context, name, number string) error {
	for n := range f.items {
		it := &f.items[n]
		kept := it.Claims[:0]
		for _, c := range it.Claims {
			if !(c.GuestName == name && c.GuestNumber == number) {
				kept = append(kept, c)
			}
		}
		it.Claims = kept
	}
	return nil
}

func (f *fakeClient) DeleteClaimsByItem(_ context.Context, itemName string) error {
	it := f.item(itemName)
	if it == nil {
		return notFound("item not found")
	}
	it.Claims = nil
	return nil
}

var _ api.Client = (*fakeClient)(nil)
