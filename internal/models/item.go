package models

// Claimant identifies who holds a claim: the registered user themselves
// (name + email as the contact number, as the backend keys it) or one of
// their guests. A claimant holds at most one claim per item.
type Claimant struct {
	Name      string `json:"name"`
	Number    string `json:"number"`
	UserEmail string `json:"userEmail"`
}

// SelfClaimant builds the claimant identity a user claims under when
// claiming for themselves. The email doubles as the contact number so
// the (name, number) key stays unique across users.
func SelfClaimant(s *Session) Claimant {
	return Claimant{Name: s.Name, Number: s.Email, UserEmail: s.Email}
}

// Claim is one reservation of quantity units of an item by a claimant.
type Claim struct {
	GuestName   string `json:"guest_name"`
	GuestNumber string `json:"guest_number"`
	ItemName    string `json:"item_name"`
	Quantity    int    `json:"quantity"`
	UserEmail   string `json:"user_email,omitempty"`
}

// Guest is a claimant identity registered by a user, with their RSVP state.
type Guest struct {
	Name      string `json:"name"`
	Number    string `json:"number"`
	UserEmail string `json:"userEmail"`
	Going     bool   `json:"going"`
}

// Item is a gift-registry entry. Quantity is the total stock; Claims are
// the active reservations against it as reported by the backend.
type Item struct {
	Name     string  `json:"item_name"`
	Quantity int     `json:"quantity"`
	ImageURL string  `json:"image_url,omitempty"`
	Link     string  `json:"purchase_link,omitempty"`
	Claims   []Claim `json:"claims,omitempty"`
}

// Claimed reports the number of units currently reserved across all claims.
func (i *Item) Claimed() int {
	total := 0
	for _, c := range i.Claims {
		total += c.Quantity
	}
	return total
}

// Available is the quantity still open to claim: total minus all active
// reservations. Never negative in well-formed backend data; clamped anyway
// so a bad payload cannot produce a negative bound downstream.
func (i *Item) Available() int {
	if a := i.Quantity - i.Claimed(); a > 0 {
		return a
	}
	return 0
}

// ClaimBy returns the claim held by the given claimant on this item, or nil.
func (i *Item) ClaimBy(c Claimant) *Claim {
	for n := range i.Claims {
		if i.Claims[n].GuestName == c.Name && i.Claims[n].GuestNumber == c.Number {
			return &i.Claims[n]
		}
	}
	return nil
}

// Selection is one (item, quantity) pair of a claim batch.
type Selection struct {
	ItemName string
	Quantity int
}

// ClaimResult is the per-item outcome of a batch claim. Err is nil on
// success; failed selections are reported individually, never rolled up.
type ClaimResult struct {
	ItemName string
	Quantity int
	Err      error
}

// ClaimedItem pairs an item with the guest whose claim put it into a
// "claimed by my guests" listing.
type ClaimedItem struct {
	Item    Item
	Claim   Claim
	Guest   Guest
	ForSelf bool
}
