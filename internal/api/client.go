// Package api contains the typed client for the registry backend REST
// surface. Services depend on the Client interface; the concrete REST
// transport lives in rest.go so tests can substitute a fake.
package api

import (
	"context"

	"github.com/azbs/giftregistry/internal/models"
)

// ClaimRequest is the payload of POST /items/{name}/claim: who claims
// and how many units.
type ClaimRequest struct {
	Name      string `json:"name"`
	Number    string `json:"number"`
	UserEmail string `json:"userEmail"`
	Quantity  int    `json:"quantity"`
}

// Client defines every backend operation the application uses.
//
// All methods honor context cancellation. A transport-level failure is
// reported as ErrUnavailable; a response the backend rejected is reported
// as *BackendError (matchable against ErrNotFound where applicable).
type Client interface {
	Close() error

	RegisterUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, email string, user *models.User) error
	GetUserWithGuests(ctx context.Context, email string) (*models.User, []models.Guest, error)

	CreateGuest(ctx context.Context, guest *models.Guest) error
	UpdateGuest(ctx context.Context, name, number string, guest *models.Guest) error
	DeleteGuest(ctx context.Context, name, number string) error
	GuestsByUser(ctx context.Context, email string) ([]models.Guest, error)

	Items(ctx context.Context) ([]models.Item, error)
	ClaimedItems(ctx context.Context) ([]models.Item, error)
	UnclaimedItems(ctx context.Context) ([]models.Item, error)
	CreateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, name string) error
	ClaimItem(ctx context.Context, itemName string, req *ClaimRequest) error
	UnclaimItem(ctx context.Context, itemName string) error

	Claims(ctx context.Context) ([]models.Claim, error)
	ClaimsByGuest(ctx context.Context, name, number string) ([]models.Claim, error)
	ClaimsByItem(ctx context.Context, itemName string) ([]models.Claim, error)
	CreateClaim(ctx context.Context, claim *models.Claim) error
	UpdateClaim(ctx context.Context, name, number, itemName string, quantity int) error
	DeleteClaim(ctx context.Context, name, number, itemName string) error
	DeleteClaimsByGuest(ctx context.Context, name, number string) error
	DeleteClaimsByItem(ctx context.Context, itemName string) error
}
