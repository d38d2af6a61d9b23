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

// ItemService covers admin item management and the data-export feed.
type ItemService interface {
	Create(ctx context.Context, item models.Item) error
	Delete(ctx context.Context, name string) error
	Seed(ctx context.Context) (int, error)
	AllClaims(ctx context.Context) ([]models.Claim, error)
}

type itemService struct {
	client api.Client
	log    zerolog.Logger
}

func NewItemService(client api.Client, log zerolog.Logger) ItemService {
	return &itemService{client: client, log: log}
}

func (s *itemService) Create(ctx context.Context, item models.Item) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return &ValidationError{Field: "name", Message: "item name is required"}
	}
	if item.Quantity < 1 {
		return &ValidationError{Field: "quantity", Message: "item quantity must be at least 1"}
	}
	if err := s.client.CreateItem(ctx, &item); err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	s.log.Info().Str("item", item.Name).Int("quantity", item.Quantity).Msg("item created")
	return nil
}

// Delete removes an item and every claim against it.
func (s *itemService) Delete(ctx context.Context, name string) error {
	if err := s.client.DeleteClaimsByItem(ctx, name); err != nil && !errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("release item claims: %w", err)
	}
	if err := s.client.DeleteItem(ctx, name); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	s.log.Info().Str("item", name).Msg("item deleted")
	return nil
}

// mockItems is the sample registry used to exercise claiming end to end
// on an empty backend.
var mockItems = []models.Item{
	{Name: "Convertible crib", Quantity: 1},
	{Name: "Stroller", Quantity: 1},
	{Name: "Baby monitor", Quantity: 2},
	{Name: "Bottle set", Quantity: 4},
	{Name: "Swaddle blankets", Quantity: 6},
	{Name: "Diaper pack", Quantity: 10},
}

// Seed creates the mock items, skipping ones the backend already has.
// Returns how many were created.
func (s *itemService) Seed(ctx context.Context) (int, error) {
	existing, err := s.client.Items(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch items: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, it := range existing {
		have[it.Name] = true
	}

	created := 0
	for _, it := range mockItems {
		if have[it.Name] {
			continue
		}
		if err := s.client.CreateItem(ctx, &it); err != nil {
			return created, fmt.Errorf("seed item %q: %w", it.Name, err)
		}
		created++
	}
	s.log.Info().Int("created", created).Msg("mock items seeded")
	return created, nil
}

// AllClaims is the raw feed behind the admin export; formatting is left
// to whatever consumes it.
func (s *itemService) AllClaims(ctx context.Context) ([]models.Claim, error) {
	claims, err := s.client.Claims(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch claims: %w", err)
	}
	sort.Slice(claims, func(i, j int) bool {
		if claims[i].ItemName != claims[j].ItemName {
			return strings.Compare(claims[i].ItemName, claims[j].ItemName) < 0
		}
		return strings.Compare(claims[i].GuestName, claims[j].GuestName) < 0
	})
	return claims, nil
}
