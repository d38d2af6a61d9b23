package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/azbs/giftregistry/internal/api"
	"github.com/azbs/giftregistry/internal/models"
)

// GuestInput carries the fields a user supplies when registering a guest.
type GuestInput struct {
	Name   string `validate:"required"`
	Number string `validate:"required"`
}

// GuestService manages the guests a user brings and their RSVP state.
type GuestService interface {
	List(ctx context.Context, userEmail string) ([]models.Guest, error)
	Add(ctx context.Context, userEmail string, in GuestInput) error
	SetGoing(ctx context.Context, userEmail, name, number string, going bool) error
	Delete(ctx context.Context, name, number string) error
}

type guestService struct {
	client   api.Client
	validate *validator.Validate
	log      zerolog.Logger
}

func NewGuestService(client api.Client, log zerolog.Logger) GuestService {
	return &guestService{
		client:   client,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

func (s *guestService) List(ctx context.Context, userEmail string) ([]models.Guest, error) {
	guests, err := s.client.GuestsByUser(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("fetch guests: %w", err)
	}
	sort.Slice(guests, func(i, j int) bool {
		return strings.Compare(guests[i].Name, guests[j].Name) < 0
	})
	return guests, nil
}

// Add registers a new guest. Duplicate (name, number) identities are
// rejected locally against a fresh guest list before the backend is hit.
func (s *guestService) Add(ctx context.Context, userEmail string, in GuestInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Number = strings.TrimSpace(in.Number)
	if err := s.validate.Struct(in); err != nil {
		return &ValidationError{Field: "guest", Message: "guest name and contact number are required"}
	}

	existing, err := s.client.GuestsByUser(ctx, userEmail)
	if err != nil {
		return fmt.Errorf("fetch guests: %w", err)
	}
	for _, g := range existing {
		if g.Name == in.Name && g.Number == in.Number {
			return &ValidationError{Field: "guest",
				Message: fmt.Sprintf("guest %s (%s) already exists", in.Name, in.Number)}
		}
	}

	guest := &models.Guest{Name: in.Name, Number: in.Number, UserEmail: userEmail}
	if err := s.client.CreateGuest(ctx, guest); err != nil {
		return fmt.Errorf("create guest: %w", err)
	}
	s.log.Info().Str("guest", in.Name).Msg("guest added")
	return nil
}

func (s *guestService) SetGoing(ctx context.Context, userEmail, name, number string, going bool) error {
	guest := &models.Guest{Name: name, Number: number, UserEmail: userEmail, Going: going}
	if err := s.client.UpdateGuest(ctx, name, number, guest); err != nil {
		return fmt.Errorf("update rsvp: %w", err)
	}
	s.log.Info().Str("guest", name).Bool("going", going).Msg("rsvp updated")
	return nil
}

// Delete removes a guest and releases every claim that guest held, so
// the freed quantities become claimable again.
func (s *guestService) Delete(ctx context.Context, name, number string) error {
	if err := s.client.DeleteClaimsByGuest(ctx, name, number); err != nil && !errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("release guest claims: %w", err)
	}
	if err := s.client.DeleteGuest(ctx, name, number); err != nil {
		return fmt.Errorf("delete guest: %w", err)
	}
	s.log.Info().Str("guest", name).Msg("guest deleted")
	return nil
}
