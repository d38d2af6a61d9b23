package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/azbs/giftregistry/internal/api"
	"github.com/azbs/giftregistry/internal/models"
)

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Email    string `validate:"required,email"`
	Name     string `validate:"required"`
	Number   string `validate:"required"`
	Password string `validate:"required,min=6"`
}

// UserService handles account registration, login and profile updates.
//
// The backend owns real credential checks; Login mirrors the thin model
// the backend exposes (fetch the account by email, compare the supplied
// password against the returned record).
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	UpdateProfile(ctx context.Context, currentEmail string, in RegisterInput) (*models.Session, error)
}

type userService struct {
	client   api.Client
	validate *validator.Validate
	log      zerolog.Logger
}

func NewUserService(client api.Client, log zerolog.Logger) UserService {
	return &userService{
		client:   client,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

func (s *userService) checkInput(in *RegisterInput) error {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Number = strings.TrimSpace(in.Number)
	if err := s.validate.Struct(*in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &ValidationError{Field: strings.ToLower(verrs[0].Field()),
				Message: describeFieldError(verrs[0])}
		}
		return &ValidationError{Field: "input", Message: "invalid input"}
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "email address is not valid"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*models.Session, error) {
	if err := s.checkInput(&in); err != nil {
		return nil, err
	}
	user := &models.User{Email: in.Email, Name: in.Name, Number: in.Number, Password: in.Password}
	if err := s.client.RegisterUser(ctx, user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	s.log.Info().Str("email", in.Email).Msg("account registered")
	return user.Session(), nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, &ValidationError{Field: "credentials", Message: "email and password are required"}
	}

	user, err := s.client.GetUser(ctx, email)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if user.Password != password {
		return nil, ErrInvalidCredentials
	}
	s.log.Info().Str("email", email).Msg("login accepted")
	return user.Session(), nil
}

func (s *userService) UpdateProfile(ctx context.Context, currentEmail string, in RegisterInput) (*models.Session, error) {
	if err := s.checkInput(&in); err != nil {
		return nil, err
	}
	user := &models.User{Email: in.Email, Name: in.Name, Number: in.Number, Password: in.Password}
	if err := s.client.UpdateUser(ctx, currentEmail, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.log.Info().Str("email", in.Email).Msg("profile updated")
	return user.Session(), nil
}
