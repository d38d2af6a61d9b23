// Package cli is the interactive terminal front end of the registry
// client. Each REPL command maps to one screen of the original web app;
// every accepted command doubles as an activity signal for the idle
// timeout.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/azbs/giftregistry/internal/api"
	"github.com/azbs/giftregistry/internal/config"
	"github.com/azbs/giftregistry/internal/models"
	"github.com/azbs/giftregistry/internal/repositories/localstore"
	"github.com/azbs/giftregistry/internal/services"
	"github.com/azbs/giftregistry/internal/session"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	log     zerolog.Logger
	session *session.Manager

	users  services.UserService
	guests services.GuestService
	claims services.ClaimService
	items  services.ItemService

	apiClient api.Client
	db        *sql.DB
	reader    *bufio.Reader
	out       io.Writer

	// pending holds the failed subset of the last claim batch so it can
	// be resubmitted with "retry".
	pending    []models.Selection
	pendingFor *models.Claimant
}

func NewApp(cfg *config.Config, log zerolog.Logger) (*App, error) {
	ctx := context.Background()

	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open local database: %w", err)
	}
	store := localstore.NewSQLiteRepository(db)
	if err := store.Init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	apiClient, err := api.NewRESTClient(cfg.APIBaseURL, cfg.HTTPTimeout, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	out := io.Writer(os.Stdout)
	sess := session.NewManager(store, nil, cfg.IdleTimeout, cfg.WarningWindow, func() {
		fmt.Fprintln(out, "\nYou were logged out due to inactivity. Type 'login' to continue.")
	}, log)

	return &App{
		config:    cfg,
		log:       log,
		session:   sess,
		users:     services.NewUserService(apiClient, log),
		guests:    services.NewGuestService(apiClient, log),
		claims:    services.NewClaimService(apiClient, log),
		items:     services.NewItemService(apiClient, log),
		apiClient: apiClient,
		db:        db,
		reader:    bufio.NewReader(os.Stdin),
		out:       out,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		_ = a.apiClient.Close()
		_ = a.db.Close()
	}()

	a.session.Restore(ctx)
	fmt.Fprintln(a.out, "Welcome to the gift registry (type 'help' for commands)")
	if s := a.session.Session(); s != nil {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", s.Name)
	}

	runREPL(ctx, a, a.status, a.reader)
}

// status feeds the prompt: the logged-in identity plus, while the
// inactivity warning is up, the remaining seconds.
func (a *App) status() string {
	s := a.session.Session()
	if s == nil {
		return ""
	}
	if a.session.WarningVisible() {
		return fmt.Sprintf("(%s) still there? auto-logout in %ds, type 'stay'",
			s.Email, a.session.CountdownRemaining())
	}
	return fmt.Sprintf("(%s)", s.Email)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	return a.session.Session().IsAdmin()
}

func (a *App) onActivity() {
	a.session.OnActivity()
}

// Stay confirms continued presence while the inactivity warning is up.
func (a *App) Stay(ctx context.Context) error {
	a.session.DismissWarning()
	fmt.Fprintln(a.out, "You are still logged in.")
	return nil
}

// requireSession returns the active session or prints a hint and nil.
func (a *App) requireSession() *models.Session {
	s := a.session.Session()
	if s == nil {
		fmt.Fprintln(a.out, "Please 'login' or 'register' first.")
	}
	return s
}

// reportErr renders a service failure the way the screens did: inline
// validation text, a retry hint for connectivity problems, the backend
// message otherwise.
func (a *App) reportErr(err error) {
	switch {
	case err == nil:
	case services.IsValidation(err):
		fmt.Fprintf(a.out, "Invalid input: %v\n", err)
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "Cannot reach the server. Please try again.")
	default:
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}
