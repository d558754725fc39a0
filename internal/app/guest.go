package app

import (
	"fmt"
	"os"
	"strings"

	"babyshower/internal/api"
	"babyshower/internal/models"
	"babyshower/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// GuestState tracks the guest identity flow. The only way back to
// unauthenticated is an explicit logout.
type GuestState int

const (
	GuestUnauthenticated GuestState = iota
	GuestAuthenticated
)

// RegistrationForm holds the local form state edited before submission.
// Companion edits never touch the backend.
type RegistrationForm struct {
	Name          string `validate:"required"`
	Whatsapp      string `validate:"required"`
	Companions    []string
	StayConnected bool
}

// AddCompanion appends a trimmed, non-empty name and reports whether it was
// added.
func (f *RegistrationForm) AddCompanion(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	f.Companions = append(f.Companions, name)
	return true
}

// RemoveCompanion drops the entry at index i, shifting later entries down by
// one and preserving the order of the rest. Out-of-range indices are ignored.
func (f *RegistrationForm) RemoveCompanion(i int) {
	if i < 0 || i >= len(f.Companions) {
		return
	}
	f.Companions = append(f.Companions[:i], f.Companions[i+1:]...)
}

// GuestService is the slice of the backend client the guest flow uses.
type GuestService interface {
	Register(req api.RegisterRequest) (*models.GuestUser, error)
	Login(req api.LoginRequest) (*models.GuestUser, error)
}

type loginInput struct {
	Name     string `validate:"required"`
	Whatsapp string `validate:"required"`
}

// GuestFlow owns the guest identity: registration, login, silent resume from
// the persisted session, and logout.
type GuestFlow struct {
	svc      GuestService
	store    *session.Store
	validate *validator.Validate
	log      zerolog.Logger

	state GuestState
	user  *models.GuestUser
}

// NewGuestFlow creates an unauthenticated guest flow.
func NewGuestFlow(svc GuestService, store *session.Store) *GuestFlow {
	return &GuestFlow{
		svc:      svc,
		store:    store,
		validate: validator.New(),
		log:      zerolog.New(os.Stdout).With().Timestamp().Str("component", "guest").Logger(),
	}
}

// Resume silently re-enters a persisted session, if one exists, and reports
// whether it did.
func (g *GuestFlow) Resume() bool {
	user, ok := g.store.LoadGuest()
	if !ok {
		return false
	}
	g.user = user
	g.state = GuestAuthenticated
	g.log.Info().Str("name", user.Name).Msg("Restored guest session")
	return true
}

// Register submits the form. On success the returned record becomes the
// active user and, if the user asked to stay connected, is persisted. On
// failure the flow stays unauthenticated and the attempt is discarded.
func (g *GuestFlow) Register(form *RegistrationForm) (*models.GuestUser, error) {
	if err := g.validate.Struct(form); err != nil {
		return nil, fmt.Errorf("name and whatsapp are required")
	}

	companions := form.Companions
	if companions == nil {
		companions = []string{}
	}
	user, err := g.svc.Register(api.RegisterRequest{
		Name:          strings.TrimSpace(form.Name),
		Whatsapp:      strings.TrimSpace(form.Whatsapp),
		Companions:    companions,
		StayConnected: form.StayConnected,
	})
	if err != nil {
		return nil, err
	}
	g.activate(user)
	return user, nil
}

// Login matches an existing record. The success contract is the same as
// Register: the session is persisted only when the returned record carries
// stay_connected.
func (g *GuestFlow) Login(name, whatsapp string) (*models.GuestUser, error) {
	if err := g.validate.Struct(loginInput{Name: name, Whatsapp: whatsapp}); err != nil {
		return nil, fmt.Errorf("name and whatsapp are required")
	}

	user, err := g.svc.Login(api.LoginRequest{
		Name:     strings.TrimSpace(name),
		Whatsapp: strings.TrimSpace(whatsapp),
	})
	if err != nil {
		return nil, err
	}
	g.activate(user)
	return user, nil
}

func (g *GuestFlow) activate(user *models.GuestUser) {
	g.user = user
	g.state = GuestAuthenticated
	if user.StayConnected {
		if err := g.store.SaveGuest(user); err != nil {
			g.log.Error().Err(err).Msg("Failed to persist guest session")
		}
	}
}

// Logout clears the in-memory user and the persisted guest session.
func (g *GuestFlow) Logout() {
	g.user = nil
	g.state = GuestUnauthenticated
	g.store.ClearGuest()
}

// User returns the active guest, or nil when unauthenticated.
func (g *GuestFlow) User() *models.GuestUser { return g.user }

// Authenticated reports whether a guest is active.
func (g *GuestFlow) Authenticated() bool { return g.state == GuestAuthenticated }
