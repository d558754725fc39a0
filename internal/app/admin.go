package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"babyshower/internal/api"
	"babyshower/internal/models"
	"babyshower/internal/session"

	"github.com/rs/zerolog"
)

// AdminState tracks the admin identity flow.
type AdminState int

const (
	AdminLoggedOut AdminState = iota
	AdminLoggingIn
	AdminDashboardLoaded
)

// ErrInvalidCredentials is the single message shown for any admin login
// failure. Wrong credentials and network failures are deliberately not
// distinguished to the user.
var ErrInvalidCredentials = errors.New("invalid credentials, check username and password")

// AdminService is the slice of the backend client the admin flow uses.
type AdminService interface {
	AdminLogin(req api.AdminLoginRequest) error
	AdminDashboard() (*models.DashboardSnapshot, error)
}

// AdminFlow owns the admin identity and its dashboard snapshot. Both the
// in-page overlay and the standalone admin surface drive this one flow, so
// both end in the same persisted-session contract.
type AdminFlow struct {
	svc   AdminService
	store *session.Store
	log   zerolog.Logger
	now   func() time.Time

	state    AdminState
	snapshot *models.DashboardSnapshot
}

// NewAdminFlow creates a logged-out admin flow.
func NewAdminFlow(svc AdminService, store *session.Store) *AdminFlow {
	return &AdminFlow{
		svc:   svc,
		store: store,
		log:   zerolog.New(os.Stdout).With().Timestamp().Str("component", "admin").Logger(),
		now:   time.Now,
	}
}

// Login authenticates and then fetches the dashboard snapshot. Both calls
// must succeed; any failure reverts to logged out and surfaces as the one
// generic invalid-credentials error.
func (a *AdminFlow) Login(username, password string) error {
	a.state = AdminLoggingIn

	if err := a.svc.AdminLogin(api.AdminLoginRequest{Username: username, Password: password}); err != nil {
		a.state = AdminLoggedOut
		a.log.Debug().Err(err).Msg("Admin authentication failed")
		return ErrInvalidCredentials
	}
	snapshot, err := a.svc.AdminDashboard()
	if err != nil {
		a.state = AdminLoggedOut
		a.log.Debug().Err(err).Msg("Dashboard fetch failed after login")
		return ErrInvalidCredentials
	}

	a.adopt(snapshot)
	return nil
}

// Resume restores a persisted, unexpired session for the dashboard surface
// and reports whether it did. Callers redirect to the admin login entry
// point when it reports false.
func (a *AdminFlow) Resume() bool {
	sess, ok := a.store.LoadAdmin()
	if !ok {
		return false
	}
	a.snapshot = sess.Data
	a.state = AdminDashboardLoaded
	return true
}

// Refresh replaces the snapshot and the persisted record while staying on
// the dashboard. A failed refresh forces a full logout: a stale or revoked
// credential is assumed to be the cause.
func (a *AdminFlow) Refresh() error {
	snapshot, err := a.svc.AdminDashboard()
	if err != nil {
		a.log.Warn().Err(err).Msg("Dashboard refresh failed, logging out")
		a.Logout()
		return fmt.Errorf("failed to refresh dashboard: %w", err)
	}
	a.adopt(snapshot)
	return nil
}

// Logout clears the persisted admin session unconditionally.
func (a *AdminFlow) Logout() {
	a.snapshot = nil
	a.state = AdminLoggedOut
	a.store.ClearAdmin()
}

func (a *AdminFlow) adopt(snapshot *models.DashboardSnapshot) {
	a.snapshot = snapshot
	a.state = AdminDashboardLoaded
	sess := &models.AdminSession{
		LoggedIn:  true,
		Data:      snapshot,
		Timestamp: a.now().UnixMilli(),
	}
	if err := a.store.SaveAdmin(sess); err != nil {
		a.log.Error().Err(err).Msg("Failed to persist admin session")
	}
}

// State reports the flow state.
func (a *AdminFlow) State() AdminState { return a.state }

// Snapshot returns the loaded dashboard data, or nil.
func (a *AdminFlow) Snapshot() *models.DashboardSnapshot { return a.snapshot }
