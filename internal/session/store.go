package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"babyshower/internal/models"

	"github.com/rs/zerolog"
)

const (
	guestFile = "guest_session.json"
	adminFile = "admin_session.json"
)

// AdminSessionTTL is how long a persisted admin session stays usable after
// its snapshot was fetched.
const AdminSessionTTL = 2 * time.Hour

// Store persists the two independent session records as single-key JSON
// files under a data directory. The records are independent: clearing one
// never touches the other.
type Store struct {
	dir string
	log zerolog.Logger
	now func() time.Time
}

// NewStore creates a store rooted at dir. The directory is created lazily
// on first write.
func NewStore(dir string) *Store {
	return &Store{
		dir: dir,
		log: zerolog.New(os.Stdout).With().Timestamp().Str("component", "session").Logger(),
		now: time.Now,
	}
}

func (s *Store) guestPath() string { return filepath.Join(s.dir, guestFile) }
func (s *Store) adminPath() string { return filepath.Join(s.dir, adminFile) }

// LoadGuest returns the persisted guest session, or ok=false when the record
// is missing. A record that cannot be parsed is treated as no session, not
// as an error.
func (s *Store) LoadGuest() (*models.GuestUser, bool) {
	var user models.GuestUser
	if !s.read(s.guestPath(), &user) {
		return nil, false
	}
	return &user, true
}

// SaveGuest unconditionally overwrites the guest record. Callers are
// responsible for only invoking this when the user asked to stay connected.
func (s *Store) SaveGuest(user *models.GuestUser) error {
	return s.write(s.guestPath(), user)
}

// ClearGuest removes the guest record.
func (s *Store) ClearGuest() {
	s.remove(s.guestPath())
}

// LoadAdmin returns the persisted admin session if it is well formed, marked
// logged in, carries a snapshot, and is younger than AdminSessionTTL. An
// expired record is cleared before reporting absence, the same side effect
// as a logout. Expiry is only ever evaluated here, on load; there is no
// background sweep.
func (s *Store) LoadAdmin() (*models.AdminSession, bool) {
	var sess models.AdminSession
	if !s.read(s.adminPath(), &sess) {
		return nil, false
	}
	if !sess.LoggedIn || sess.Data == nil {
		return nil, false
	}
	age := s.now().UnixMilli() - sess.Timestamp
	if age >= AdminSessionTTL.Milliseconds() {
		s.log.Info().Msg("Admin session expired, clearing")
		s.remove(s.adminPath())
		return nil, false
	}
	return &sess, true
}

// SaveAdmin overwrites the admin record. No expiry check happens on write.
func (s *Store) SaveAdmin(sess *models.AdminSession) error {
	return s.write(s.adminPath(), sess)
}

// ClearAdmin removes the admin record.
func (s *Store) ClearAdmin() {
	s.remove(s.adminPath())
}

func (s *Store) read(path string, v interface{}) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.Debug().Err(err).Str("file", filepath.Base(path)).Msg("Discarding unparsable session record")
		return false
	}
	return true
}

func (s *Store) write(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

func (s *Store) remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.Error().Err(err).Str("file", filepath.Base(path)).Msg("Failed to remove session record")
	}
}
