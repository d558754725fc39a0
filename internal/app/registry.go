package app

import (
	"os"

	"babyshower/internal/api"
	"babyshower/internal/models"

	"github.com/rs/zerolog"
)

// RegistryService is the slice of the backend client the registry browser
// uses.
type RegistryService interface {
	Gifts(category string) ([]models.Gift, error)
	UserReservations(userID string) ([]models.UserReservation, error)
	ReserveGift(req api.ReserveRequest) error
}

// Browser drives the gift registry for one authenticated guest: home →
// category gifts, with gifts → home as the only back transition. Gift lists
// are never mutated locally; every change is re-fetched so the backend stays
// the sole authority on remaining quantities.
type Browser struct {
	svc  RegistryService
	nav  *Nav
	user *models.GuestUser
	log  zerolog.Logger

	category     models.GiftCategory
	gifts        []models.Gift
	reservations []models.UserReservation
	fetchSeq     uint64
}

// NewBrowser creates a browser for the given guest. View state is owned by
// nav; the browser only moves it along the legal transitions.
func NewBrowser(svc RegistryService, nav *Nav, user *models.GuestUser) *Browser {
	return &Browser{
		svc:  svc,
		nav:  nav,
		user: user,
		log:  zerolog.New(os.Stdout).With().Timestamp().Str("component", "registry").Logger(),
	}
}

// LoadReservations refreshes the guest's own reservation list shown on home.
// On failure the previous list keeps rendering.
func (b *Browser) LoadReservations() error {
	list, err := b.svc.UserReservations(b.user.ID)
	if err != nil {
		b.log.Debug().Err(err).Msg("Failed to fetch user reservations")
		return err
	}
	b.reservations = list
	return nil
}

// SelectCategory enters the gifts view and fetches that category's list,
// discarding whatever was listed before. There is no cross-category cache;
// re-selecting always re-fetches.
func (b *Browser) SelectCategory(cat models.GiftCategory) error {
	if !b.nav.Goto(ViewGifts) {
		return nil
	}
	b.category = cat
	b.gifts = nil
	return b.fetchGifts()
}

// Back returns from the gifts view to home. Any in-flight gift fetch is
// invalidated so a late response cannot repopulate an abandoned view.
func (b *Browser) Back() {
	if b.nav.Goto(ViewHome) {
		b.gifts = nil
		b.fetchSeq++
	}
}

// Reserve claims quantity units of a gift, then re-fetches the current
// category list and the guest's reservations in full. There is no optimistic
// local update; a rejection (say, the last unit taken by a concurrent guest
// between list-fetch and click) leaves the displayed list untouched and its
// backend message is returned for the view to surface.
func (b *Browser) Reserve(gift models.Gift, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	err := b.svc.ReserveGift(api.ReserveRequest{
		UserID:   b.user.ID,
		GiftID:   gift.ID,
		Quantity: quantity,
	})
	if err != nil {
		return err
	}

	if err := b.fetchGifts(); err != nil {
		b.log.Debug().Err(err).Msg("Gift re-fetch after reservation failed")
	}
	if err := b.LoadReservations(); err != nil {
		b.log.Debug().Err(err).Msg("Reservation re-fetch after reservation failed")
	}
	return nil
}

func (b *Browser) fetchGifts() error {
	b.fetchSeq++
	seq := b.fetchSeq
	gifts, err := b.svc.Gifts(b.category.ID)
	if err != nil {
		b.log.Debug().Err(err).Str("category", b.category.ID).Msg("Failed to fetch gifts")
		return err
	}
	b.apply(seq, gifts)
	return nil
}

// apply installs a fetched list only if no newer fetch or navigation
// superseded it in the meantime.
func (b *Browser) apply(seq uint64, gifts []models.Gift) {
	if seq != b.fetchSeq || b.nav.View() != ViewGifts {
		b.log.Debug().Uint64("seq", seq).Msg("Dropping stale gift list")
		return
	}
	b.gifts = gifts
}

// Category reports the active category. Only meaningful on the gifts view.
func (b *Browser) Category() models.GiftCategory { return b.category }

// Gifts returns the list as last fetched.
func (b *Browser) Gifts() []models.Gift { return b.gifts }

// Reservations returns the guest's reservations as last fetched.
func (b *Browser) Reservations() []models.UserReservation { return b.reservations }
