package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"babyshower/internal/api"
	"babyshower/internal/models"
	"babyshower/internal/session"

	"github.com/stretchr/testify/require"
)

func newAppClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := api.NewClient(srv.URL)
	require.NoError(t, err)
	return client
}

// registerEcho answers /api/register with a guest built from the request,
// the way the backend assigns an id and echoes the fields back.
func registerEcho(calls *int) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/register", func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			*calls++
		}
		var req api.RegisterRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(models.GuestUser{
			ID:            "u-1",
			Name:          req.Name,
			Whatsapp:      req.Whatsapp,
			Companions:    req.Companions,
			StayConnected: req.StayConnected,
		})
	})
	return mux
}

func TestCompanionRemoveShiftsLaterEntries(t *testing.T) {
	form := &RegistrationForm{}
	require.True(t, form.AddCompanion("Ana"))
	require.True(t, form.AddCompanion("Leo"))
	require.True(t, form.AddCompanion("Bia"))

	form.RemoveCompanion(1)
	require.Equal(t, []string{"Ana", "Bia"}, form.Companions)

	form.RemoveCompanion(5)
	form.RemoveCompanion(-1)
	require.Equal(t, []string{"Ana", "Bia"}, form.Companions)
}

func TestCompanionAddThenRemoveRestoresList(t *testing.T) {
	form := &RegistrationForm{Companions: []string{"Ana", "Leo"}}
	original := append([]string(nil), form.Companions...)

	require.True(t, form.AddCompanion("  Bia "))
	require.Equal(t, "Bia", form.Companions[2])

	form.RemoveCompanion(2)
	require.Equal(t, original, form.Companions)

	require.False(t, form.AddCompanion("   "))
	require.Equal(t, original, form.Companions)
}

func TestRegisterStayConnectedPersistsReturnedUser(t *testing.T) {
	store := session.NewStore(t.TempDir())
	client := newAppClient(t, registerEcho(nil))
	flow := NewGuestFlow(client, store)

	user, err := flow.Register(&RegistrationForm{
		Name:          "Maria",
		Whatsapp:      "(69) 99999-0000",
		Companions:    []string{"Ana", "Leo"},
		StayConnected: true,
	})
	require.NoError(t, err)
	require.True(t, flow.Authenticated())
	require.Equal(t, []string{"Ana", "Leo"}, user.Companions)

	// Storage holds exactly the returned record.
	stored, ok := store.LoadGuest()
	require.True(t, ok)
	require.Equal(t, user, stored)

	// A later run resumes without re-entering credentials.
	again := NewGuestFlow(client, store)
	require.True(t, again.Resume())
	require.True(t, again.Authenticated())
	require.Equal(t, "Maria", again.User().Name)
}

func TestRegisterWithoutStayConnectedLeavesStorageUntouched(t *testing.T) {
	store := session.NewStore(t.TempDir())
	flow := NewGuestFlow(newAppClient(t, registerEcho(nil)), store)

	_, err := flow.Register(&RegistrationForm{Name: "Maria", Whatsapp: "123"})
	require.NoError(t, err)
	require.True(t, flow.Authenticated())

	_, ok := store.LoadGuest()
	require.False(t, ok)
}

func TestRegisterRejectionKeepsFlowUnauthenticated(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Nome já cadastrado"})
	})
	store := session.NewStore(t.TempDir())
	flow := NewGuestFlow(newAppClient(t, mux), store)

	_, err := flow.Register(&RegistrationForm{Name: "Maria", Whatsapp: "123", StayConnected: true})
	require.EqualError(t, err, "Nome já cadastrado")
	require.False(t, flow.Authenticated())

	_, ok := store.LoadGuest()
	require.False(t, ok)
}

func TestRegisterValidatesBeforeCallingBackend(t *testing.T) {
	calls := 0
	flow := NewGuestFlow(newAppClient(t, registerEcho(&calls)), session.NewStore(t.TempDir()))

	_, err := flow.Register(&RegistrationForm{Whatsapp: "123"})
	require.Error(t, err)
	_, err = flow.Register(&RegistrationForm{Name: "Maria"})
	require.Error(t, err)
	require.Zero(t, calls)
}

func TestLoginPersistsOnlyWhenReturnedRecordStaysConnected(t *testing.T) {
	stayConnected := true
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		var req api.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(models.GuestUser{
			ID:            "u-1",
			Name:          req.Name,
			Whatsapp:      req.Whatsapp,
			StayConnected: stayConnected,
		})
	})
	store := session.NewStore(t.TempDir())
	client := newAppClient(t, mux)

	flow := NewGuestFlow(client, store)
	_, err := flow.Login("Maria", "123")
	require.NoError(t, err)
	_, ok := store.LoadGuest()
	require.True(t, ok)

	flow.Logout()
	require.False(t, flow.Authenticated())
	require.Nil(t, flow.User())
	_, ok = store.LoadGuest()
	require.False(t, ok)

	stayConnected = false
	_, err = flow.Login("Maria", "123")
	require.NoError(t, err)
	_, ok = store.LoadGuest()
	require.False(t, ok)
}
