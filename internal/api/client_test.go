package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"babyshower/internal/models"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL)
	require.NoError(t, err)
	return client
}

func TestBackendDetailSurfacedAsError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/register", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Nome já cadastrado"})
	})
	client := newTestClient(t, mux)

	_, err := client.Register(RegisterRequest{Name: "Maria", Whatsapp: "123", Companions: []string{}})
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "Nome já cadastrado", apiErr.Error())
}

func TestErrorWithoutDetailFallsBackToStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	client := newTestClient(t, mux)

	_, err := client.Login(LoginRequest{Name: "Maria", Whatsapp: "123"})
	require.EqualError(t, err, "backend returned status 500")
}

func TestGiftsRequestsCategoryPath(t *testing.T) {
	var gotPath string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/gifts/", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode([]models.Gift{{ID: "g-1", Name: "Diapers size P", AvailableQuantity: 3, IsAvailable: true}})
	})
	client := newTestClient(t, mux)

	gifts, err := client.Gifts("diapers")
	require.NoError(t, err)
	require.Equal(t, "/api/gifts/diapers", gotPath)
	require.Len(t, gifts, 1)
	require.True(t, gifts[0].IsAvailable)
}

func TestAdminCookieCarriedToDashboard(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "admin_session", Value: "ok", Path: "/"})
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	})
	mux.HandleFunc("/api/admin/dashboard", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("admin_session"); err != nil || c.Value != "ok" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Credenciais inválidas"})
			return
		}
		json.NewEncoder(w).Encode(models.DashboardSnapshot{TotalConfirmed: 12})
	})
	client := newTestClient(t, mux)

	// Without the login cookie the dashboard refuses.
	_, err := client.AdminDashboard()
	require.Error(t, err)

	require.NoError(t, client.AdminLogin(AdminLoginRequest{Username: "admin", Password: "secret"}))

	snap, err := client.AdminDashboard()
	require.NoError(t, err)
	require.Equal(t, 12, snap.TotalConfirmed)
}

func TestReserveGiftPostsClaim(t *testing.T) {
	var got ReserveRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/api/reserve-gift", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	})
	client := newTestClient(t, mux)

	require.NoError(t, client.ReserveGift(ReserveRequest{UserID: "u-1", GiftID: "g-1", Quantity: 2}))
	require.Equal(t, ReserveRequest{UserID: "u-1", GiftID: "g-1", Quantity: 2}, got)
}
