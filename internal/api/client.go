package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"

	"babyshower/internal/models"

	"github.com/rs/zerolog"
)

// APIError is a rejection returned by the backend. Detail carries the
// backend's own message so views can surface it verbatim.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// Client talks to the event backend under its /api prefix. Requests carry no
// timeout: a hung backend call hangs the initiating interaction. The client
// keeps a cookie jar because admin login sets a server-side session cookie
// that the subsequent dashboard fetch relies on.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a client for the backend at backendURL.
func NewClient(backendURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(backendURL, "/") + "/api",
		http:    &http.Client{Jar: jar},
		log:     zerolog.New(os.Stdout).With().Timestamp().Str("component", "api").Logger(),
	}, nil
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Name          string   `json:"name"`
	Whatsapp      string   `json:"whatsapp"`
	Companions    []string `json:"companions"`
	StayConnected bool     `json:"stay_connected"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Name     string `json:"name"`
	Whatsapp string `json:"whatsapp"`
}

// ReserveRequest is the body of POST /reserve-gift.
type ReserveRequest struct {
	UserID   string `json:"user_id"`
	GiftID   string `json:"gift_id"`
	Quantity int    `json:"quantity"`
}

// AdminLoginRequest is the body of POST /admin/login.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new guest record.
func (c *Client) Register(req RegisterRequest) (*models.GuestUser, error) {
	var user models.GuestUser
	if err := c.post("/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login matches an existing guest record by name and whatsapp.
func (c *Client) Login(req LoginRequest) (*models.GuestUser, error) {
	var user models.GuestUser
	if err := c.post("/login", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserReservations lists the gifts a guest has already claimed.
func (c *Client) UserReservations(userID string) ([]models.UserReservation, error) {
	var out []models.UserReservation
	if err := c.get("/user/"+url.PathEscape(userID)+"/reservations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Gifts lists the gifts of one category with availability counts.
func (c *Client) Gifts(category string) ([]models.Gift, error) {
	var out []models.Gift
	if err := c.get("/gifts/"+url.PathEscape(category), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReserveGift claims a quantity of a gift for a guest.
func (c *Client) ReserveGift(req ReserveRequest) error {
	return c.post("/reserve-gift", req, nil)
}

// AdminLogin authenticates the administrator. On success the backend sets a
// session cookie that the cookie jar carries forward.
func (c *Client) AdminLogin(req AdminLoginRequest) error {
	return c.post("/admin/login", req, nil)
}

// AdminDashboard fetches the attendance and reservation aggregate.
func (c *Client) AdminDashboard() (*models.DashboardSnapshot, error) {
	var out models.DashboardSnapshot
	if err := c.get("/admin/dashboard", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(path string, out interface{}) error {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	return c.decode(resp, out)
}

func (c *Client) post(path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	resp, err := c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	return c.decode(resp, out)
}

func (c *Client) decode(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(data, &envelope); err == nil {
			apiErr.Detail = envelope.Detail
		}
		c.log.Debug().Int("status", resp.StatusCode).Str("detail", apiErr.Detail).Msg("Backend rejected request")
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
