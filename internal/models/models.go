package models

// GuestUser is a confirmed attendee as returned by the backend. It is never
// mutated client-side after creation, only replaced wholesale on re-login.
type GuestUser struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Whatsapp      string   `json:"whatsapp"`
	Companions    []string `json:"companions"`
	StayConnected bool     `json:"stay_connected"`
	CreatedAt     string   `json:"created_at,omitempty"`
}

// Gift is a registry item fetched per category. Availability is computed by
// the backend; the client never adjusts quantities locally.
type Gift struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	Category          string `json:"category"`
	ImageURL          string `json:"image_url"`
	BuyLink           string `json:"buy_link,omitempty"`
	Quantity          int    `json:"quantity"`
	PriceRange        string `json:"price_range,omitempty"`
	IsUnique          bool   `json:"is_unique"`
	AvailableQuantity int    `json:"available_quantity"`
	IsAvailable       bool   `json:"is_available"`
}

// Reservation is a claim on a gift. Write-only from the client's side.
type Reservation struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	GiftID     string `json:"gift_id"`
	Quantity   int    `json:"quantity"`
	ReservedAt string `json:"reserved_at"`
}

// UserReservation pairs a reservation with the gift it claims, as returned
// by the per-user reservations endpoint.
type UserReservation struct {
	Reservation Reservation `json:"reservation"`
	Gift        Gift        `json:"gift"`
}

// DashboardReservation is the admin-facing view of a reservation.
type DashboardReservation struct {
	UserName   string `json:"user_name"`
	GiftName   string `json:"gift_name"`
	Quantity   int    `json:"quantity"`
	ReservedAt string `json:"reserved_at"`
}

// AvailableGift is a dashboard line for a gift with units remaining.
type AvailableGift struct {
	Name              string `json:"name"`
	AvailableQuantity int    `json:"available_quantity"`
}

// DashboardSnapshot is the admin aggregate. It is replaced wholesale on
// every fetch, never merged incrementally.
type DashboardSnapshot struct {
	TotalConfirmed      int                    `json:"total_confirmed"`
	TotalCompanions     int                    `json:"total_companions"`
	TotalAttendees      int                    `json:"total_attendees"`
	TotalGiftsReserved  int                    `json:"total_gifts_reserved"`
	TotalGiftsAvailable int                    `json:"total_gifts_available"`
	Users               []GuestUser            `json:"users"`
	Reservations        []DashboardReservation `json:"reservations"`
	AvailableGifts      []AvailableGift        `json:"available_gifts"`
}

// AdminSession is the persisted admin record. Timestamp is epoch millis at
// snapshot fetch time; the record is usable for two hours from that instant.
type AdminSession struct {
	LoggedIn  bool               `json:"loggedIn"`
	Data      *DashboardSnapshot `json:"data"`
	Timestamp int64              `json:"timestamp"`
}
