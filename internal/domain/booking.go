package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingStatusRequested BookingStatus = "requested"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// StatusChange is one entry of a booking's audit trail.
type StatusChange struct {
	Status    BookingStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Note      string        `json:"note,omitempty"`
}

// StatusHistory is the append-only audit log of a booking, stored as a JSONB
// column. Entries are only ever appended, never rewritten.
type StatusHistory []StatusChange

func (h StatusHistory) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	b, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (h *StatusHistory) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*h = StatusHistory{}
		return nil
	case []byte:
		return json.Unmarshal(v, h)
	case string:
		return json.Unmarshal([]byte(v), h)
	default:
		return fmt.Errorf("cannot scan %T into StatusHistory", src)
	}
}

type Booking struct {
	ID               int32         `json:"id"`
	GearID           int32         `json:"gear_id"`
	RenterID         int32         `json:"renter_id"`
	OwnerID          int32         `json:"owner_id"`
	StartDate        string        `json:"start_date"`
	EndDate          string        `json:"end_date"`
	TotalDays        int32         `json:"total_days"`
	DailyRateCents   int32         `json:"daily_rate_cents"`
	TotalAmountCents int32         `json:"total_amount_cents"`
	Status           BookingStatus `json:"status"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	StatusHistory    StatusHistory `json:"status_history"`
	PaidAt           *string       `json:"paid_at,omitempty"`
	CreatedOn        string        `json:"created_on"`
	UpdatedOn        string        `json:"updated_on"`
}

// IsParty reports whether userID is one of the two booking parties.
func (b *Booking) IsParty(userID int32) bool {
	return b.RenterID == userID || b.OwnerID == userID
}

// Terminal reports whether no further transitions are allowed from s.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingStatusRejected, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// BookingListing is a booking joined with the counterpart's profile and the
// gear summary, as returned by the renter/owner request listings.
type BookingListing struct {
	Booking Booking     `json:"booking"`
	Renter  *User       `json:"renter,omitempty"`
	Owner   *User       `json:"owner,omitempty"`
	Gear    GearSummary `json:"gear"`
}

// BookingSummary is the compact shape embedded in conversation listings.
type BookingSummary struct {
	ID        int32         `json:"id"`
	GearID    int32         `json:"gear_id"`
	Status    BookingStatus `json:"status"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
}
