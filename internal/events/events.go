package events

import (
	"encoding/json"
	"fmt"
)

// Routing keys published on the booking exchange.
const (
	RKBookingRequested = "booking.requested"
	RKBookingAccepted  = "booking.accepted"
	RKBookingRejected  = "booking.rejected"
	RKBookingCancelled = "booking.cancelled"
)

// BookingRequested carries enough for a notification message without a DB
// round trip.
type BookingRequested struct {
	BookingID string `json:"booking_id"`
	MachineID string `json:"machine_id"`
	FarmerID  string `json:"farmer_id"`
	OwnerID   string `json:"owner_id"`
	Start     int64  `json:"start"` // unix seconds
	End       int64  `json:"end"`
}

type BookingDecided struct {
	BookingID string `json:"booking_id"`
	MachineID string `json:"machine_id"`
	FarmerID  string `json:"farmer_id"`
	Reason    string `json:"reason,omitempty"`
}

type BookingSimple struct {
	BookingID string `json:"booking_id"`
}

func Unmarshal[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
