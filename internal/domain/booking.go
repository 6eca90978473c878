package domain

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusAccepted  BookingStatus = "accepted"
	StatusRejected  BookingStatus = "rejected"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

type DecisionAction string

const (
	ActionAccept DecisionAction = "accept"
	ActionReject DecisionAction = "reject"
)

// ParseDecisionAction accepts exactly "accept" or "reject".
func ParseDecisionAction(s string) (DecisionAction, error) {
	switch DecisionAction(s) {
	case ActionAccept, ActionReject:
		return DecisionAction(s), nil
	}
	return "", ErrInvalidAction
}

// Booking is a farmer's rental request against one machine. OwnerID is
// denormalized from the machine at creation so the decision path never has
// to join through Machine.
type Booking struct {
	ID              string        `gorm:"primaryKey" json:"id"`
	MachineID       string        `gorm:"index" json:"machine_id"`
	FarmerID        string        `gorm:"index" json:"farmer_id"`
	OwnerID         string        `gorm:"index" json:"owner_id"`
	StartDate       time.Time     `gorm:"index" json:"start_date"`
	EndDate         time.Time     `gorm:"index" json:"end_date"`
	TotalPrice      int64         `json:"total_price"` // smallest currency unit
	BookingStatus   BookingStatus `gorm:"index" json:"booking_status"`
	RejectionReason string        `json:"rejection_reason,omitempty"`
	DecisionAt      *time.Time    `json:"decision_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// Decided reports whether the booking has left pending via accept/reject.
func (b *Booking) Decided() bool {
	return b.BookingStatus == StatusAccepted || b.BookingStatus == StatusRejected
}
