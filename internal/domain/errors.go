package domain

import "errors"

// Sentinel errors shared across repository, service and transport. The HTTP
// layer maps each one to a status code; anything unwrapped is an internal
// failure.
var (
	ErrInvalidAction    = errors.New("action must be accept or reject")
	ErrReasonRequired   = errors.New("rejection reason required")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrAlreadyProcessed = errors.New("booking already processed")
	ErrNotMachineOwner  = errors.New("not the machine owner")
	ErrNotBookingFarmer = errors.New("not the booking farmer")

	ErrMachineNotFound    = errors.New("machine not found")
	ErrMachineUnavailable = errors.New("machine unavailable")
	ErrDatesOverlap       = errors.New("dates overlap an existing booking")
	ErrInvalidDateRange   = errors.New("end date must be after start date")

	ErrInvalidRole        = errors.New("invalid role")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)
