package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/graphuraprojects/farming-sub001/internal/domain"
	"github.com/graphuraprojects/farming-sub001/internal/events"
	"github.com/graphuraprojects/farming-sub001/internal/metrics"
	"github.com/graphuraprojects/farming-sub001/internal/repository"
)

// BookingStore is what BookingSvc needs from persistence. Decide and
// CancelPending must apply their status guard atomically (conditional
// update), not read-then-write.
type BookingStore interface {
	CreateWithNoOverlap(ctx context.Context, b *domain.Booking) error
	ByID(ctx context.Context, id string) (*domain.Booking, error)
	Decide(ctx context.Context, id string, to domain.BookingStatus, reason string, at time.Time) (*domain.Booking, error)
	CancelPending(ctx context.Context, id string, at time.Time) (*domain.Booking, error)
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error)
}

type MachineGetter interface {
	ByID(ctx context.Context, id string) (*domain.Machine, error)
}

type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type BookingSvc struct {
	store    BookingStore
	machines MachineGetter
	pub      EventPublisher
}

func NewBookingSvc(store BookingStore, machines MachineGetter, pub EventPublisher) *BookingSvc {
	return &BookingSvc{store: store, machines: machines, pub: pub}
}

func (s *BookingSvc) publish(ctx context.Context, key string, v any) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishJSON(ctx, key, v); err != nil {
		log.Printf("[booking] publish %s: %v", key, err)
	}
}

// Create files a rental request for a machine. The price is whole rental
// days times the machine's daily rate; partial days round up.
func (s *BookingSvc) Create(ctx context.Context, farmerID, machineID string, start, end time.Time) (*domain.Booking, error) {
	if !end.After(start) {
		return nil, domain.ErrInvalidDateRange
	}
	m, err := s.machines.ByID(ctx, machineID)
	if err != nil {
		return nil, err
	}
	if !m.Available {
		return nil, domain.ErrMachineUnavailable
	}

	days := int64(end.Sub(start).Hours() / 24)
	if end.Sub(start)%(24*time.Hour) != 0 {
		days++
	}

	b := &domain.Booking{
		MachineID:     m.ID,
		FarmerID:      farmerID,
		OwnerID:       m.OwnerID,
		StartDate:     start.UTC(),
		EndDate:       end.UTC(),
		TotalPrice:    days * m.DailyRate,
		BookingStatus: domain.StatusPending,
	}
	if err := s.store.CreateWithNoOverlap(ctx, b); err != nil {
		return nil, err
	}
	metrics.BookingsCreated.Inc()

	s.publish(ctx, events.RKBookingRequested, events.BookingRequested{
		BookingID: b.ID, MachineID: b.MachineID, FarmerID: b.FarmerID, OwnerID: b.OwnerID,
		Start: b.StartDate.Unix(), End: b.EndDate.Unix(),
	})
	return b, nil
}

// Decide applies an owner/admin accept-or-reject to a pending booking.
// Checks run in a fixed order and each one short-circuits: action literal,
// booking exists, still pending, caller owns the machine (admins skip this),
// reject carries a reason. The pre-read pending check is a fast path only;
// the store's conditional update is what actually settles a race, so a call
// that loses the race comes back as ErrAlreadyProcessed too.
func (s *BookingSvc) Decide(ctx context.Context, id, action, reason string, actor domain.Actor) (*domain.Booking, error) {
	act, err := domain.ParseDecisionAction(action)
	if err != nil {
		return nil, err
	}
	b, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.BookingStatus != domain.StatusPending {
		metrics.DecisionConflicts.Inc()
		return nil, domain.ErrAlreadyProcessed
	}
	if actor.Role == domain.RoleOwner && b.OwnerID != actor.UserID {
		return nil, domain.ErrNotMachineOwner
	}

	to := domain.StatusAccepted
	if act == domain.ActionReject {
		if strings.TrimSpace(reason) == "" {
			return nil, domain.ErrReasonRequired
		}
		to = domain.StatusRejected
	} else {
		reason = ""
	}

	updated, err := s.store.Decide(ctx, id, to, reason, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyProcessed) {
			metrics.DecisionConflicts.Inc()
		}
		return nil, err
	}
	metrics.DecisionsTotal.WithLabelValues(string(to)).Inc()

	rk := events.RKBookingAccepted
	if to == domain.StatusRejected {
		rk = events.RKBookingRejected
	}
	s.publish(ctx, rk, events.BookingDecided{
		BookingID: updated.ID, MachineID: updated.MachineID, FarmerID: updated.FarmerID,
		Reason: updated.RejectionReason,
	})
	return updated, nil
}

// Cancel lets the requesting farmer (or an admin) withdraw a booking that is
// still pending.
func (s *BookingSvc) Cancel(ctx context.Context, id string, actor domain.Actor) (*domain.Booking, error) {
	b, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && b.FarmerID != actor.UserID {
		return nil, domain.ErrNotBookingFarmer
	}
	updated, err := s.store.CancelPending(ctx, id, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	metrics.BookingsCancelled.Inc()
	s.publish(ctx, events.RKBookingCancelled, events.BookingSimple{BookingID: updated.ID})
	return updated, nil
}

// Get enforces visibility: the requesting farmer, the machine's owner and
// admins may see a booking. Anyone else gets not-found rather than a hint
// that the id exists.
func (s *BookingSvc) Get(ctx context.Context, id string, actor domain.Actor) (*domain.Booking, error) {
	b, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case actor.Role == domain.RoleAdmin:
	case b.FarmerID == actor.UserID:
	case b.OwnerID == actor.UserID:
	default:
		return nil, domain.ErrBookingNotFound
	}
	return b, nil
}

// ListForActor scopes the listing to what the caller may see: farmers their
// own requests, owners their machines' requests, admins everything.
func (s *BookingSvc) ListForActor(ctx context.Context, actor domain.Actor, f repository.BookingFilter) ([]domain.Booking, int64, error) {
	switch actor.Role {
	case domain.RoleFarmer:
		f.FarmerID = actor.UserID
		f.OwnerID = ""
	case domain.RoleOwner:
		f.OwnerID = actor.UserID
		f.FarmerID = ""
	}
	return s.store.List(ctx, f)
}

// ListBetween backs the admin export.
func (s *BookingSvc) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	return s.store.ListBetween(ctx, from, to)
}
