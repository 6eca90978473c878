// Package storetest provides in-memory store implementations for tests.
// BookingStore keeps the same atomicity contract as the SQL repo: the
// pending-only guard in Decide/CancelPending runs under one lock, so racing
// callers settle exactly like racing conditional updates.
package storetest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/graphuraprojects/farming-sub001/internal/domain"
	"github.com/graphuraprojects/farming-sub001/internal/repository"
)

type BookingStore struct {
	mu sync.Mutex
	m  map[string]domain.Booking
}

func NewBookingStore() *BookingStore {
	return &BookingStore{m: map[string]domain.Booking{}}
}

// Put seeds a booking, bypassing overlap checks.
func (s *BookingStore) Put(b domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[b.ID] = b
}

func (s *BookingStore) CreateWithNoOverlap(ctx context.Context, b *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ex := range s.m {
		if ex.MachineID != b.MachineID {
			continue
		}
		if ex.BookingStatus != domain.StatusPending && ex.BookingStatus != domain.StatusAccepted {
			continue
		}
		if ex.StartDate.Before(b.EndDate) && ex.EndDate.After(b.StartDate) {
			return domain.ErrDatesOverlap
		}
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.CreatedAt = time.Now().UTC()
	s.m[b.ID] = *b
	return nil
}

func (s *BookingStore) ByID(ctx context.Context, id string) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.m[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return &b, nil
}

func (s *BookingStore) Decide(ctx context.Context, id string, to domain.BookingStatus, reason string, at time.Time) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.m[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	if b.BookingStatus != domain.StatusPending {
		return nil, domain.ErrAlreadyProcessed
	}
	b.BookingStatus = to
	b.RejectionReason = reason
	b.DecisionAt = &at
	b.UpdatedAt = at
	s.m[id] = b
	return &b, nil
}

func (s *BookingStore) CancelPending(ctx context.Context, id string, at time.Time) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.m[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	if b.BookingStatus != domain.StatusPending {
		return nil, domain.ErrAlreadyProcessed
	}
	b.BookingStatus = domain.StatusCancelled
	b.DecisionAt = &at
	b.UpdatedAt = at
	s.m[id] = b
	return &b, nil
}

func (s *BookingStore) List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Booking
	for _, b := range s.m {
		if f.FarmerID != "" && b.FarmerID != f.FarmerID {
			continue
		}
		if f.OwnerID != "" && b.OwnerID != f.OwnerID {
			continue
		}
		if f.MachineID != "" && b.MachineID != f.MachineID {
			continue
		}
		if f.Status != "" && b.BookingStatus != f.Status {
			continue
		}
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

func (s *BookingStore) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Booking
	for _, b := range s.m {
		if !b.CreatedAt.Before(from) && b.CreatedAt.Before(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

// Machines is a fixed map of machines for BookingSvc tests.
type Machines struct {
	mu sync.Mutex
	m  map[string]domain.Machine
}

func NewMachines(ms ...domain.Machine) *Machines {
	out := &Machines{m: map[string]domain.Machine{}}
	for _, m := range ms {
		out.m[m.ID] = m
	}
	return out
}

func (s *Machines) ByID(ctx context.Context, id string) (*domain.Machine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.m[id]
	if !ok {
		return nil, domain.ErrMachineNotFound
	}
	return &m, nil
}

// Publisher records published events for assertions.
type Publisher struct {
	mu     sync.Mutex
	Keys   []string
	Bodies []any
}

func (p *Publisher) PublishJSON(ctx context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Keys = append(p.Keys, key)
	p.Bodies = append(p.Bodies, v)
	return nil
}
