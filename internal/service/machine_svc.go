package service

import (
	"context"

	"github.com/graphuraprojects/farming-sub001/internal/domain"
)

type MachineStore interface {
	Create(ctx context.Context, m *domain.Machine) error
	ByID(ctx context.Context, id string) (*domain.Machine, error)
	List(ctx context.Context, page, size int32, category, location string) ([]domain.Machine, int64, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.Machine, error)
	Delete(ctx context.Context, id string) error
}

type MachineSvc struct{ store MachineStore }

func NewMachineSvc(store MachineStore) *MachineSvc { return &MachineSvc{store: store} }

func (s *MachineSvc) Create(ctx context.Context, ownerID, name, category, description, location string, dailyRate int64) (*domain.Machine, error) {
	m := &domain.Machine{
		OwnerID:     ownerID,
		Name:        name,
		Category:    category,
		Description: description,
		DailyRate:   dailyRate,
		Location:    location,
		Available:   true,
	}
	return m, s.store.Create(ctx, m)
}

func (s *MachineSvc) Get(ctx context.Context, id string) (*domain.Machine, error) {
	return s.store.ByID(ctx, id)
}

func (s *MachineSvc) List(ctx context.Context, page, size int32, category, location string) ([]domain.Machine, int64, error) {
	return s.store.List(ctx, page, size, category, location)
}

// Update lets the owning user (or an admin) change listing fields. Zero
// values are skipped, except Available which travels as a pointer so it can
// be switched off.
func (s *MachineSvc) Update(ctx context.Context, id string, actor domain.Actor, name, category, description, location string, dailyRate int64, available *bool) (*domain.Machine, error) {
	m, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && m.OwnerID != actor.UserID {
		return nil, domain.ErrNotMachineOwner
	}
	fields := map[string]any{}
	if name != "" {
		fields["name"] = name
	}
	if category != "" {
		fields["category"] = category
	}
	if description != "" {
		fields["description"] = description
	}
	if location != "" {
		fields["location"] = location
	}
	if dailyRate > 0 {
		fields["daily_rate"] = dailyRate
	}
	if available != nil {
		fields["available"] = *available
	}
	if len(fields) == 0 {
		return m, nil
	}
	return s.store.UpdateFields(ctx, id, fields)
}

func (s *MachineSvc) Delete(ctx context.Context, id string, actor domain.Actor) error {
	m, err := s.store.ByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != domain.RoleAdmin && m.OwnerID != actor.UserID {
		return domain.ErrNotMachineOwner
	}
	return s.store.Delete(ctx, id)
}
