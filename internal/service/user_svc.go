package service

import (
	"context"

	"github.com/graphuraprojects/farming-sub001/internal/domain"
	"github.com/graphuraprojects/farming-sub001/internal/repository"
)

type UserSvc struct{ repo *repository.UserRepo }

func NewUserSvc(r *repository.UserRepo) *UserSvc { return &UserSvc{repo: r} }

func (s *UserSvc) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.ByID(ctx, id)
}

func (s *UserSvc) Update(ctx context.Context, id, name, phone string) (*domain.User, error) {
	fields := map[string]any{}
	if name != "" {
		fields["name"] = name
	}
	if phone != "" {
		fields["phone"] = phone
	}
	if len(fields) == 0 {
		return s.repo.ByID(ctx, id)
	}
	return s.repo.UpdateFields(ctx, id, fields)
}

func (s *UserSvc) List(ctx context.Context, page, size int32, query string, role domain.Role) ([]domain.User, int64, error) {
	return s.repo.List(ctx, page, size, query, role)
}
