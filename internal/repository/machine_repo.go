package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/graphuraprojects/farming-sub001/internal/domain"
)

type MachineRepo struct{ db *gorm.DB }

func NewMachineRepo(db *gorm.DB) *MachineRepo {
	return &MachineRepo{db: db}
}

func (r *MachineRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Machine{})
}

func (r *MachineRepo) Create(ctx context.Context, m *domain.Machine) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MachineRepo) ByID(ctx context.Context, id string) (*domain.Machine, error) {
	var m domain.Machine
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMachineNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MachineRepo) List(ctx context.Context, page, size int32, category, location string) ([]domain.Machine, int64, error) {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	qb := r.db.WithContext(ctx).Model(&domain.Machine{})
	if category != "" {
		qb = qb.Where("category = ?", category)
	}
	if location != "" {
		qb = qb.Where("location ILIKE ?", "%"+location+"%")
	}
	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Machine
	if err := qb.Order("created_at DESC").Limit(int(size)).Offset(int(page * size)).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *MachineRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.Machine, error) {
	if err := r.db.WithContext(ctx).Model(&domain.Machine{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.ByID(ctx, id)
}

func (r *MachineRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Machine{}, "id = ?", id).Error
}
