package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/graphuraprojects/farming-sub001/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.User{})
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = strings.ToLower(u.Email)
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", strings.ToLower(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) (*domain.User, error) {
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.ByID(ctx, id)
}

func (r *UserRepo) List(ctx context.Context, page, size int32, query string, role domain.Role) ([]domain.User, int64, error) {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	qb := r.db.WithContext(ctx).Model(&domain.User{})
	if role != "" {
		qb = qb.Where("role = ?", role)
	}
	if q := strings.TrimSpace(query); q != "" {
		qb = qb.Where("(email ILIKE ? OR name ILIKE ?)", "%"+q+"%", "%"+q+"%")
	}
	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []domain.User
	if err := qb.Order("created_at DESC").Limit(int(size)).Offset(int(page * size)).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
