package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/graphuraprojects/farming-sub001/internal/domain"
)

type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Booking{})
}

// CreateWithNoOverlap inserts a pending booking unless the machine already
// has a pending/accepted booking touching the same date range. Candidate
// rows are locked inside the txn so two racing requests cannot both pass the
// overlap check.
func (r *BookingRepo) CreateWithNoOverlap(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Booking
		err := tx.Model(&domain.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("machine_id = ? AND booking_status IN ?", b.MachineID,
				[]domain.BookingStatus{domain.StatusPending, domain.StatusAccepted}).
			Where("start_date < ? AND end_date > ?", b.EndDate, b.StartDate).
			Take(&existing).Error

		if err == nil {
			return domain.ErrDatesOverlap
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		return tx.Create(b).Error
	})
}

func (r *BookingRepo) ByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Decide applies the accept/reject transition with a single conditional
// UPDATE guarded on booking_status = 'pending'. Of two racing decisions
// exactly one gets RowsAffected == 1; the loser re-reads once to tell a
// missing row from an already-processed one. rejection_reason is written on
// every decision (empty on accept) so it only ever survives on rejected rows.
func (r *BookingRepo) Decide(ctx context.Context, id string, to domain.BookingStatus, reason string, at time.Time) (*domain.Booking, error) {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND booking_status = ?", id, domain.StatusPending).
		Updates(map[string]any{
			"booking_status":   to,
			"rejection_reason": reason,
			"decision_at":      at,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.ByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, domain.ErrAlreadyProcessed
	}
	return r.ByID(ctx, id)
}

// CancelPending uses the same guard as Decide: only a still-pending booking
// can be cancelled by its farmer.
func (r *BookingRepo) CancelPending(ctx context.Context, id string, at time.Time) (*domain.Booking, error) {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND booking_status = ?", id, domain.StatusPending).
		Updates(map[string]any{
			"booking_status": domain.StatusCancelled,
			"decision_at":    at,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.ByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, domain.ErrAlreadyProcessed
	}
	return r.ByID(ctx, id)
}

// BookingFilter narrows List; zero values mean "any".
type BookingFilter struct {
	FarmerID  string
	OwnerID   string
	MachineID string
	Status    domain.BookingStatus
	Page      int32
	Size      int32
}

func (r *BookingRepo) List(ctx context.Context, f BookingFilter) ([]domain.Booking, int64, error) {
	if f.Size <= 0 {
		f.Size = 20
	}
	if f.Page < 0 {
		f.Page = 0
	}
	qb := r.db.WithContext(ctx).Model(&domain.Booking{})
	if f.FarmerID != "" {
		qb = qb.Where("farmer_id = ?", f.FarmerID)
	}
	if f.OwnerID != "" {
		qb = qb.Where("owner_id = ?", f.OwnerID)
	}
	if f.MachineID != "" {
		qb = qb.Where("machine_id = ?", f.MachineID)
	}
	if f.Status != "" {
		qb = qb.Where("booking_status = ?", f.Status)
	}
	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Booking
	if err := qb.Order("created_at DESC").Limit(int(f.Size)).Offset(int(f.Page * f.Size)).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListBetween returns bookings created inside [from, to) for the admin
// export.
func (r *BookingRepo) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}
