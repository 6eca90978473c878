package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/graphuraprojects/farming-sub001/internal/domain"
)

func newMockRepo(t *testing.T) (*BookingRepo, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	return NewBookingRepo(gdb), mock
}

func bookingColumns() []string {
	return []string{
		"id", "machine_id", "farmer_id", "owner_id", "start_date", "end_date",
		"total_price", "booking_status", "rejection_reason", "decision_at",
		"created_at", "updated_at",
	}
}

func bookingRow(status domain.BookingStatus, reason string, decidedAt any) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(bookingColumns()).AddRow(
		"b1", "m1", "f1", "o1", now, now.AddDate(0, 0, 2),
		300000, string(status), reason, decidedAt, now, now,
	)
}

// The decision must be one conditional UPDATE guarded on
// booking_status = 'pending' — not a read-modify-write.
func TestDecideIssuesConditionalUpdate(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET .+ WHERE id = \$\d+ AND booking_status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE id = \$\d+`).
		WillReturnRows(bookingRow(domain.StatusAccepted, "", at))

	b, err := repo.Decide(context.Background(), "b1", domain.StatusAccepted, "", at)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, b.BookingStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Zero rows affected plus an existing row means somebody already decided.
func TestDecideConflictWhenGuardMisses(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET .+ WHERE id = \$\d+ AND booking_status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE id = \$\d+`).
		WillReturnRows(bookingRow(domain.StatusRejected, "double booked", time.Now().UTC()))

	_, err := repo.Decide(context.Background(), "b1", domain.StatusAccepted, "", time.Now().UTC())
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Zero rows affected and no row at all is a missing booking.
func TestDecideNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET .+ WHERE id = \$\d+ AND booking_status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE id = \$\d+`).
		WillReturnRows(sqlmock.NewRows(bookingColumns()))

	_, err := repo.Decide(context.Background(), "missing-id", domain.StatusAccepted, "", time.Now().UTC())
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelPendingUsesSameGuard(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET .+ WHERE id = \$\d+ AND booking_status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE id = \$\d+`).
		WillReturnRows(bookingRow(domain.StatusAccepted, "", time.Now().UTC()))

	_, err := repo.CancelPending(context.Background(), "b1", time.Now().UTC())
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE id = \$\d+`).
		WillReturnRows(sqlmock.NewRows(bookingColumns()))

	_, err := repo.ByID(context.Background(), "missing-id")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}
