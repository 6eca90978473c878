package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphuraprojects/farming-sub001/internal/domain"
	"github.com/graphuraprojects/farming-sub001/internal/events"
	"github.com/graphuraprojects/farming-sub001/internal/repository"
	"github.com/graphuraprojects/farming-sub001/internal/service"
	"github.com/graphuraprojects/farming-sub001/internal/storetest"
)

const (
	ownerID   = "owner-1"
	farmerID  = "farmer-1"
	machineID = "machine-1"
)

func pendingBooking(id string) domain.Booking {
	return domain.Booking{
		ID:            id,
		MachineID:     machineID,
		FarmerID:      farmerID,
		OwnerID:       ownerID,
		StartDate:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC),
		BookingStatus: domain.StatusPending,
	}
}

func newSvc(t *testing.T, seed ...domain.Booking) (*service.BookingSvc, *storetest.BookingStore, *storetest.Publisher) {
	t.Helper()
	store := storetest.NewBookingStore()
	for _, b := range seed {
		store.Put(b)
	}
	machines := storetest.NewMachines(domain.Machine{
		ID: machineID, OwnerID: ownerID, Name: "John Deere 5050D",
		Category: "tractor", DailyRate: 150000, Location: "Nashik", Available: true,
	})
	pub := &storetest.Publisher{}
	return service.NewBookingSvc(store, machines, pub), store, pub
}

func TestDecideAcceptByOwner(t *testing.T) {
	svc, store, pub := newSvc(t, pendingBooking("b1"))
	actor := domain.Actor{UserID: ownerID, Role: domain.RoleOwner}

	b, err := svc.Decide(context.Background(), "b1", "accept", "", actor)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, b.BookingStatus)
	require.NotNil(t, b.DecisionAt)
	assert.Empty(t, b.RejectionReason)

	stored, err := store.ByID(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, stored.BookingStatus)
	assert.Equal(t, []string{events.RKBookingAccepted}, pub.Keys)
}

func TestDecideRejectStoresReason(t *testing.T) {
	svc, _, pub := newSvc(t, pendingBooking("b1"))
	actor := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}

	b, err := svc.Decide(context.Background(), "b1", "reject", "machine unavailable", actor)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, b.BookingStatus)
	assert.Equal(t, "machine unavailable", b.RejectionReason)
	require.NotNil(t, b.DecisionAt)
	assert.Equal(t, []string{events.RKBookingRejected}, pub.Keys)
}

func TestDecideRejectEmptyReason(t *testing.T) {
	svc, store, _ := newSvc(t, pendingBooking("b1"))
	actor := domain.Actor{UserID: ownerID, Role: domain.RoleOwner}

	_, err := svc.Decide(context.Background(), "b1", "reject", "  ", actor)
	assert.ErrorIs(t, err, domain.ErrReasonRequired)

	stored, _ := store.ByID(context.Background(), "b1")
	assert.Equal(t, domain.StatusPending, stored.BookingStatus)
}

func TestDecideInvalidAction(t *testing.T) {
	svc, store, _ := newSvc(t, pendingBooking("b1"))
	actor := domain.Actor{UserID: ownerID, Role: domain.RoleOwner}

	for _, action := range []string{"", "approve", "ACCEPT", "rejected"} {
		_, err := svc.Decide(context.Background(), "b1", action, "", actor)
		assert.ErrorIs(t, err, domain.ErrInvalidAction, "action %q", action)
	}
	stored, _ := store.ByID(context.Background(), "b1")
	assert.Equal(t, domain.StatusPending, stored.BookingStatus)
}

func TestDecideMissingBooking(t *testing.T) {
	svc, _, _ := newSvc(t)
	actor := domain.Actor{UserID: ownerID, Role: domain.RoleOwner}

	_, err := svc.Decide(context.Background(), "missing-id", "accept", "", actor)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestDecideTerminalStates(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusAccepted, domain.StatusRejected} {
		b := pendingBooking("b1")
		b.BookingStatus = status
		svc, store, _ := newSvc(t, b)

		for _, actor := range []domain.Actor{
			{UserID: ownerID, Role: domain.RoleOwner},
			{UserID: "admin-1", Role: domain.RoleAdmin},
		} {
			_, err := svc.Decide(context.Background(), "b1", "accept", "", actor)
			assert.ErrorIs(t, err, domain.ErrAlreadyProcessed, "status %s actor %s", status, actor.Role)
		}
		stored, _ := store.ByID(context.Background(), "b1")
		assert.Equal(t, status, stored.BookingStatus)
	}
}

func TestDecideOwnerMismatch(t *testing.T) {
	svc, store, _ := newSvc(t, pendingBooking("b1"))

	_, err := svc.Decide(context.Background(), "b1", "accept", "", domain.Actor{UserID: "owner-2", Role: domain.RoleOwner})
	assert.ErrorIs(t, err, domain.ErrNotMachineOwner)

	stored, _ := store.ByID(context.Background(), "b1")
	assert.Equal(t, domain.StatusPending, stored.BookingStatus)

	// admins bypass the ownership check
	_, err = svc.Decide(context.Background(), "b1", "accept", "", domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin})
	assert.NoError(t, err)
}

// Two concurrent decisions on the same pending booking: exactly one may win,
// the loser must see the already-processed conflict.
func TestDecideConcurrentConflict(t *testing.T) {
	for range 50 {
		svc, store, _ := newSvc(t, pendingBooking("b1"))
		owner := domain.Actor{UserID: ownerID, Role: domain.RoleOwner}
		admin := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}

		var wg sync.WaitGroup
		errs := make([]error, 2)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, errs[0] = svc.Decide(context.Background(), "b1", "accept", "", owner)
		}()
		go func() {
			defer wg.Done()
			_, errs[1] = svc.Decide(context.Background(), "b1", "reject", "double booked", admin)
		}()
		wg.Wait()

		var wins, conflicts int
		for _, err := range errs {
			switch {
			case err == nil:
				wins++
			case assert.ErrorIs(t, err, domain.ErrAlreadyProcessed):
				conflicts++
			}
		}
		assert.Equal(t, 1, wins)
		assert.Equal(t, 1, conflicts)

		stored, _ := store.ByID(context.Background(), "b1")
		assert.True(t, stored.Decided())
		require.NotNil(t, stored.DecisionAt)
	}
}

func TestCreateDenormalizesOwnerAndPrice(t *testing.T) {
	svc, _, pub := newSvc(t)
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	b, err := svc.Create(context.Background(), farmerID, machineID, start, end)
	require.NoError(t, err)
	assert.Equal(t, ownerID, b.OwnerID)
	assert.Equal(t, domain.StatusPending, b.BookingStatus)
	assert.Equal(t, int64(3*150000), b.TotalPrice)
	assert.Equal(t, []string{events.RKBookingRequested}, pub.Keys)
}

func TestCreateRefusesOverlap(t *testing.T) {
	existing := pendingBooking("b1")
	svc, _, _ := newSvc(t, existing)

	_, err := svc.Create(context.Background(), "farmer-2", machineID,
		existing.StartDate.AddDate(0, 0, 1), existing.EndDate.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, domain.ErrDatesOverlap)
}

func TestCreateBadInput(t *testing.T) {
	svc, _, _ := newSvc(t)
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), farmerID, machineID, start, start)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	_, err = svc.Create(context.Background(), farmerID, "missing-machine", start, start.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)
}

func TestCancelOnlyFarmerOrAdmin(t *testing.T) {
	svc, store, _ := newSvc(t, pendingBooking("b1"))

	_, err := svc.Cancel(context.Background(), "b1", domain.Actor{UserID: "farmer-2", Role: domain.RoleFarmer})
	assert.ErrorIs(t, err, domain.ErrNotBookingFarmer)

	b, err := svc.Cancel(context.Background(), "b1", domain.Actor{UserID: farmerID, Role: domain.RoleFarmer})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, b.BookingStatus)

	// cancel after decision is a conflict
	stored, _ := store.ByID(context.Background(), "b1")
	assert.Equal(t, domain.StatusCancelled, stored.BookingStatus)
	_, err = svc.Cancel(context.Background(), "b1", domain.Actor{UserID: farmerID, Role: domain.RoleFarmer})
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
}

func TestGetVisibility(t *testing.T) {
	svc, _, _ := newSvc(t, pendingBooking("b1"))

	for _, actor := range []domain.Actor{
		{UserID: farmerID, Role: domain.RoleFarmer},
		{UserID: ownerID, Role: domain.RoleOwner},
		{UserID: "admin-1", Role: domain.RoleAdmin},
	} {
		_, err := svc.Get(context.Background(), "b1", actor)
		assert.NoError(t, err, "actor %s", actor.Role)
	}

	_, err := svc.Get(context.Background(), "b1", domain.Actor{UserID: "farmer-2", Role: domain.RoleFarmer})
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestListForActorScoping(t *testing.T) {
	b1 := pendingBooking("b1")
	b2 := pendingBooking("b2")
	b2.FarmerID = "farmer-2"
	b2.OwnerID = "owner-2"
	svc, _, _ := newSvc(t, b1, b2)

	items, total, err := svc.ListForActor(context.Background(),
		domain.Actor{UserID: farmerID, Role: domain.RoleFarmer}, repository.BookingFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "b1", items[0].ID)

	items, _, err = svc.ListForActor(context.Background(),
		domain.Actor{UserID: "owner-2", Role: domain.RoleOwner}, repository.BookingFilter{})
	require.NoError(t, err)
	assert.Equal(t, "b2", items[0].ID)

	_, total, err = svc.ListForActor(context.Background(),
		domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}, repository.BookingFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
