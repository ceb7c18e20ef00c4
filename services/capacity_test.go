package services

import (
	"context"
	"sync"
	"testing"

	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveDesksRespectsCapacity(t *testing.T) {
	db := newTestDB(t)
	svc := NewCapacityService(db)
	ctx := context.Background()

	space := createTestSpace(t, db, "Desk Capacity Space", 1)
	room := createTestRoom(t, db, space.ID, 5, 10)
	user := createTestUser(t, db, "desks@test.com")

	first, err := svc.Reserve(ctx, ReserveInput{
		Type: models.ReservationTypeDesk, RoomID: room.ID, UserID: &user.ID, Quantity: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 30.0, first.Price)

	// 3 of 5 desks are taken; 3 more must not fit.
	_, err = svc.Reserve(ctx, ReserveInput{
		Type: models.ReservationTypeDesk, RoomID: room.ID, UserID: &user.ID, Quantity: 3,
	})
	assert.ErrorIs(t, err, models.ErrCapacityExceeded)

	// But 2 still do.
	_, err = svc.Reserve(ctx, ReserveInput{
		Type: models.ReservationTypeDesk, RoomID: room.ID, UserID: &user.ID, Quantity: 2,
	})
	require.NoError(t, err)

	var got models.Room
	require.NoError(t, db.First(&got, room.ID).Error)
	assert.Equal(t, 5, got.ReservedDeskNumber)

	require.NoError(t, svc.Release(ctx, first.ID))

	require.NoError(t, db.First(&got, room.ID).Error)
	assert.Equal(t, 2, got.ReservedDeskNumber)

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestConcurrentDeskReservationsHaveOneWinner(t *testing.T) {
	db := newTestDB(t)
	svc := NewCapacityService(db)

	space := createTestSpace(t, db, "Concurrent Desk Space", 1)
	room := createTestRoom(t, db, space.ID, 5, 10)
	user := createTestUser(t, db, "race@test.com")

	const workers = 8

	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Reserve(context.Background(), ReserveInput{
				Type: models.ReservationTypeDesk, RoomID: room.ID, UserID: &user.ID, Quantity: 3,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins int
	for err := range results {
		if err == nil {
			wins++
		}
	}
	// 3 desks per attempt against a 5 desk room: exactly one attempt can win.
	assert.Equal(t, 1, wins)

	var got models.Room
	require.NoError(t, db.First(&got, room.ID).Error)
	assert.Equal(t, 3, got.ReservedDeskNumber)
}

func TestReserveWholeRoomConsumesSpacePool(t *testing.T) {
	db := newTestDB(t)
	svc := NewCapacityService(db)
	ctx := context.Background()

	space := createTestSpace(t, db, "Room Pool Space", 1)
	require.NoError(t, db.Model(space).UpdateColumn("room_number", 2).Error)
	roomA := createTestRoom(t, db, space.ID, 4, 10)
	roomB := createTestRoom(t, db, space.ID, 4, 10)
	user := createTestUser(t, db, "rooms@test.com")

	_, err := svc.Reserve(ctx, ReserveInput{Type: models.ReservationTypeRoom, RoomID: roomA.ID, UserID: &user.ID})
	require.NoError(t, err)
	_, err = svc.Reserve(ctx, ReserveInput{Type: models.ReservationTypeRoom, RoomID: roomB.ID, UserID: &user.ID})
	require.NoError(t, err)

	_, err = svc.Reserve(ctx, ReserveInput{Type: models.ReservationTypeRoom, RoomID: roomA.ID, UserID: &user.ID})
	assert.ErrorIs(t, err, models.ErrCapacityExceeded)

	var got models.Space
	require.NoError(t, db.First(&got, space.ID).Error)
	assert.Equal(t, 2, got.ReservedRoomNumber)
}

func TestReleaseRoomReturnsSlot(t *testing.T) {
	db := newTestDB(t)
	svc := NewCapacityService(db)
	ctx := context.Background()

	space := createTestSpace(t, db, "Release Room Space", 1)
	require.NoError(t, db.Model(space).UpdateColumn("room_number", 1).Error)
	room := createTestRoom(t, db, space.ID, 4, 10)
	user := createTestUser(t, db, "release@test.com")

	reservation, err := svc.Reserve(ctx, ReserveInput{Type: models.ReservationTypeRoom, RoomID: room.ID, UserID: &user.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Release(ctx, reservation.ID))

	var got models.Space
	require.NoError(t, db.First(&got, space.ID).Error)
	assert.Equal(t, 0, got.ReservedRoomNumber)

	// The slot can be taken again.
	_, err = svc.Reserve(ctx, ReserveInput{Type: models.ReservationTypeRoom, RoomID: room.ID, UserID: &user.ID})
	assert.NoError(t, err)
}

func TestReserveServiceHasNoCounter(t *testing.T) {
	db := newTestDB(t)
	svc := NewCapacityService(db)
	ctx := context.Background()

	space := createTestSpace(t, db, "Service Space", 1)
	service := createTestService(t, db, space.ID, "Printing", 15)
	user := createTestUser(t, db, "service@test.com")

	// Daily bookings stack without any capacity bound.
	for i := 0; i < 10; i++ {
		reservation, err := svc.Reserve(ctx, ReserveInput{
			Type: models.ReservationTypeDaily, ServiceID: service.ID, UserID: &user.ID, Quantity: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, 30.0, reservation.Price)
	}

	// Monthly bookings need a monthly price.
	_, err := svc.Reserve(ctx, ReserveInput{
		Type: models.ReservationTypeMonthly, ServiceID: service.ID, UserID: &user.ID, Quantity: 1,
	})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestReserveInvalidTargets(t *testing.T) {
	db := newTestDB(t)
	svc := NewCapacityService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "invalid@test.com")

	_, err := svc.Reserve(ctx, ReserveInput{Type: models.ReservationTypeDesk, RoomID: 999, UserID: &user.ID, Quantity: 1})
	assert.ErrorIs(t, err, models.ErrInvalidTarget)

	_, err = svc.Reserve(ctx, ReserveInput{Type: "Hourly", RoomID: 1, UserID: &user.ID, Quantity: 1})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	err = svc.Release(ctx, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
