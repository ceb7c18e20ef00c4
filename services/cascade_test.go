package services

import (
	"context"
	"testing"

	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedSpaceClosure builds a space owning one of everything the cascade has
// to reach: two rooms (one with a reservation and an image), a service with
// a reservation, an offer with its notification, a rating, an event, a rule
// and a space image.
func seedSpaceClosure(t *testing.T, db *gorm.DB, name string, userID uint) *models.Space {
	t.Helper()

	space := createTestSpace(t, db, name, 1)
	require.NoError(t, db.Model(space).UpdateColumn("user_id", userID).Error)

	roomA := createTestRoom(t, db, space.ID, 4, 10)
	createTestRoom(t, db, space.ID, 4, 10)
	service := createTestService(t, db, space.ID, "Coffee", 5)

	require.NoError(t, db.Create(&models.Reservation{Type: models.ReservationTypeDesk, Quantity: 1, RoomID: &roomA.ID, UserID: &userID}).Error)
	require.NoError(t, db.Create(&models.Reservation{Type: models.ReservationTypeDaily, Quantity: 1, ServiceID: &service.ID, UserID: &userID}).Error)
	require.NoError(t, db.Create(&models.RoomImage{RoomID: roomA.ID, Image: "room.jpg"}).Error)

	offer := models.Offer{Type: models.OfferTypeSpace, Percentage: 10, SpaceID: space.ID, StartDate: day(1), EndDate: day(10)}
	require.NoError(t, db.Create(&offer).Error)
	require.NoError(t, db.Create(&models.Notification{OfferID: offer.ID, Message: "10% off"}).Error)

	require.NoError(t, db.Create(&models.Rating{SpaceID: space.ID, UserID: userID, Rate: 4}).Error)
	require.NoError(t, db.Create(&models.Event{SpaceID: space.ID, Name: "Open Day"}).Error)
	require.NoError(t, db.Create(&models.Rule{SpaceID: space.ID, Description: "No smoking"}).Error)
	require.NoError(t, db.Create(&models.SpaceImage{SpaceID: space.ID, Image: "space.jpg"}).Error)

	return space
}

func TestDeleteSpaceRemovesFullClosure(t *testing.T) {
	db := newTestDB(t)
	svc := NewCascadeService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "closure@test.com")
	space := seedSpaceClosure(t, db, "Closure Space", user.ID)

	summary, err := svc.DeleteSpace(ctx, space.ID)
	require.NoError(t, err)
	assert.True(t, summary.Complete)

	expected := map[string]int64{
		"reservations":  2,
		"roomImages":    1,
		"notifications": 1,
		"offers":        1,
		"rooms":         2,
		"services":      1,
		"ratings":       1,
		"events":        1,
		"rules":         1,
		"spaceImages":   1,
		"spaces":        1,
	}
	assert.Equal(t, expected, summary.Deleted)

	for model, table := range map[interface{}]string{
		&models.Reservation{}:  "reservations",
		&models.Room{}:         "rooms",
		&models.Service{}:      "services",
		&models.Offer{}:        "offers",
		&models.Notification{}: "notifications",
		&models.Rating{}:       "ratings",
		&models.Event{}:        "events",
		&models.Rule{}:         "rules",
		&models.SpaceImage{}:   "space images",
		&models.RoomImage{}:    "room images",
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count, table)
	}

	var log models.CascadeLog
	require.NoError(t, db.Where("root_type = ? AND root_id = ?", "space", space.ID).First(&log).Error)
	assert.Equal(t, models.CascadeStatusDone, log.Status)

	// The user who owned nothing else is untouched.
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	assert.EqualValues(t, 1, userCount)
}

func TestDeleteSpaceAgainIsNoOp(t *testing.T) {
	db := newTestDB(t)
	svc := NewCascadeService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "noop@test.com")
	space := seedSpaceClosure(t, db, "NoOp Space", user.ID)

	_, err := svc.DeleteSpace(ctx, space.ID)
	require.NoError(t, err)

	summary, err := svc.DeleteSpace(ctx, space.ID)
	require.NoError(t, err)
	assert.True(t, summary.Complete)
	assert.Empty(t, summary.Deleted)
}

func TestDeleteSpaceResumesRunningCascade(t *testing.T) {
	db := newTestDB(t)
	svc := NewCascadeService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "resume@test.com")
	space := seedSpaceClosure(t, db, "Resume Space", user.ID)

	// A prior run got partway: it removed both reservations and crashed
	// before finishing, leaving its log open.
	require.NoError(t, db.Where("room_id IS NOT NULL OR service_id IS NOT NULL").Delete(&models.Reservation{}).Error)
	stale := models.CascadeLog{RootType: "space", RootID: space.ID, Status: models.CascadeStatusRunning}
	stale.SetDeleted(map[string]int64{"reservations": 2})
	require.NoError(t, db.Create(&stale).Error)

	summary, err := svc.DeleteSpace(ctx, space.ID)
	require.NoError(t, err)
	assert.True(t, summary.Complete)

	// Counts accumulate into the same log instead of starting over.
	assert.EqualValues(t, 2, summary.Deleted["reservations"])
	assert.EqualValues(t, 2, summary.Deleted["rooms"])
	assert.EqualValues(t, 1, summary.Deleted["spaces"])

	var logs []models.CascadeLog
	require.NoError(t, db.Where("root_type = ? AND root_id = ?", "space", space.ID).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, models.CascadeStatusDone, logs[0].Status)
}

func TestDeleteRoomReturnsSlotToPool(t *testing.T) {
	db := newTestDB(t)
	svc := NewCascadeService(db)
	ctx := context.Background()

	space := createTestSpace(t, db, "Room Delete Space", 1)
	require.NoError(t, db.Model(space).UpdateColumn("room_number", 2).Error)
	room := createTestRoom(t, db, space.ID, 4, 10)
	user := createTestUser(t, db, "roomdelete@test.com")
	require.NoError(t, db.Create(&models.Reservation{Type: models.ReservationTypeDesk, Quantity: 2, RoomID: &room.ID, UserID: &user.ID}).Error)
	require.NoError(t, db.Create(&models.RoomImage{RoomID: room.ID, Image: "a.jpg"}).Error)

	summary, err := svc.DeleteRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.True(t, summary.Complete)
	assert.EqualValues(t, 1, summary.Deleted["reservations"])
	assert.EqualValues(t, 1, summary.Deleted["roomImages"])
	assert.EqualValues(t, 1, summary.Deleted["rooms"])

	var got models.Space
	require.NoError(t, db.First(&got, space.ID).Error)
	assert.Equal(t, 1, got.RoomNumber)
}

func TestDeleteRoomReleasesHeldPoolSlots(t *testing.T) {
	db := newTestDB(t)
	cascade := NewCascadeService(db)
	capacity := NewCapacityService(db)
	ctx := context.Background()

	space := createTestSpace(t, db, "Held Slot Space", 1)
	require.NoError(t, db.Model(space).UpdateColumn("room_number", 1).Error)
	room := createTestRoom(t, db, space.ID, 4, 10)
	user := createTestUser(t, db, "heldslot@test.com")

	// A whole-room reservation holds one slot of the space's pool.
	_, err := capacity.Reserve(ctx, ReserveInput{Type: models.ReservationTypeRoom, RoomID: room.ID, UserID: &user.ID})
	require.NoError(t, err)

	summary, err := cascade.DeleteRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.True(t, summary.Complete)
	assert.EqualValues(t, 1, summary.Deleted["reservations"])

	// The held slot is given back along with the reservation; the pool
	// bound stays intact after the room shrinks it.
	var got models.Space
	require.NoError(t, db.First(&got, space.ID).Error)
	assert.Equal(t, 0, got.ReservedRoomNumber)
	assert.Equal(t, 0, got.RoomNumber)
	assert.LessOrEqual(t, got.ReservedRoomNumber, got.RoomNumber)
}

func TestDeleteServiceRemovesClosure(t *testing.T) {
	db := newTestDB(t)
	cascade := NewCascadeService(db)
	offers := NewOfferService(db)
	ctx := context.Background()

	space := createTestSpace(t, db, "Service Closure Space", 1)
	service := createTestService(t, db, space.ID, "Lockers", 5)
	keep := createTestService(t, db, space.ID, "Printing", 8)
	user := createTestUser(t, db, "serviceclosure@test.com")

	require.NoError(t, db.Create(&models.Reservation{Type: models.ReservationTypeDaily, Quantity: 1, ServiceID: &service.ID, UserID: &user.ID}).Error)
	_, err := offers.Propose(ctx, ProposeOfferInput{
		Target: OfferTarget{Kind: TargetService, ID: service.ID}, Percentage: 10, StartDate: day(1), EndDate: day(10),
	})
	require.NoError(t, err)

	summary, err := cascade.DeleteService(ctx, service.ID)
	require.NoError(t, err)
	assert.True(t, summary.Complete)

	expected := map[string]int64{
		"reservations":  1,
		"notifications": 1,
		"offers":        1,
		"services":      1,
	}
	assert.Equal(t, expected, summary.Deleted)

	var offerCount, notificationCount, reservationCount int64
	db.Model(&models.Offer{}).Count(&offerCount)
	db.Model(&models.Notification{}).Count(&notificationCount)
	db.Model(&models.Reservation{}).Count(&reservationCount)
	assert.Zero(t, offerCount)
	assert.Zero(t, notificationCount)
	assert.Zero(t, reservationCount)

	// The sibling service is untouched and rerunning the delete is a no-op.
	var kept models.Service
	require.NoError(t, db.First(&kept, keep.ID).Error)

	again, err := cascade.DeleteService(ctx, service.ID)
	require.NoError(t, err)
	assert.True(t, again.Complete)
	assert.Empty(t, again.Deleted)

	var log models.CascadeLog
	require.NoError(t, db.Where("root_type = ? AND root_id = ?", "service", service.ID).First(&log).Error)
	assert.Equal(t, models.CascadeStatusDone, log.Status)
}

func TestDeleteUserCascadesOwnedSpaces(t *testing.T) {
	db := newTestDB(t)
	svc := NewCascadeService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@test.com")
	bystander := createTestUser(t, db, "bystander@test.com")
	seedSpaceClosure(t, db, "Owned Space A", owner.ID)
	seedSpaceClosure(t, db, "Owned Space B", owner.ID)

	otherSpace := createTestSpace(t, db, "Unrelated Space", 1)
	require.NoError(t, db.Model(otherSpace).UpdateColumn("user_id", bystander.ID).Error)

	summary, err := svc.DeleteUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.True(t, summary.Complete)
	assert.EqualValues(t, 2, summary.Deleted["spaces"])
	assert.EqualValues(t, 4, summary.Deleted["rooms"])
	assert.EqualValues(t, 1, summary.Deleted["users"])

	var spaceCount int64
	db.Model(&models.Space{}).Count(&spaceCount)
	assert.EqualValues(t, 1, spaceCount)

	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	assert.EqualValues(t, 1, userCount)
}
