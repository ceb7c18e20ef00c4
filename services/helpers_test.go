package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory sqlite database with the full schema.
// A single connection keeps concurrent writers serialized instead of hitting
// SQLITE_BUSY.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.City{},
		&models.Category{},
		&models.Amenity{},
		&models.Space{},
		&models.Room{},
		&models.Service{},
		&models.Reservation{},
		&models.Offer{},
		&models.Notification{},
		&models.Rating{},
		&models.Event{},
		&models.Rule{},
		&models.SpaceImage{},
		&models.RoomImage{},
		&models.CascadeLog{},
	))

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func createTestSpace(t *testing.T, db *gorm.DB, name string, cityID uint) *models.Space {
	t.Helper()

	space := &models.Space{
		Status:     models.SpaceStatusAccepted,
		Name:       name,
		CityID:     cityID,
		RoomNumber: 0,
	}
	require.NoError(t, db.Create(space).Error)
	return space
}

func createTestRoom(t *testing.T, db *gorm.DB, spaceID uint, deskNumber int, deskPrice float64) *models.Room {
	t.Helper()

	room := &models.Room{
		SpaceID:     spaceID,
		DeskNumber:  deskNumber,
		Price:       100,
		DeskPrice:   deskPrice,
		ReserveType: models.ReserveTypeDesk,
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

func createTestService(t *testing.T, db *gorm.DB, spaceID uint, name string, dailyPrice float64) *models.Service {
	t.Helper()

	service := &models.Service{SpaceID: spaceID, Name: name, DailyPrice: dailyPrice}
	require.NoError(t, db.Create(service).Error)
	return service
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{FullName: "Test User", Email: email, Role: "User"}
	require.NoError(t, db.Create(user).Error)
	return user
}
