package storage

import (
	"log"
	"os"

	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func connectToDB() *gorm.DB {
	// Only load .env in development (when RENDER env var is not set)
	if os.Getenv("RENDER") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Panic("DB_CONNECTION_STRING environment variable is required")
	}

	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if dbError != nil {
		log.Panic("error connection to db: " + dbError.Error())
	}

	DB = db
	return db
}

func performMigrations(db *gorm.DB) {
	db.AutoMigrate(
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
	)
}

func InitializeDB() *gorm.DB {
	db := connectToDB()
	performMigrations(db)
	return db
}
