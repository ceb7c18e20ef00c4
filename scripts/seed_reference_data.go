package main

import (
	"fmt"
	"log"

	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"github.com/WouroudElKhaldi/CoSpace-Backend/storage"
)

// Seeds the reference tables every listing joins against. Safe to rerun:
// rows are matched by their unique name.
func main() {
	db := storage.InitializeDB()

	cities := []string{"Beirut", "Tripoli", "Jounieh", "Zahle", "Saida", "Byblos"}
	for _, name := range cities {
		if err := db.Where(models.City{Name: name}).FirstOrCreate(&models.City{Name: name}).Error; err != nil {
			log.Fatalf("Error seeding city %s: %v", name, err)
		}
	}

	categories := []string{"Coworking Hub", "Private Office", "Event Venue", "Studio", "Cafe Workspace"}
	for _, name := range categories {
		if err := db.Where(models.Category{Name: name}).FirstOrCreate(&models.Category{Name: name}).Error; err != nil {
			log.Fatalf("Error seeding category %s: %v", name, err)
		}
	}

	amenities := []string{"Wifi", "Parking", "Coffee", "Printer", "Meeting Room", "Lockers", "Air Conditioning", "Accessible Entrance"}
	for _, name := range amenities {
		if err := db.Where(models.Amenity{Name: name}).FirstOrCreate(&models.Amenity{Name: name}).Error; err != nil {
			log.Fatalf("Error seeding amenity %s: %v", name, err)
		}
	}

	fmt.Println("Reference data seeded")
}
