package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SpaceStatusPending  = "Pending"
	SpaceStatusAccepted = "Accepted"
	SpaceStatusCanceled = "Canceled"
)

type Space struct {
	gorm.Model
	Status             string         `json:"status" gorm:"type:varchar(20);index"` // Pending, Accepted, Canceled
	Name               string         `json:"name" gorm:"uniqueIndex;size:30"`
	CityID             uint           `json:"cityID" gorm:"index"`
	Address            string         `json:"address"`
	Longitude          float64        `json:"longitude"`
	Latitude           float64        `json:"latitude"`
	Description        string         `json:"description" gorm:"type:text"`
	RoomNumber         int            `json:"roomNumber" gorm:"default:0"`
	ReservedRoomNumber int            `json:"reservedRoomNumber" gorm:"default:0"`
	CategoryID         uint           `json:"categoryID" gorm:"index"`
	UserID             uint           `json:"userID" gorm:"index"`
	Amenities          datatypes.JSON `json:"amenities"` // array of amenity ids

	City     City         `json:"city,omitempty" gorm:"foreignKey:CityID"`
	Category Category     `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Owner    User         `json:"owner,omitempty" gorm:"foreignKey:UserID"`
	Rooms    []Room       `json:"rooms,omitempty"`
	Services []Service    `json:"services,omitempty"`
	Ratings  []Rating     `json:"ratings,omitempty"`
	Events   []Event      `json:"events,omitempty"`
	Rules    []Rule       `json:"rules,omitempty"`
	Images   []SpaceImage `json:"images,omitempty"`
}

// AmenityIDs decodes the JSON array column. A malformed or empty column
// decodes to nil rather than failing the caller.
func (s *Space) AmenityIDs() []uint {
	if len(s.Amenities) == 0 {
		return nil
	}
	var ids []uint
	if err := json.Unmarshal(s.Amenities, &ids); err != nil {
		return nil
	}
	return ids
}
