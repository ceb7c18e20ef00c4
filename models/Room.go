package models

import "gorm.io/gorm"

const (
	ReserveTypeRoom = "Room"
	ReserveTypeDesk = "Desk"
)

type Room struct {
	gorm.Model
	SpaceID            uint    `json:"spaceID" gorm:"not null;index"`
	Description        string  `json:"description" gorm:"type:text"`
	Price              float64 `json:"price"`     // whole-room price
	DeskPrice          float64 `json:"deskPrice"` // per-desk price
	DeskNumber         int     `json:"deskNumber"`
	ReservedDeskNumber int     `json:"reservedDeskNumber" gorm:"default:0"`
	ReserveType        string  `json:"reserveType" gorm:"type:varchar(10)"` // Room, Desk

	Reservations []Reservation `json:"reservations,omitempty"`
	Images       []RoomImage   `json:"images,omitempty"`
}
