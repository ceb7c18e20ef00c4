package models

import "gorm.io/gorm"

const (
	ReservationTypeRoom     = "Room"
	ReservationTypeDesk     = "Desk"
	ReservationTypeDaily    = "Daily"
	ReservationTypeMonthly  = "Monthly"
	ReservationTypeAnnually = "Annually"
)

type Reservation struct {
	gorm.Model
	Type      string  `json:"type" gorm:"type:varchar(10)"` // Room, Desk, Daily, Monthly, Annually
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity" gorm:"default:1"`
	RoomID    *uint   `json:"roomID,omitempty" gorm:"index"`
	ServiceID *uint   `json:"serviceID,omitempty" gorm:"index"`
	UserID    *uint   `json:"userID,omitempty" gorm:"index"`
}
