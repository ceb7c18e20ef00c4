package models

import "gorm.io/gorm"

type RoomImage struct {
	gorm.Model
	RoomID uint   `json:"roomID" gorm:"not null;index"`
	Image  string `json:"image"`
}
