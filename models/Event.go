package models

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	gorm.Model
	SpaceID     uint      `json:"spaceID" gorm:"not null;index"`
	Name        string    `json:"name"`
	Description string    `json:"description" gorm:"type:text"`
	Date        time.Time `json:"date"`
	Image       string    `json:"image"`
}
