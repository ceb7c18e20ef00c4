package models

import "gorm.io/gorm"

type SpaceImage struct {
	gorm.Model
	SpaceID uint   `json:"spaceID" gorm:"not null;index"`
	Image   string `json:"image"` // hosted URL
}
