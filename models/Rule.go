package models

import "gorm.io/gorm"

type Rule struct {
	gorm.Model
	SpaceID     uint   `json:"spaceID" gorm:"not null;index"`
	Description string `json:"description" gorm:"type:text"`
}
