package models

import "gorm.io/gorm"

type City struct {
	gorm.Model
	Name  string `json:"name" gorm:"uniqueIndex"`
	Image string `json:"image"`
}
