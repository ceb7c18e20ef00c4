package models

import "gorm.io/gorm"

type Rating struct {
	gorm.Model
	SpaceID   uint    `json:"spaceID" gorm:"not null;index"`
	UserID    uint    `json:"userID" gorm:"not null;index"`
	Rate      float64 `json:"rate"`
	Message   string  `json:"message" gorm:"type:text"`
	SpaceName string  `json:"spaceName"` // denormalized at creation time
	UserName  string  `json:"userName"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
