package models

import "gorm.io/gorm"

type Service struct {
	gorm.Model
	SpaceID       uint     `json:"spaceID" gorm:"not null;index"`
	Name          string   `json:"name"`
	Description   string   `json:"description" gorm:"type:text"`
	DailyPrice    float64  `json:"dailyPrice"`
	MonthlyPrice  *float64 `json:"monthlyPrice,omitempty"`
	AnnuallyPrice *float64 `json:"annuallyPrice,omitempty"`
	Image         string   `json:"image"`

	Reservations []Reservation `json:"reservations,omitempty"`
}
