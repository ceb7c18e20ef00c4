package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	OfferTypeSpace   = "spaceOffer"
	OfferTypeRoom    = "roomOffer"
	OfferTypeService = "serviceOffer"
)

type Offer struct {
	gorm.Model
	Percentage float64   `json:"percentage"`
	Type       string    `json:"type" gorm:"type:varchar(20);index"` // spaceOffer, roomOffer, serviceOffer
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	SpaceID    uint      `json:"spaceID" gorm:"not null;index"`
	RoomID     *uint     `json:"roomID,omitempty" gorm:"index"`
	ServiceID  *uint     `json:"serviceID,omitempty" gorm:"index"`

	Notification *Notification `json:"notification,omitempty"`
}
