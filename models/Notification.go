package models

import "gorm.io/gorm"

// Message is rendered once when the owning offer is accepted and never
// recomputed, so later renames of the space or service leave it stale.
type Notification struct {
	gorm.Model
	OfferID uint   `json:"offerID" gorm:"not null;index"`
	Message string `json:"message" gorm:"type:text"`
}
