package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	FullName       string  `json:"fullName"`
	Email          string  `json:"email" gorm:"uniqueIndex"`
	Password       string  `json:"-"`
	Role           string  `json:"role" gorm:"type:varchar(20);default:User;index"` // User, Manager, Admin
	Image          string  `json:"image"`
	PhoneNumber    string  `json:"phoneNumber"`
	SocialLogin    bool    `json:"socialLogin"`
	SocialProvider string  `json:"socialProvider"`
	Spaces         []Space `json:"spaces,omitempty" gorm:"foreignKey:UserID;references:ID"`
}
