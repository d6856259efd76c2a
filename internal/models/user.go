// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User is the account a post or interaction is attributed to. Profiles are
// owned by the account service; this application only reads the display
// fields and writes PostAt.
type User struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	OpenID     string     `gorm:"uniqueIndex;size:64" json:"-"`
	NickName   string     `gorm:"size:64" json:"nickName"`
	AvatarFile string     `json:"avatarFile"`
	City       string     `gorm:"size:64" json:"city"`
	Gender     int        `json:"gender"`
	Country    string     `gorm:"size:64" json:"country"`
	PostAt     *time.Time `json:"postAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Actor returns the display snapshot recorded alongside an interaction.
func (u *User) Actor() *Actor {
	return &Actor{ID: u.ID, Name: u.NickName, Avatar: u.AvatarFile}
}

// Actor identifies who performed an interaction, with the display fields
// captured at the time it happened.
type Actor struct {
	ID     uint
	Name   string
	Avatar string
}
