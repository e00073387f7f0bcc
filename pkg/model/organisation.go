package model

import "time"

// Organisation domain object defining the account type which publishes events
// swagger:model
type Organisation struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Name          string    `gorm:"unique;not null" json:"name"`
	Slug          string    `gorm:"uniqueIndex" json:"slug"`
	Bulstat       string    `json:"bulstat"`
	Address       string    `json:"address"`
	Website       string    `json:"website"`
	Facebook      string    `json:"facebook"`
	CharityOption string    `json:"charityOption"`
	Purpose       string    `json:"purpose"`
	LogoURL       string    `json:"logoUrl"`
	BackgroundURL string    `json:"backgroundUrl"`
	UserID        uint      `gorm:"uniqueIndex;not null" json:"userId"`
	User          *User     `json:"-"`
	Events        []Event   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
