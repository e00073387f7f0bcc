package model

import "time"

// Event domain object defining an event published by an organisation
// swagger:model
type Event struct {
	ID                uint          `gorm:"primaryKey" json:"id"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
	Name              string        `gorm:"not null" json:"name"`
	Description       string        `json:"description"`
	Address           string        `json:"address"`
	Categories        string        `json:"categories"`
	ImageURL          string        `json:"imageUrl"`
	IsOnline          bool          `json:"isOnline"`
	IsOneTime         bool          `gorm:"index" json:"isOneTime"`
	Price             float64       `json:"price"`
	MinAge            int           `json:"minAge"`
	MaxAge            int           `json:"maxAge"`
	StartsAt          time.Time     `gorm:"index;not null" json:"startsAt"`
	EndsAt            time.Time     `gorm:"index;not null" json:"endsAt"`
	RecurrenceDetails string        `json:"recurrenceDetails"`
	OrganisationID    uint          `gorm:"index;not null" json:"organisationId"`
	Organisation      *Organisation `json:"organisation,omitempty"`
}
