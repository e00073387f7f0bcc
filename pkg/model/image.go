package model

import "time"

const (
	ImageKindLogo  = "logo"
	ImageKindCover = "cover"
	ImageKindEvent = "event"
)

// Image domain object defining an uploaded image
// swagger:model
type Image struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	URL         string    `json:"url"`
	ContentType string    `json:"contentType"`
	Kind        string    `json:"kind"`
	UserID      uint      `gorm:"index" json:"userId"`
}
