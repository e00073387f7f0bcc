package model

import "time"

const (
	VerificationTokenTypeEmail    = "email"
	VerificationTokenTypePassword = "password"
)

// VerificationToken is a single use token used for email confirmation or password reset. A user owns at most one.
type VerificationToken struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"`
	Type      string    `gorm:"index;not null" json:"type"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"userId"`
	User      *User     `json:"-"`
}

func (t *VerificationToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}
