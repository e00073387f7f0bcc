package model

import (
	"context"
	"time"
)

const (
	RoleAdministrator = "ADMIN"
	RoleOrganisation  = "ORGANISATION"
)

// User domain object defining a user. The email address is used as the username.
// swagger:model
type User struct {
	ID                uint               `gorm:"primarykey" json:"id"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
	Email             string             `gorm:"index;unique;not null" json:"email"`
	Password          string             `json:"-"`
	FullName          string             `json:"fullName"`
	PhoneNumber       string             `json:"phoneNumber"`
	Role              string             `gorm:"not null;default:ORGANISATION" json:"role"`
	IsEnabled         bool               `gorm:"not null;default:false" json:"isEnabled"`
	IsNonLocked       bool               `gorm:"not null;default:true" json:"isNonLocked"`
	IsApprovedByAdmin bool               `gorm:"not null;default:false" json:"isApprovedByAdmin"`
	Organisation      *Organisation      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"organisation,omitempty"`
	VerificationToken *VerificationToken `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}

func (u *User) IsOrganisation() bool {
	return u.Role == RoleOrganisation
}

// IsLegal reports whether the user satisfies the condition for its content to be publicly visible.
func (u *User) IsLegal() bool {
	return u.IsNonLocked && u.IsApprovedByAdmin
}

type userCtxKey int

var userKey userCtxKey

// NewContextWithUser returns a new [context.Context] that carries value user.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext returns the user stored in ctx, if any.
func GetUserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(userKey).(*User)
	return u, ok
}
