package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleProvider Role = "PROVIDER"
	RoleAdmin    Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusInactive  Status = "INACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

// User is the identity root. Exactly one profile record exists per user,
// selected by Role; password hash and tokens never leave the service.
type User struct {
	ID            int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Email         string `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash  string `gorm:"size:100;not null" json:"-"`
	Role          Role   `gorm:"size:20;not null;index" json:"role"`
	Status        Status `gorm:"size:20;not null;index" json:"status"`
	EmailVerified bool   `gorm:"not null;default:false" json:"emailVerified"`

	VerificationToken   *string    `gorm:"size:255" json:"-"`
	ResetPasswordToken  *string    `gorm:"size:255" json:"-"`
	ResetPasswordExpiry *time.Time `json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	CustomerProfile *CustomerProfile `gorm:"foreignKey:UserID" json:"-"`
	ProviderProfile *ProviderProfile `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string { return "users" }

// UserRepository persists users and their role profile. Register must be
// atomic: the user row and its single profile row land together or not at all.
type UserRepository interface {
	Register(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByVerificationToken(ctx context.Context, token string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *User) error
}
