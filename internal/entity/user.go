package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleSuperAdmin UserRole = "superadmin"
	UserRoleUser       UserRole = "usuario"
	UserRoleExpert     UserRole = "experto"
	UserRoleUnassigned UserRole = ""
)

// UserStatus is the account axis, independent from an expert's test state.
type UserStatus int

const (
	StatusActive   UserStatus = 1
	StatusPending  UserStatus = 2
	StatusInactive UserStatus = 3
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:text;not null"`
	FirstName    string    `gorm:"type:varchar(100);not null"`
	LastName     string    `gorm:"type:varchar(100);not null"`
	Phone        *string   `gorm:"type:varchar(30)"`

	Role   UserRole   `gorm:"type:varchar(20);not null;default:''"`
	Status UserStatus `gorm:"not null;default:2"`

	// RecoveryTokenHash and RecoveryTokenExpiresAt are both set or both nil.
	RecoveryTokenHash      *string `gorm:"type:text"`
	RecoveryTokenExpiresAt *time.Time

	LastAccessAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Expert   *Expert
	Sessions []Session
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
