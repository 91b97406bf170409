package models

import (
	"time"

	"gorm.io/datatypes"
)

// User - один пользователь = одна строка. Идентификатор профиля и
// идентификатор аутентификации совпадают, email уникален на уровне схемы.
type User struct {
	BaseModel
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string     `gorm:"not null" json:"-"`
	Role          UserRole   `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	Status        UserStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	IsVerified    bool       `gorm:"default:false" json:"is_verified"`
	Phone         string     `gorm:"index" json:"phone,omitempty"`
	PhoneVerified bool       `gorm:"default:false" json:"phone_verified"`

	VerificationToken string     `json:"-"`
	ResetToken        string     `json:"-"`
	ResetTokenExp     *time.Time `json:"-"`

	// Display attributes
	Name   string         `gorm:"not null" json:"name"`
	Age    int            `json:"age"`
	Gender Gender         `gorm:"type:varchar(10)" json:"gender"`
	Bio    string         `gorm:"type:text" json:"bio"`
	Photos datatypes.JSON `json:"photos"` // список URL

	// Presence & location
	IsOnline       bool       `gorm:"default:false" json:"is_online"`
	LastActiveAt   *time.Time `json:"last_active_at,omitempty"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
	CurrentVenueID *string    `gorm:"type:uuid" json:"current_venue_id,omitempty"`

	// Relations
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}

// PhoneVerification - одноразовый SMS-код подтверждения номера.
type PhoneVerification struct {
	BaseModel
	UserID     string     `gorm:"not null;index"`
	Phone      string     `gorm:"not null"`
	Code       string     `gorm:"not null"`
	Attempts   int        `gorm:"default:0"`
	ExpiresAt  time.Time  `gorm:"not null"`
	ConsumedAt *time.Time
}
