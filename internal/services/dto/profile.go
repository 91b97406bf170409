package dto

import "time"

// UserResponse - публичное представление пользователя.
// Email отдается только самому владельцу (см. UserService).
type UserResponse struct {
	ID             string     `json:"id"`
	Email          string     `json:"email,omitempty"`
	Name           string     `json:"name"`
	Age            int        `json:"age,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	Bio            string     `json:"bio,omitempty"`
	Photos         []string   `json:"photos"`
	IsOnline       bool       `json:"is_online"`
	PhoneVerified  bool       `json:"phone_verified"`
	LastActiveAt   *time.Time `json:"last_active_at,omitempty"`
	CurrentVenueID *string    `json:"current_venue_id,omitempty"`
}

type UpdateProfileRequest struct {
	Name   *string  `json:"name" validate:"omitempty,min=2,max=60"`
	Age    *int     `json:"age" validate:"omitempty,min=18,max=120"`
	Gender *string  `json:"gender" validate:"omitempty,is-gender"`
	Bio    *string  `json:"bio" validate:"omitempty,max=1000"`
	Photos []string `json:"photos" validate:"omitempty,max=9,dive,url"`
}

// Указатели: 0.0 - валидная координата, required на float64 ее бы отбросил.
type LocationUpdateRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}
