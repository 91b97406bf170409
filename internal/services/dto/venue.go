package dto

// VenueInRange - заведение, геозона которого содержит точку пользователя.
// DistanceM округлено до метра (для отображения); проверка вхождения
// делалась по неокругленному расстоянию.
type VenueInRange struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusM   float64 `json:"radius_m"`
	DistanceM float64 `json:"distance_m"`
}

type NearbyQuery struct {
	Latitude  *float64 `form:"latitude" json:"latitude" validate:"required,latitude"`
	Longitude *float64 `form:"longitude" json:"longitude" validate:"required,longitude"`
}

type CheckInRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

type CreateVenueRequest struct {
	Name      string   `json:"name" validate:"required,min=2,max=120"`
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
	RadiusM   float64  `json:"radius_m" validate:"required,gt=0"`
}

type UpdateVenueRequest struct {
	Name      *string  `json:"name" validate:"omitempty,min=2,max=120"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
	RadiusM   *float64 `json:"radius_m" validate:"omitempty,gt=0"`
	IsActive  *bool    `json:"is_active"`
}
