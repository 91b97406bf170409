package models

// Venue - заведение с круговой геозоной: центр + радиус в метрах.
// RadiusM <= 0 трактуется как "никогда не содержит".
type Venue struct {
	BaseModel
	Name      string  `gorm:"not null" json:"name"`
	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`
	RadiusM   float64 `gorm:"not null" json:"radius_m"`
	IsActive  bool    `gorm:"default:true" json:"is_active"`
}
