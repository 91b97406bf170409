package dto

// DiscoveryQuery - фильтры ленты кандидатов.
type DiscoveryQuery struct {
	Gender       string  `form:"gender" json:"gender" validate:"omitempty,is-gender"`
	VenueID      *string `form:"venue_id" json:"venue_id" validate:"omitempty,uuid"`
	MaxDistanceM float64 `form:"max_distance_m" json:"max_distance_m" validate:"omitempty,gt=0"`
	Limit        int     `form:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
}

// Candidate - кандидат в ленте. DistanceM присутствует, только когда
// известны координаты обеих сторон.
type Candidate struct {
	User      *UserResponse `json:"user"`
	DistanceM *float64      `json:"distance_m,omitempty"`
}
