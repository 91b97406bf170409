package services

import (
	"sort"

	"amora_backend/internal/geo"
	"amora_backend/internal/models"
	"amora_backend/internal/repositories"
	"amora_backend/internal/services/dto"
	"amora_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type VenueService interface {
	// VenuesInRange - заведения, геозона которых содержит точку,
	// ближайшие первыми. Сравнение с радиусом по неокругленному
	// расстоянию, в ответе расстояние округлено до метра.
	VenuesInRange(db *gorm.DB, lat, lng float64) ([]dto.VenueInRange, error)

	CheckIn(db *gorm.DB, userID, venueID string, lat, lng float64) (*dto.VenueInRange, error)
	CheckOut(db *gorm.DB, userID string) error

	// Admin CRUD
	CreateVenue(db *gorm.DB, req *dto.CreateVenueRequest) (*models.Venue, error)
	UpdateVenue(db *gorm.DB, venueID string, req *dto.UpdateVenueRequest) (*models.Venue, error)
	DeactivateVenue(db *gorm.DB, venueID string) error
	ListVenues(db *gorm.DB) ([]models.Venue, error)
}

type VenueServiceImpl struct {
	venueRepo repositories.VenueRepository
	userRepo  repositories.UserRepository
}

func NewVenueService(venueRepo repositories.VenueRepository, userRepo repositories.UserRepository) VenueService {
	return &VenueServiceImpl{venueRepo: venueRepo, userRepo: userRepo}
}

func (s *VenueServiceImpl) VenuesInRange(db *gorm.DB, lat, lng float64) ([]dto.VenueInRange, error) {
	if !geo.ValidCoordinates(lat, lng) {
		return nil, apperrors.ErrInvalidCoordinates
	}

	venues, err := s.venueRepo.ListActive(db)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	type hit struct {
		venue    *models.Venue
		distance float64 // неокругленное
	}
	var hits []hit
	for i := range venues {
		v := &venues[i]
		d := geo.Distance(v.Latitude, v.Longitude, lat, lng)
		if v.RadiusM <= 0 || d > v.RadiusM {
			continue
		}
		hits = append(hits, hit{venue: v, distance: d})
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].distance < hits[j].distance })

	result := make([]dto.VenueInRange, 0, len(hits))
	for _, h := range hits {
		result = append(result, dto.VenueInRange{
			ID:        h.venue.ID,
			Name:      h.venue.Name,
			Latitude:  h.venue.Latitude,
			Longitude: h.venue.Longitude,
			RadiusM:   h.venue.RadiusM,
			DistanceM: geo.RoundMeters(h.distance),
		})
	}
	return result, nil
}

func (s *VenueServiceImpl) CheckIn(db *gorm.DB, userID, venueID string, lat, lng float64) (*dto.VenueInRange, error) {
	if !geo.ValidCoordinates(lat, lng) {
		return nil, apperrors.ErrInvalidCoordinates
	}

	venue, err := s.venueRepo.FindByID(db, venueID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrVenueNotFound) {
			return nil, apperrors.ErrVenueNotFound
		}
		return nil, apperrors.PersistenceError(err)
	}
	if !venue.IsActive {
		return nil, apperrors.ErrVenueNotFound
	}

	d := geo.Distance(venue.Latitude, venue.Longitude, lat, lng)
	if venue.RadiusM <= 0 || d > venue.RadiusM {
		return nil, apperrors.ErrOutsideVenue
	}

	if err := s.userRepo.UpdateLocation(db, userID, lat, lng); err != nil {
		return nil, apperrors.PersistenceError(err)
	}
	if err := s.userRepo.SetCurrentVenue(db, userID, &venue.ID); err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	return &dto.VenueInRange{
		ID:        venue.ID,
		Name:      venue.Name,
		Latitude:  venue.Latitude,
		Longitude: venue.Longitude,
		RadiusM:   venue.RadiusM,
		DistanceM: geo.RoundMeters(d),
	}, nil
}

func (s *VenueServiceImpl) CheckOut(db *gorm.DB, userID string) error {
	if err := s.userRepo.SetCurrentVenue(db, userID, nil); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.PersistenceError(err)
	}
	return nil
}

// --- Admin CRUD ---

func (s *VenueServiceImpl) CreateVenue(db *gorm.DB, req *dto.CreateVenueRequest) (*models.Venue, error) {
	if !geo.ValidCoordinates(*req.Latitude, *req.Longitude) {
		return nil, apperrors.ErrInvalidCoordinates
	}

	venue := &models.Venue{
		Name:      req.Name,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		RadiusM:   req.RadiusM,
		IsActive:  true,
	}
	if err := s.venueRepo.Create(db, venue); err != nil {
		return nil, apperrors.PersistenceError(err)
	}
	return venue, nil
}

func (s *VenueServiceImpl) UpdateVenue(db *gorm.DB, venueID string, req *dto.UpdateVenueRequest) (*models.Venue, error) {
	venue, err := s.venueRepo.FindByID(db, venueID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrVenueNotFound) {
			return nil, apperrors.ErrVenueNotFound
		}
		return nil, apperrors.PersistenceError(err)
	}

	if req.Name != nil {
		venue.Name = *req.Name
	}
	if req.Latitude != nil {
		venue.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		venue.Longitude = *req.Longitude
	}
	if req.RadiusM != nil {
		venue.RadiusM = *req.RadiusM
	}
	if req.IsActive != nil {
		venue.IsActive = *req.IsActive
	}

	if !geo.ValidCoordinates(venue.Latitude, venue.Longitude) {
		return nil, apperrors.ErrInvalidCoordinates
	}

	if err := s.venueRepo.Update(db, venue); err != nil {
		return nil, apperrors.PersistenceError(err)
	}
	return venue, nil
}

func (s *VenueServiceImpl) DeactivateVenue(db *gorm.DB, venueID string) error {
	if err := s.venueRepo.Deactivate(db, venueID); err != nil {
		if apperrors.Is(err, repositories.ErrVenueNotFound) {
			return apperrors.ErrVenueNotFound
		}
		return apperrors.PersistenceError(err)
	}
	return nil
}

func (s *VenueServiceImpl) ListVenues(db *gorm.DB) ([]models.Venue, error) {
	venues, err := s.venueRepo.ListAll(db)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}
	return venues, nil
}
