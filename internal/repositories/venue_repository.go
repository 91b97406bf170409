package repositories

import (
	"errors"
	"time"

	"amora_backend/internal/models"

	"gorm.io/gorm"
)

var ErrVenueNotFound = errors.New("venue not found")

type VenueRepository interface {
	Create(db *gorm.DB, venue *models.Venue) error
	Update(db *gorm.DB, venue *models.Venue) error
	FindByID(db *gorm.DB, id string) (*models.Venue, error)
	ListActive(db *gorm.DB) ([]models.Venue, error)
	ListAll(db *gorm.DB) ([]models.Venue, error)
	Deactivate(db *gorm.DB, id string) error
}

type VenueRepositoryImpl struct{}

func NewVenueRepository() VenueRepository {
	return &VenueRepositoryImpl{}
}

func (r *VenueRepositoryImpl) Create(db *gorm.DB, venue *models.Venue) error {
	return db.Create(venue).Error
}

func (r *VenueRepositoryImpl) Update(db *gorm.DB, venue *models.Venue) error {
	result := db.Model(venue).Updates(map[string]interface{}{
		"name":       venue.Name,
		"latitude":   venue.Latitude,
		"longitude":  venue.Longitude,
		"radius_m":   venue.RadiusM,
		"is_active":  venue.IsActive,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVenueNotFound
	}
	return nil
}

func (r *VenueRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Venue, error) {
	var venue models.Venue
	err := db.First(&venue, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &venue, nil
}

func (r *VenueRepositoryImpl) ListActive(db *gorm.DB) ([]models.Venue, error) {
	var venues []models.Venue
	err := db.Where("is_active = ?", true).Find(&venues).Error
	return venues, err
}

func (r *VenueRepositoryImpl) ListAll(db *gorm.DB) ([]models.Venue, error) {
	var venues []models.Venue
	err := db.Order("created_at DESC").Find(&venues).Error
	return venues, err
}

func (r *VenueRepositoryImpl) Deactivate(db *gorm.DB, id string) error {
	result := db.Model(&models.Venue{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active":  false,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVenueNotFound
	}
	return nil
}
