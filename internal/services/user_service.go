package services

import (
	"encoding/json"

	"amora_backend/internal/geo"
	"amora_backend/internal/models"
	"amora_backend/internal/repositories"
	"amora_backend/internal/services/dto"
	"amora_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserService interface {
	GetMe(db *gorm.DB, userID string) (*dto.UserResponse, error)
	GetPublicProfile(db *gorm.DB, viewerID, targetID string) (*dto.UserResponse, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	UpdateLocation(db *gorm.DB, userID string, lat, lng float64) error
	Deactivate(db *gorm.DB, userID string) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) GetMe(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.PersistenceError(err)
	}
	return BuildUserResponse(user, true), nil
}

func (s *UserServiceImpl) GetPublicProfile(db *gorm.DB, viewerID, targetID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, targetID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.PersistenceError(err)
	}
	return BuildUserResponse(user, viewerID == targetID), nil
}

func (s *UserServiceImpl) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.PersistenceError(err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Age != nil {
		user.Age = *req.Age
	}
	if req.Gender != nil {
		user.Gender = models.Gender(*req.Gender)
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Photos != nil {
		raw, merr := json.Marshal(req.Photos)
		if merr != nil {
			return nil, apperrors.InternalError(merr)
		}
		user.Photos = datatypes.JSON(raw)
	}

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.PersistenceError(err)
	}
	return BuildUserResponse(user, true), nil
}

func (s *UserServiceImpl) UpdateLocation(db *gorm.DB, userID string, lat, lng float64) error {
	// Валидация до любой записи
	if !geo.ValidCoordinates(lat, lng) {
		return apperrors.ErrInvalidCoordinates
	}
	if err := s.userRepo.UpdateLocation(db, userID, lat, lng); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.PersistenceError(err)
	}
	return nil
}

func (s *UserServiceImpl) Deactivate(db *gorm.DB, userID string) error {
	if err := s.userRepo.UpdateStatus(db, userID, models.UserStatusSuspended); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.PersistenceError(err)
	}
	return nil
}

// BuildUserResponse собирает публичное (или свое, includePrivate) представление.
func BuildUserResponse(user *models.User, includePrivate bool) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Age:           user.Age,
		Gender:        string(user.Gender),
		Bio:           user.Bio,
		Photos:        decodePhotos(user.Photos),
		IsOnline:      user.IsOnline,
		PhoneVerified: user.PhoneVerified,
		LastActiveAt:  user.LastActiveAt,
	}
	if includePrivate {
		resp.Email = user.Email
		resp.CurrentVenueID = user.CurrentVenueID
	}
	return resp
}

func decodePhotos(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var photos []string
	if err := json.Unmarshal(raw, &photos); err != nil {
		return []string{}
	}
	return photos
}
