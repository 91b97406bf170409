package repositories

import (
	"errors"
	"time"

	"amora_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	// GetOrCreate материализует матч для неупорядоченной пары.
	// Возвращает created=false, если матч уже существовал (в том числе
	// когда второй участник гонки влетел в уникальный индекс).
	GetOrCreate(db *gorm.DB, userA, userB string, matchedAt time.Time) (*models.Match, bool, error)

	FindByID(db *gorm.DB, id string) (*models.Match, error)
	FindByPair(db *gorm.DB, userA, userB string) (*models.Match, error)
	ListForUser(db *gorm.DB, userID string, activeOnly bool) ([]models.Match, error)
	Deactivate(db *gorm.DB, id string) error
}

type MatchRepositoryImpl struct{}

func NewMatchRepository() MatchRepository {
	return &MatchRepositoryImpl{}
}

func (r *MatchRepositoryImpl) GetOrCreate(db *gorm.DB, userA, userB string, matchedAt time.Time) (*models.Match, bool, error) {
	a, b := models.CanonicalPair(userA, userB)

	existing, err := r.FindByPair(db, a, b)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrMatchNotFound) {
		return nil, false, err
	}

	match := &models.Match{
		UserAID:   a,
		UserBID:   b,
		MatchedAt: matchedAt,
		IsActive:  true,
	}
	if err := db.Create(match).Error; err != nil {
		// Гонка двух одновременных взаимных лайков: оба читают "матча нет",
		// оба пишут. Второго останавливает уникальный индекс - перечитываем
		// и отдаем строку победителя.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, ferr := r.FindByPair(db, a, b)
			if ferr != nil {
				return nil, false, ferr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return match, true, nil
}

func (r *MatchRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Match, error) {
	var match models.Match
	err := db.First(&match, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *MatchRepositoryImpl) FindByPair(db *gorm.DB, userA, userB string) (*models.Match, error) {
	a, b := models.CanonicalPair(userA, userB)

	var match models.Match
	err := db.First(&match, "user_a_id = ? AND user_b_id = ?", a, b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *MatchRepositoryImpl) ListForUser(db *gorm.DB, userID string, activeOnly bool) ([]models.Match, error) {
	var matches []models.Match
	query := db.Where("user_a_id = ? OR user_b_id = ?", userID, userID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("matched_at DESC").Find(&matches).Error
	return matches, err
}

func (r *MatchRepositoryImpl) Deactivate(db *gorm.DB, id string) error {
	result := db.Model(&models.Match{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active":  false,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMatchNotFound
	}
	return nil
}
