package repositories

import (
	"errors"

	"amora_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSwipeNotFound = errors.New("swipe action not found")

// SwipeRepository - доступ к append-only журналу свайпов.
// Журнал не дедуплицируется: одна пара может встречаться много раз,
// актуальным считается последнее действие.
type SwipeRepository interface {
	Append(db *gorm.DB, action *models.SwipeAction) error

	// LatestAction возвращает последнее действие from -> to,
	// ErrSwipeNotFound если действий не было.
	LatestAction(db *gorm.DB, fromID, toID string) (*models.SwipeAction, error)

	// ActionsByActor - весь журнал действий пользователя (новые первыми).
	ActionsByActor(db *gorm.DB, userID string) ([]models.SwipeAction, error)

	// ActionsByTarget - все действия, направленные на пользователя (новые первыми).
	ActionsByTarget(db *gorm.DB, userID string) ([]models.SwipeAction, error)

	// SwipedTargetIDs - все id, по которым пользователь уже выносил вердикт.
	SwipedTargetIDs(db *gorm.DB, userID string) ([]string, error)
}

type SwipeRepositoryImpl struct{}

func NewSwipeRepository() SwipeRepository {
	return &SwipeRepositoryImpl{}
}

func (r *SwipeRepositoryImpl) Append(db *gorm.DB, action *models.SwipeAction) error {
	return db.Create(action).Error
}

func (r *SwipeRepositoryImpl) LatestAction(db *gorm.DB, fromID, toID string) (*models.SwipeAction, error) {
	var action models.SwipeAction
	err := db.Where("from_user_id = ? AND to_user_id = ?", fromID, toID).
		Order("created_at DESC").
		First(&action).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSwipeNotFound
		}
		return nil, err
	}
	return &action, nil
}

func (r *SwipeRepositoryImpl) ActionsByActor(db *gorm.DB, userID string) ([]models.SwipeAction, error) {
	var actions []models.SwipeAction
	err := db.Where("from_user_id = ?", userID).
		Order("created_at DESC").
		Find(&actions).Error
	return actions, err
}

func (r *SwipeRepositoryImpl) ActionsByTarget(db *gorm.DB, userID string) ([]models.SwipeAction, error) {
	var actions []models.SwipeAction
	err := db.Where("to_user_id = ?", userID).
		Order("created_at DESC").
		Find(&actions).Error
	return actions, err
}

func (r *SwipeRepositoryImpl) SwipedTargetIDs(db *gorm.DB, userID string) ([]string, error) {
	var ids []string
	err := db.Model(&models.SwipeAction{}).
		Where("from_user_id = ?", userID).
		Distinct("to_user_id").
		Pluck("to_user_id", &ids).Error
	return ids, err
}
