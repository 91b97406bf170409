package repositories

import (
	"errors"
	"time"

	"amora_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository interface {
	Create(db *gorm.DB, message *models.Message) error
	ListByMatch(db *gorm.DB, matchID string, limit, offset int) ([]models.Message, error)
	CountByMatch(db *gorm.DB, matchID string) (int64, error)

	// MarkAllRead помечает прочитанными все чужие сообщения матча.
	MarkAllRead(db *gorm.DB, matchID, readerID string) error
	UnreadCount(db *gorm.DB, matchID, readerID string) (int64, error)
}

type MessageRepositoryImpl struct{}

func NewMessageRepository() MessageRepository {
	return &MessageRepositoryImpl{}
}

func (r *MessageRepositoryImpl) Create(db *gorm.DB, message *models.Message) error {
	return db.Create(message).Error
}

func (r *MessageRepositoryImpl) ListByMatch(db *gorm.DB, matchID string, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	err := db.Where("match_id = ?", matchID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) CountByMatch(db *gorm.DB, matchID string) (int64, error) {
	var count int64
	err := db.Model(&models.Message{}).Where("match_id = ?", matchID).Count(&count).Error
	return count, err
}

func (r *MessageRepositoryImpl) MarkAllRead(db *gorm.DB, matchID, readerID string) error {
	return db.Model(&models.Message{}).
		Where("match_id = ? AND sender_id != ? AND read_at IS NULL", matchID, readerID).
		Update("read_at", time.Now()).Error
}

func (r *MessageRepositoryImpl) UnreadCount(db *gorm.DB, matchID, readerID string) (int64, error) {
	var count int64
	err := db.Model(&models.Message{}).
		Where("match_id = ? AND sender_id != ? AND read_at IS NULL", matchID, readerID).
		Count(&count).Error
	return count, err
}
