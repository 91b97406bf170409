package services

import (
	"amora_backend/internal/models"
	"amora_backend/internal/repositories"
	"amora_backend/internal/services/dto"
	"amora_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ChatService interface {
	// SendMessage доступен только участникам активного матча.
	SendMessage(db *gorm.DB, senderID, matchID, body string) (*dto.MessageResponse, error)
	ListMessages(db *gorm.DB, userID, matchID string, page, pageSize int) (*dto.MessagePage, error)
	MarkAllRead(db *gorm.DB, userID, matchID string) error
	UnreadCount(db *gorm.DB, userID, matchID string) (int64, error)
}

type ChatServiceImpl struct {
	messageRepo repositories.MessageRepository
	matchSvc    MatchService
	notifier    Notifier
}

func NewChatService(messageRepo repositories.MessageRepository, matchSvc MatchService, notifier Notifier) ChatService {
	return &ChatServiceImpl{
		messageRepo: messageRepo,
		matchSvc:    matchSvc,
		notifier:    notifier,
	}
}

func (s *ChatServiceImpl) SendMessage(db *gorm.DB, senderID, matchID, body string) (*dto.MessageResponse, error) {
	match, err := s.matchSvc.GetMatch(db, senderID, matchID)
	if err != nil {
		return nil, err
	}
	if !match.IsActive {
		return nil, apperrors.ErrMatchInactive
	}

	message := &models.Message{
		MatchID:  match.ID,
		SenderID: senderID,
		Body:     body,
	}
	if err := s.messageRepo.Create(db, message); err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	resp := buildMessageResponse(message)
	s.notifier.PushToUser(match.OtherSide(senderID), "message.new", resp)
	return resp, nil
}

func (s *ChatServiceImpl) ListMessages(db *gorm.DB, userID, matchID string, page, pageSize int) (*dto.MessagePage, error) {
	match, err := s.matchSvc.GetMatch(db, userID, matchID)
	if err != nil {
		return nil, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 50
	}

	messages, err := s.messageRepo.ListByMatch(db, match.ID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}
	total, err := s.messageRepo.CountByMatch(db, match.ID)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	responses := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, *buildMessageResponse(&messages[i]))
	}

	return &dto.MessagePage{
		Messages: responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *ChatServiceImpl) MarkAllRead(db *gorm.DB, userID, matchID string) error {
	match, err := s.matchSvc.GetMatch(db, userID, matchID)
	if err != nil {
		return err
	}
	if err := s.messageRepo.MarkAllRead(db, match.ID, userID); err != nil {
		return apperrors.PersistenceError(err)
	}
	return nil
}

func (s *ChatServiceImpl) UnreadCount(db *gorm.DB, userID, matchID string) (int64, error) {
	match, err := s.matchSvc.GetMatch(db, userID, matchID)
	if err != nil {
		return 0, err
	}
	count, err := s.messageRepo.UnreadCount(db, match.ID, userID)
	if err != nil {
		return 0, apperrors.PersistenceError(err)
	}
	return count, nil
}

func buildMessageResponse(m *models.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:        m.ID,
		MatchID:   m.MatchID,
		SenderID:  m.SenderID,
		Body:      m.Body,
		ReadAt:    m.ReadAt,
		CreatedAt: m.CreatedAt,
	}
}
