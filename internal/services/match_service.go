package services

import (
	"amora_backend/internal/logger"
	"amora_backend/internal/models"
	"amora_backend/internal/repositories"
	"amora_backend/internal/services/dto"
	"amora_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type MatchService interface {
	// ListMatches сначала прогоняет сверку журнала (ReconcileMatches),
	// поэтому взаимный лайк без материализованного матча - это
	// состояние, которое чинится на первом же чтении.
	ListMatches(db *gorm.DB, userID string) ([]dto.MatchResponse, error)

	GetMatch(db *gorm.DB, userID, matchID string) (*models.Match, error)
	Unmatch(db *gorm.DB, userID, matchID string) error

	// ReconcileMatches идемпотентно материализует матчи для всех
	// взаимных лайков пользователя, не имеющих строки Match.
	ReconcileMatches(db *gorm.DB, userID string) error
}

type MatchServiceImpl struct {
	matchRepo   repositories.MatchRepository
	swipeRepo   repositories.SwipeRepository
	userRepo    repositories.UserRepository
	messageRepo repositories.MessageRepository
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	swipeRepo repositories.SwipeRepository,
	userRepo repositories.UserRepository,
	messageRepo repositories.MessageRepository,
) MatchService {
	return &MatchServiceImpl{
		matchRepo:   matchRepo,
		swipeRepo:   swipeRepo,
		userRepo:    userRepo,
		messageRepo: messageRepo,
	}
}

func (s *MatchServiceImpl) ListMatches(db *gorm.DB, userID string) ([]dto.MatchResponse, error) {
	if err := s.ReconcileMatches(db, userID); err != nil {
		// Сверка не должна валить выборку: отдаем то, что есть
		logger.Warn("match reconciliation failed", "user_id", userID, "error", err)
	}

	matches, err := s.matchRepo.ListForUser(db, userID, true)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	responses := make([]dto.MatchResponse, 0, len(matches))
	for i := range matches {
		responses = append(responses, *s.buildMatchResponse(db, &matches[i], userID))
	}
	return responses, nil
}

func (s *MatchServiceImpl) GetMatch(db *gorm.DB, userID, matchID string) (*models.Match, error) {
	match, err := s.matchRepo.FindByID(db, matchID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrMatchNotFound) {
			return nil, apperrors.ErrMatchNotFound
		}
		return nil, apperrors.PersistenceError(err)
	}
	if !match.HasParticipant(userID) {
		return nil, apperrors.ErrNotMatchParticipant
	}
	return match, nil
}

func (s *MatchServiceImpl) Unmatch(db *gorm.DB, userID, matchID string) error {
	match, err := s.GetMatch(db, userID, matchID)
	if err != nil {
		return err
	}
	if !match.IsActive {
		return nil // уже расформирован, повтор - no-op
	}
	if err := s.matchRepo.Deactivate(db, match.ID); err != nil {
		return apperrors.PersistenceError(err)
	}
	return nil
}

func (s *MatchServiceImpl) ReconcileMatches(db *gorm.DB, userID string) error {
	outgoing, err := s.swipeRepo.ActionsByActor(db, userID)
	if err != nil {
		return apperrors.PersistenceError(err)
	}
	incoming, err := s.swipeRepo.ActionsByTarget(db, userID)
	if err != nil {
		return apperrors.PersistenceError(err)
	}

	latestOut := latestPerCounterpart(outgoing, counterpartTarget)
	latestIn := latestPerCounterpart(incoming, counterpartActor)

	for otherID, out := range latestOut {
		if out.Action != models.SwipeLike {
			continue
		}
		in, ok := latestIn[otherID]
		if !ok || in.Action != models.SwipeLike {
			continue
		}
		// Взаимный лайк: get-or-create на канонической паре.
		// MatchedAt - момент более позднего из двух лайков.
		matchedAt := out.CreatedAt
		if in.CreatedAt.After(matchedAt) {
			matchedAt = in.CreatedAt
		}
		if _, _, err := s.matchRepo.GetOrCreate(db, userID, otherID, matchedAt); err != nil {
			return apperrors.PersistenceError(err)
		}
	}
	return nil
}

func (s *MatchServiceImpl) buildMatchResponse(db *gorm.DB, match *models.Match, viewerID string) *dto.MatchResponse {
	resp := &dto.MatchResponse{
		ID:        match.ID,
		MatchedAt: match.MatchedAt,
		IsActive:  match.IsActive,
	}

	otherID := match.OtherSide(viewerID)
	if other, err := s.userRepo.FindByID(db, otherID); err == nil {
		resp.OtherUser = BuildUserResponse(other, false)
	}
	if unread, err := s.messageRepo.UnreadCount(db, match.ID, viewerID); err == nil {
		resp.UnreadCount = unread
	}
	return resp
}
