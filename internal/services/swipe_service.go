package services

import (
	"sort"
	"time"

	"amora_backend/internal/logger"
	"amora_backend/internal/models"
	"amora_backend/internal/repositories"
	"amora_backend/internal/services/dto"
	"amora_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// SwipeService - запись направленных решений и сверка взаимных лайков.
//
// Журнал append-only; повторные свайпы по той же паре не
// дедуплицируются. Решение по открытому вопросу семантики повторов:
// ПОСЛЕДНЕЕ действие выигрывает - и проверка взаимности, и производные
// списки смотрят только на последний вердикт в каждом направлении.
type SwipeService interface {
	RecordSwipe(db *gorm.DB, actorID string, req *dto.SwipeRequest) (*dto.SwipeResult, error)

	SentLikes(db *gorm.DB, userID string) ([]dto.LikeEntry, error)
	ReceivedLikes(db *gorm.DB, userID string) ([]dto.LikeEntry, error)
	BlockedUsers(db *gorm.DB, userID string) ([]dto.BlockEntry, error)
}

type SwipeServiceImpl struct {
	swipeRepo repositories.SwipeRepository
	matchRepo repositories.MatchRepository
	userRepo  repositories.UserRepository
	venueRepo repositories.VenueRepository
	notifier  Notifier
}

func NewSwipeService(
	swipeRepo repositories.SwipeRepository,
	matchRepo repositories.MatchRepository,
	userRepo repositories.UserRepository,
	venueRepo repositories.VenueRepository,
	notifier Notifier,
) SwipeService {
	return &SwipeServiceImpl{
		swipeRepo: swipeRepo,
		matchRepo: matchRepo,
		userRepo:  userRepo,
		venueRepo: venueRepo,
		notifier:  notifier,
	}
}

// RecordSwipe сохраняет действие и, для лайка, сверяет взаимность.
//
// Порядок важен: действие пишется безусловно и первым. Если запись
// действия упала - вся операция падает, матч не создается. Если упало
// создание матча ПОСЛЕ записи лайка - свайп не считается проваленным
// (лайк записан), пара будет материализована при следующей выборке
// матчей (MatchService.ReconcileMatches).
func (s *SwipeServiceImpl) RecordSwipe(db *gorm.DB, actorID string, req *dto.SwipeRequest) (*dto.SwipeResult, error) {
	kind := models.SwipeActionKind(req.Action)

	// Вся валидация - до первой записи
	if !kind.IsValid() {
		return nil, apperrors.ErrInvalidSwipeAction
	}
	if actorID == req.TargetID {
		return nil, apperrors.ErrSelfSwipe
	}
	if _, err := s.userRepo.FindByID(db, req.TargetID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.PersistenceError(err)
	}
	if req.VenueID != nil {
		if _, err := s.venueRepo.FindByID(db, *req.VenueID); err != nil {
			if apperrors.Is(err, repositories.ErrVenueNotFound) {
				return nil, apperrors.ErrVenueNotFound
			}
			return nil, apperrors.PersistenceError(err)
		}
	}

	action := &models.SwipeAction{
		FromUserID: actorID,
		ToUserID:   req.TargetID,
		Action:     kind,
		VenueID:    req.VenueID,
	}
	if err := s.swipeRepo.Append(db, action); err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	if kind != models.SwipeLike {
		// pass/block: только журнал, никаких матчей.
		// Блокировку лента кандидатов отфильтрует на чтении.
		return &dto.SwipeResult{Outcome: dto.OutcomeRecorded}, nil
	}

	return s.checkReciprocity(db, actorID, req.TargetID)
}

// checkReciprocity смотрит последний вердикт цели в сторону актора.
func (s *SwipeServiceImpl) checkReciprocity(db *gorm.DB, actorID, targetID string) (*dto.SwipeResult, error) {
	reverse, err := s.swipeRepo.LatestAction(db, targetID, actorID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSwipeNotFound) {
			return &dto.SwipeResult{Outcome: dto.OutcomeRecorded}, nil
		}
		// Лайк уже записан: не превращаем сбой сверки в провал свайпа
		logger.Warn("reciprocity check failed, like stands", "actor", actorID, "target", targetID, "error", err)
		return &dto.SwipeResult{Outcome: dto.OutcomeRecorded}, nil
	}
	if reverse.Action != models.SwipeLike {
		return &dto.SwipeResult{Outcome: dto.OutcomeRecorded}, nil
	}

	match, created, err := s.matchRepo.GetOrCreate(db, actorID, targetID, time.Now())
	if err != nil {
		// Лайк записан, пара останется несверенной до следующего
		// ReconcileMatches - это штатное восстановимое состояние.
		logger.Warn("match creation failed after recorded like", "actor", actorID, "target", targetID, "error", err)
		return &dto.SwipeResult{Outcome: dto.OutcomeRecorded}, nil
	}

	outcome := dto.OutcomeAlreadyMatched
	if created {
		outcome = dto.OutcomeMatched
		s.notifyMatchFormed(db, match, actorID)
	}

	return &dto.SwipeResult{
		Outcome: outcome,
		Match: &dto.MatchResponse{
			ID:        match.ID,
			MatchedAt: match.MatchedAt,
			IsActive:  match.IsActive,
		},
	}, nil
}

// notifyMatchFormed шлет событие второй стороне пары.
func (s *SwipeServiceImpl) notifyMatchFormed(db *gorm.DB, match *models.Match, actorID string) {
	otherID := match.OtherSide(actorID)

	payload := map[string]interface{}{
		"match_id":   match.ID,
		"matched_at": match.MatchedAt,
	}
	if actor, err := s.userRepo.FindByID(db, actorID); err == nil {
		payload["other_user"] = BuildUserResponse(actor, false)
	}
	s.notifier.PushToUser(otherID, "match.formed", payload)
}

// --- Производные списки: чистая рекомпутация над журналом ---

// SentLikes - лайки пользователя, на которые цель еще никак не ответила.
func (s *SwipeServiceImpl) SentLikes(db *gorm.DB, userID string) ([]dto.LikeEntry, error) {
	outgoing, err := s.swipeRepo.ActionsByActor(db, userID)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}
	incoming, err := s.swipeRepo.ActionsByTarget(db, userID)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	latestOut := latestPerCounterpart(outgoing, counterpartTarget)
	responded := make(map[string]bool, len(incoming))
	for _, a := range incoming {
		responded[a.FromUserID] = true
	}

	var entries []dto.LikeEntry
	for targetID, action := range latestOut {
		if action.Action != models.SwipeLike || responded[targetID] {
			continue
		}
		user, err := s.userRepo.FindByID(db, targetID)
		if err != nil {
			continue // цель могла быть удалена, список не ломаем
		}
		entries = append(entries, dto.LikeEntry{
			User:    BuildUserResponse(user, false),
			LikedAt: action.CreatedAt,
		})
	}
	sortLikeEntries(entries)
	return entries, nil
}

// ReceivedLikes - входящие лайки, на которые пользователь еще не ответил.
func (s *SwipeServiceImpl) ReceivedLikes(db *gorm.DB, userID string) ([]dto.LikeEntry, error) {
	incoming, err := s.swipeRepo.ActionsByTarget(db, userID)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}
	outgoing, err := s.swipeRepo.ActionsByActor(db, userID)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	latestIn := latestPerCounterpart(incoming, counterpartActor)
	answered := make(map[string]bool, len(outgoing))
	for _, a := range outgoing {
		answered[a.ToUserID] = true
	}

	var entries []dto.LikeEntry
	for senderID, action := range latestIn {
		if action.Action != models.SwipeLike || answered[senderID] {
			continue
		}
		user, err := s.userRepo.FindByID(db, senderID)
		if err != nil {
			continue
		}
		entries = append(entries, dto.LikeEntry{
			User:    BuildUserResponse(user, false),
			LikedAt: action.CreatedAt,
		})
	}
	sortLikeEntries(entries)
	return entries, nil
}

// BlockedUsers - цели, последний вердикт по которым - block.
func (s *SwipeServiceImpl) BlockedUsers(db *gorm.DB, userID string) ([]dto.BlockEntry, error) {
	outgoing, err := s.swipeRepo.ActionsByActor(db, userID)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	latestOut := latestPerCounterpart(outgoing, counterpartTarget)

	var entries []dto.BlockEntry
	for targetID, action := range latestOut {
		if action.Action != models.SwipeBlock {
			continue
		}
		entries = append(entries, dto.BlockEntry{
			UserID:    targetID,
			BlockedAt: action.CreatedAt,
		})
	}
	return entries, nil
}

// --- Хелперы сверки журнала ---

func counterpartTarget(a *models.SwipeAction) string { return a.ToUserID }
func counterpartActor(a *models.SwipeAction) string  { return a.FromUserID }

// latestPerCounterpart сворачивает журнал (отсортированный новые-первыми)
// в последнее действие по каждому контрагенту.
func latestPerCounterpart(actions []models.SwipeAction, key func(*models.SwipeAction) string) map[string]*models.SwipeAction {
	latest := make(map[string]*models.SwipeAction)
	for i := range actions {
		k := key(&actions[i])
		if _, seen := latest[k]; !seen {
			latest[k] = &actions[i]
		}
	}
	return latest
}

// новые лайки первыми
func sortLikeEntries(entries []dto.LikeEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LikedAt.After(entries[j].LikedAt)
	})
}
