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

// DiscoveryService - лента кандидатов. Исключаются: сам пользователь,
// все, по кому уже есть вердикт (любого вида), и обе стороны блокировок.
type DiscoveryService interface {
	Candidates(db *gorm.DB, userID string, query *dto.DiscoveryQuery) ([]dto.Candidate, error)
}

type DiscoveryServiceImpl struct {
	userRepo  repositories.UserRepository
	swipeRepo repositories.SwipeRepository
}

func NewDiscoveryService(userRepo repositories.UserRepository, swipeRepo repositories.SwipeRepository) DiscoveryService {
	return &DiscoveryServiceImpl{userRepo: userRepo, swipeRepo: swipeRepo}
}

func (s *DiscoveryServiceImpl) Candidates(db *gorm.DB, userID string, query *dto.DiscoveryQuery) ([]dto.Candidate, error) {
	viewer, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.PersistenceError(err)
	}

	exclude, err := s.buildExclusions(db, userID)
	if err != nil {
		return nil, err
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}

	users, err := s.userRepo.FindCandidates(db, repositories.CandidateFilter{
		ExcludeIDs: exclude,
		Gender:     models.Gender(query.Gender),
		VenueID:    query.VenueID,
		Limit:      limit,
	})
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	candidates := make([]dto.Candidate, 0, len(users))
	for i := range users {
		u := &users[i]
		c := dto.Candidate{User: BuildUserResponse(u, false)}

		if viewer.Latitude != nil && viewer.Longitude != nil && u.Latitude != nil && u.Longitude != nil {
			d := geo.Distance(*viewer.Latitude, *viewer.Longitude, *u.Latitude, *u.Longitude)
			if query.MaxDistanceM > 0 && d > query.MaxDistanceM {
				continue
			}
			rounded := geo.RoundMeters(d)
			c.DistanceM = &rounded
		}
		candidates = append(candidates, c)
	}

	// Кандидаты с известным расстоянием - ближайшие первыми, без
	// координат - в хвост (порядок из репозитория сохраняется).
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].DistanceM, candidates[j].DistanceM
		if di == nil {
			return false
		}
		if dj == nil {
			return true
		}
		return *di < *dj
	})

	return candidates, nil
}

// buildExclusions собирает id, которые не должны попасть в ленту.
func (s *DiscoveryServiceImpl) buildExclusions(db *gorm.DB, userID string) ([]string, error) {
	exclude := []string{userID}

	// Уже просмотренные (любой вердикт, включая исторические)
	swiped, err := s.swipeRepo.SwipedTargetIDs(db, userID)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}
	exclude = append(exclude, swiped...)

	// Те, чей последний вердикт в мою сторону - block
	incoming, err := s.swipeRepo.ActionsByTarget(db, userID)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}
	latestIn := latestPerCounterpart(incoming, counterpartActor)
	for senderID, action := range latestIn {
		if action.Action == models.SwipeBlock {
			exclude = append(exclude, senderID)
		}
	}

	return exclude, nil
}
