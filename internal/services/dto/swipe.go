package dto

import "time"

// SwipeOutcome - исход записи свайпа. Теговый вариант вместо булевых
// флагов: идемпотентный повтор различим от первого срабатывания.
type SwipeOutcome string

const (
	OutcomeRecorded       SwipeOutcome = "recorded"
	OutcomeMatched        SwipeOutcome = "matched"
	OutcomeAlreadyMatched SwipeOutcome = "already_matched"
)

type SwipeRequest struct {
	TargetID string  `json:"target_id" validate:"required,uuid"`
	Action   string  `json:"action" validate:"required,is-swipe-action"`
	VenueID  *string `json:"venue_id" validate:"omitempty,uuid"`
}

type SwipeResult struct {
	Outcome SwipeOutcome   `json:"outcome"`
	Match   *MatchResponse `json:"match,omitempty"`
}

// LikeEntry - элемент списков "отправленные"/"полученные" лайки.
type LikeEntry struct {
	User    *UserResponse `json:"user"`
	LikedAt time.Time     `json:"liked_at"`
}

// BlockEntry - элемент списка блокировок.
type BlockEntry struct {
	UserID    string    `json:"user_id"`
	BlockedAt time.Time `json:"blocked_at"`
}
