package models

import "time"

// Match - взаимная симпатия. Пара хранится канонически:
// UserAID строго меньше UserBID (лексикографически), уникальный индекс
// на паре делает создание идемпотентным даже при гонке двух лайков.
type Match struct {
	BaseModel
	UserAID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_match_pair" json:"user_a_id"`
	UserBID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_match_pair" json:"user_b_id"`
	MatchedAt time.Time `gorm:"not null" json:"matched_at"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
}

// CanonicalPair возвращает пару в каноническом порядке.
func CanonicalPair(a, b string) (userA, userB string) {
	if a < b {
		return a, b
	}
	return b, a
}

// HasParticipant reports whether the given user is one side of the match.
func (m *Match) HasParticipant(userID string) bool {
	return m.UserAID == userID || m.UserBID == userID
}

// OtherSide возвращает второго участника пары.
func (m *Match) OtherSide(userID string) string {
	if m.UserAID == userID {
		return m.UserBID
	}
	return m.UserAID
}
