package dto

import "time"

type MatchResponse struct {
	ID          string        `json:"id"`
	MatchedAt   time.Time     `json:"matched_at"`
	IsActive    bool          `json:"is_active"`
	OtherUser   *UserResponse `json:"other_user,omitempty"`
	UnreadCount int64         `json:"unread_count"`
}
