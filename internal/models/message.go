package models

import "time"

// Message - сообщение внутри активного матча.
type Message struct {
	BaseModel
	MatchID  string     `gorm:"type:uuid;not null;index" json:"match_id"`
	SenderID string     `gorm:"type:uuid;not null;index" json:"sender_id"`
	Body     string     `gorm:"type:text;not null" json:"body"`
	ReadAt   *time.Time `json:"read_at,omitempty"`
}
