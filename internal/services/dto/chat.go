package dto

import "time"

type SendMessageRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

type MessageResponse struct {
	ID        string     `json:"id"`
	MatchID   string     `json:"match_id"`
	SenderID  string     `json:"sender_id"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type MessagePage struct {
	Messages []MessageResponse `json:"messages"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}
