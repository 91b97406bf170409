package models

// SwipeAction - одно направленное решение (like/pass/block) одного
// пользователя по отношению к другому. Журнал append-only: уникальности
// на (from, to) нет намеренно, производные выборки берут последнее
// действие по паре.
type SwipeAction struct {
	BaseModel
	FromUserID string          `gorm:"type:uuid;not null;index:idx_swipe_pair" json:"from_user_id"`
	ToUserID   string          `gorm:"type:uuid;not null;index:idx_swipe_pair;index" json:"to_user_id"`
	Action     SwipeActionKind `gorm:"type:varchar(10);not null" json:"action"`
	VenueID    *string         `gorm:"type:uuid" json:"venue_id,omitempty"`
}
