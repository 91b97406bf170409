package handlers

import (
	"amora_backend/internal/services"
	"amora_backend/internal/validator"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler      *AuthHandler
	UserHandler      *UserHandler
	SwipeHandler     *SwipeHandler
	MatchHandler     *MatchHandler
	VenueHandler     *VenueHandler
	DiscoveryHandler *DiscoveryHandler
	ChatHandler      *ChatHandler
}

// NewAppHandlers собирает хэндлеры поверх сервисного слоя.
func NewAppHandlers(container *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:      NewAuthHandler(base, container.AuthService),
		UserHandler:      NewUserHandler(base, container.UserService),
		SwipeHandler:     NewSwipeHandler(base, container.SwipeService),
		MatchHandler:     NewMatchHandler(base, container.MatchService),
		VenueHandler:     NewVenueHandler(base, container.VenueService),
		DiscoveryHandler: NewDiscoveryHandler(base, container.DiscoveryService),
		ChatHandler:      NewChatHandler(base, container.ChatService),
	}
}
