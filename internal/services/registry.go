package services

import (
	"amora_backend/internal/email"
	"amora_backend/internal/repositories"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService      AuthService
	UserService      UserService
	SwipeService     SwipeService
	MatchService     MatchService
	VenueService     VenueService
	DiscoveryService DiscoveryService
	ChatService      ChatService
	EmailService     email.Provider
}

// NewServiceContainer собирает сервисный слой из репозиториев и
// инфраструктурных зависимостей. Notifier подключается позже, когда
// поднят WebSocket-хаб (см. SetNotifier).
func NewServiceContainer(
	userRepo repositories.UserRepository,
	swipeRepo repositories.SwipeRepository,
	matchRepo repositories.MatchRepository,
	venueRepo repositories.VenueRepository,
	messageRepo repositories.MessageRepository,
	emailProvider email.Provider,
	codeSender CodeSender,
	notifier Notifier,
) *ServiceContainer {
	if notifier == nil {
		notifier = NopNotifier{}
	}

	matchService := NewMatchService(matchRepo, swipeRepo, userRepo, messageRepo)

	return &ServiceContainer{
		AuthService:      NewAuthService(userRepo, emailProvider, codeSender),
		UserService:      NewUserService(userRepo),
		SwipeService:     NewSwipeService(swipeRepo, matchRepo, userRepo, venueRepo, notifier),
		MatchService:     matchService,
		VenueService:     NewVenueService(venueRepo, userRepo),
		DiscoveryService: NewDiscoveryService(userRepo, swipeRepo),
		ChatService:      NewChatService(messageRepo, matchService, notifier),
		EmailService:     emailProvider,
	}
}
