package ws

import (
	"sync"

	"amora_backend/internal/logger"
	"amora_backend/internal/repositories"

	"gorm.io/gorm"
)

// Event - исходящее событие для клиента.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// WebSocketManager ведет реестр подключенных клиентов и обновляет
// онлайн-статус в БД. Реализует services.Notifier.
type WebSocketManager struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex

	db       *gorm.DB
	userRepo repositories.UserRepository
}

func NewWebSocketManager(db *gorm.DB, userRepo repositories.UserRepository) *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		db:         db,
		userRepo:   userRepo,
	}
}

func (manager *WebSocketManager) Run() {
	for {
		select {
		case client := <-manager.register:
			manager.mu.Lock()
			// Повторное подключение вытесняет старый сокет
			if old, ok := manager.clients[client.ID]; ok {
				close(old.Send)
			}
			manager.clients[client.ID] = client
			total := len(manager.clients)
			manager.mu.Unlock()

			manager.setOnline(client.ID, true)
			logger.Info("ws client registered", "user_id", client.ID, "total", total)

		case client := <-manager.unregister:
			manager.mu.Lock()
			current, ok := manager.clients[client.ID]
			if ok && current == client {
				close(client.Send)
				delete(manager.clients, client.ID)
			}
			total := len(manager.clients)
			manager.mu.Unlock()

			if ok && current == client {
				manager.setOnline(client.ID, false)
				logger.Info("ws client unregistered", "user_id", client.ID, "total", total)
			}
		}
	}
}

// PushToUser доставляет событие пользователю, если тот подключен.
// Отсутствие подключения не ошибка: доставка best-effort.
func (manager *WebSocketManager) PushToUser(userID string, event string, payload interface{}) {
	manager.mu.RLock()
	client, ok := manager.clients[userID]
	manager.mu.RUnlock()

	if !ok {
		return
	}

	select {
	case client.Send <- Event{Type: event, Payload: payload}:
	default:
		// Канал заполнен - клиент не читает, отключаем
		logger.Warn("ws send buffer full, dropping client", "user_id", userID)
		go func() {
			manager.unregister <- client
		}()
	}
}

// GetClientCount возвращает количество подключенных клиентов
func (manager *WebSocketManager) GetClientCount() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.clients)
}

// IsClientConnected проверяет, подключен ли клиент
func (manager *WebSocketManager) IsClientConnected(userID string) bool {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	_, exists := manager.clients[userID]
	return exists
}

func (manager *WebSocketManager) setOnline(userID string, online bool) {
	if err := manager.userRepo.SetOnline(manager.db, userID, online); err != nil {
		logger.Warn("failed to update online status", "user_id", userID, "error", err)
	}
	if online {
		if err := manager.userRepo.UpdateLastActive(manager.db, userID); err != nil {
			logger.Warn("failed to update last active", "user_id", userID, "error", err)
		}
	}
}
