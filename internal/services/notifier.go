package services

// Notifier доставляет realtime-событие подключенному пользователю.
// Реализуется ws-менеджером; сервисы не знают про транспорт.
// Доставка best-effort: оффлайн-получатель событие просто не увидит.
type Notifier interface {
	PushToUser(userID string, event string, payload interface{})
}

// NopNotifier - заглушка для тестов и окружений без realtime-канала.
type NopNotifier struct{}

func (NopNotifier) PushToUser(string, string, interface{}) {}
