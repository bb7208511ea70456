package notifications

import "context"

// Publisher публикует события бронирований в брокер
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// Messenger отправляет текстовые уведомления администратору студии
type Messenger interface {
	SendMessage(ctx context.Context, text string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
