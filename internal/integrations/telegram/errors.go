package telegram

import "errors"

var (
	// ErrUnauthorized возвращается при неверном токене бота
	ErrUnauthorized = errors.New("telegram client: bot token rejected")

	// ErrRateLimited возвращается при превышении лимитов Bot API
	ErrRateLimited = errors.New("telegram client: rate limited")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("telegram client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("telegram client: invalid response")
)
