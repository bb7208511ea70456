package domain

import "time"

// Значения по умолчанию
const (
	DefaultWorkshopDurationMinutes = 120
	DefaultWorkshopCapacity        = 6
	DefaultParticipants            = 1
)

// Удержание мест для заявок сверх вместимости
const (
	DefaultHoldTTL     = 120 * time.Minute
	OverflowHoldReason = "overflow request"
)

// Ограничения бизнес-валидации
const (
	MinDurationMinutes  = 1
	MinCapacity         = 1
	MinParticipants     = 1
	MaxNameLength       = 200
	MaxMessengerLength  = 100
	MaxCommentLength    = 1000
	MaxWorkshopTitleLen = 200
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
