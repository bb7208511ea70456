package domain

import "time"

// Workshop мастер-класс: шаблон с вместимостью и длительностью по умолчанию
type Workshop struct {
	ID              string
	Title           string
	Description     string
	DurationMinutes int
	CapacityPerSlot int
	Result          string // что участник заберёт с собой
	Price           int    // рубли
	ImageURL        *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Normalize приводит числовые поля к допустимым значениям:
// длительность и вместимость не меньше 1, цена не меньше 0
func (w *Workshop) Normalize() {
	w.DurationMinutes = ClampMin(w.DurationMinutes, MinDurationMinutes)
	w.CapacityPerSlot = ClampMin(w.CapacityPerSlot, MinCapacity)
	w.Price = ClampMin(w.Price, 0)
}

// ClampMin возвращает max(v, min)
func ClampMin(v, min int) int {
	if v < min {
		return min
	}
	return v
}
