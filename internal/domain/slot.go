package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// SlotStatus статус слота
type SlotStatus string

const (
	SlotOpen      SlotStatus = "OPEN"
	SlotHeld      SlotStatus = "HELD"
	SlotCancelled SlotStatus = "CANCELLED"
)

// ParseSlotStatus проверяет строковый статус слота
func ParseSlotStatus(s string) (SlotStatus, error) {
	switch status := SlotStatus(s); status {
	case SlotOpen, SlotHeld, SlotCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSlotStatus, s)
	}
}

// Slot конкретное занятие мастер-класса в дату и время.
// Уникален по (WorkshopID, Date, Time).
type Slot struct {
	ID              string
	WorkshopID      string
	Date            time.Time // только дата, UTC
	Time            types.TimeString
	Capacity        int
	DurationMinutes int
	Status          SlotStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SlotKey естественный ключ слота
type SlotKey struct {
	WorkshopID string
	Date       time.Time
	Time       types.TimeString
}

// Key возвращает естественный ключ слота
func (s *Slot) Key() SlotKey {
	return SlotKey{WorkshopID: s.WorkshopID, Date: s.Date, Time: s.Time}
}

// StartAt локальное время начала в формате "2006-01-02T15:04:00"
func (s *Slot) StartAt() string {
	return s.Date.Format(DateFormat) + "T" + s.Time.String() + ":00"
}

// NewSlotForWorkshop создаёт открытый слот с параметрами мастер-класса по умолчанию
func NewSlotForWorkshop(id string, w *Workshop, date time.Time, t types.TimeString) *Slot {
	return &Slot{
		ID:              id,
		WorkshopID:      w.ID,
		Date:            date,
		Time:            t,
		Capacity:        ClampMin(w.CapacityPerSlot, MinCapacity),
		DurationMinutes: ClampMin(w.DurationMinutes, MinDurationMinutes),
		Status:          SlotOpen,
	}
}

// CheckAdmissible проверяет, принимает ли слот заявки.
// Статус проверяется до расчёта мест.
func (s *Slot) CheckAdmissible() error {
	switch s.Status {
	case SlotOpen:
		return nil
	case SlotHeld:
		return ErrSlotUnavailable
	case SlotCancelled:
		return ErrSlotCancelled
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSlotStatus, s.Status)
	}
}

// Hold замораживает слот: OPEN -> HELD. Повторный вызов ничего не меняет.
func (s *Slot) Hold() (bool, error) {
	switch s.Status {
	case SlotHeld:
		return false, nil
	case SlotOpen:
		s.Status = SlotHeld
		return true, nil
	default:
		return false, fmt.Errorf("%w: slot %s -> %s", ErrInvalidTransition, s.Status, SlotHeld)
	}
}

// Unhold размораживает слот: HELD -> OPEN. Повторный вызов ничего не меняет.
func (s *Slot) Unhold() (bool, error) {
	switch s.Status {
	case SlotOpen:
		return false, nil
	case SlotHeld:
		s.Status = SlotOpen
		return true, nil
	default:
		return false, fmt.Errorf("%w: slot %s -> %s", ErrInvalidTransition, s.Status, SlotOpen)
	}
}

// Cancel отменяет слот из любого статуса
func (s *Slot) Cancel() bool {
	if s.Status == SlotCancelled {
		return false
	}
	s.Status = SlotCancelled
	return true
}

// SetStatus прямое изменение статуса администратором
func (s *Slot) SetStatus(status SlotStatus) (bool, error) {
	if _, err := ParseSlotStatus(string(status)); err != nil {
		return false, err
	}
	if s.Status == status {
		return false, nil
	}
	s.Status = status
	return true, nil
}

// SlotFilter фильтр для выборки слотов
type SlotFilter struct {
	WorkshopID *string
	DateFrom   *time.Time // включительно
	DateTo     *time.Time // включительно
}
