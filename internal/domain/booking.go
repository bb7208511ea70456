package domain

import (
	"fmt"
	"time"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	BookingConfirmed    BookingStatus = "CONFIRMED"
	BookingPendingAdmin BookingStatus = "PENDING_ADMIN"
	BookingRejected     BookingStatus = "REJECTED"
	BookingCancelled    BookingStatus = "CANCELLED"
)

// ParseBookingStatus проверяет строковый статус бронирования
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch status := BookingStatus(s); status {
	case BookingConfirmed, BookingPendingAdmin, BookingRejected, BookingCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidBookingStatus, s)
	}
}

// Booking заявка на участие в слоте. Participants не меняется после создания.
type Booking struct {
	ID           string
	WorkshopID   string
	SlotID       string
	Name         string
	Phone        string // +7XXXXXXXXXX
	Messenger    string
	Participants int
	Comment      *string
	Status       BookingStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OccupiesSeats занимает ли бронирование места в слоте.
// PENDING_ADMIN занимает места только через удержание.
func (b *Booking) OccupiesSeats() bool {
	return b.Status == BookingConfirmed
}

// BookingAction действие администратора над бронированием
type BookingAction string

const (
	ActionApprove BookingAction = "approve"
	ActionReject  BookingAction = "reject"
	ActionConfirm BookingAction = "confirm"
	ActionCancel  BookingAction = "cancel"
)

// Transition результат применения действия к бронированию
type Transition struct {
	Action BookingAction
	From   BookingStatus
	To     BookingStatus
	// Changed false означает идемпотентный повтор: статус уже целевой
	Changed bool
	// ReleaseHold удержание мест бронирования нужно снять в той же транзакции
	ReleaseHold bool
}

// bookingTransitions допустимые исходные статусы для каждого действия
var bookingTransitions = map[BookingAction]struct {
	target  BookingStatus
	allowed []BookingStatus
}{
	ActionApprove: {target: BookingConfirmed, allowed: []BookingStatus{BookingPendingAdmin}},
	ActionReject:  {target: BookingRejected, allowed: []BookingStatus{BookingPendingAdmin}},
	ActionConfirm: {target: BookingConfirmed, allowed: []BookingStatus{BookingPendingAdmin, BookingRejected, BookingCancelled}},
	ActionCancel:  {target: BookingCancelled, allowed: []BookingStatus{BookingConfirmed, BookingPendingAdmin}},
}

// Apply единственная точка смены статуса бронирования.
// Любой уход из PENDING_ADMIN требует снять удержание мест.
func (b *Booking) Apply(action BookingAction) (Transition, error) {
	rule, ok := bookingTransitions[action]
	if !ok {
		return Transition{}, fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
	}

	tr := Transition{Action: action, From: b.Status, To: rule.target}

	if b.Status == rule.target {
		return tr, nil
	}

	for _, from := range rule.allowed {
		if b.Status == from {
			tr.Changed = true
			tr.ReleaseHold = from == BookingPendingAdmin
			b.Status = rule.target
			return tr, nil
		}
	}

	return Transition{}, fmt.Errorf("%w: booking %s -> %s (%s)", ErrInvalidTransition, b.Status, rule.target, action)
}

// BookingFilter фильтр списка бронирований для администратора
type BookingFilter struct {
	WorkshopID *string
	Status     *BookingStatus
	DateFrom   *time.Time // по дате слота, включительно
	DateTo     *time.Time
}
