// Package memstore хранилище в памяти с теми же контрактами, что и
// PostgreSQL-репозитории. Транзакции выполняются строго по одной и
// откатываются при ошибке, что повторяет блокировку строки слота.
package memstore

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

type txKey struct{}

// Store общее состояние репозиториев
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	workshops map[string]domain.Workshop
	slots     map[string]domain.Slot
	bookings  map[string]domain.Booking
	holds     map[string]domain.SeatHold

	base time.Time
	seq  int
}

type snapshot struct {
	workshops map[string]domain.Workshop
	slots     map[string]domain.Slot
	bookings  map[string]domain.Booking
	holds     map[string]domain.SeatHold
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		workshops: make(map[string]domain.Workshop),
		slots:     make(map[string]domain.Slot),
		bookings:  make(map[string]domain.Booking),
		holds:     make(map[string]domain.SeatHold),
		base:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Do выполняет fn в транзакции. Вложенный вызов присоединяется к внешней.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// AddWorkshop добавляет мастер-класс напрямую, минуя репозиторий
func (s *Store) AddWorkshop(w domain.Workshop) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w.CreatedAt, w.UpdatedAt = s.tick(), s.tick()
	s.workshops[w.ID] = w
}

// Workshops репозиторий мастер-классов
func (s *Store) Workshops() *WorkshopRepository {
	return &WorkshopRepository{s: s}
}

// Slots репозиторий слотов
func (s *Store) Slots() *SlotRepository {
	return &SlotRepository{s: s}
}

// Bookings репозиторий бронирований
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{s: s}
}

// Holds репозиторий удержаний
func (s *Store) Holds() *SeatHoldRepository {
	return &SeatHoldRepository{s: s}
}

// tick монотонное время записи, вызывается под s.mu
func (s *Store) tick() time.Time {
	s.seq++
	return s.base.Add(time.Duration(s.seq) * time.Second)
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return snapshot{
		workshops: maps.Clone(s.workshops),
		slots:     maps.Clone(s.slots),
		bookings:  maps.Clone(s.bookings),
		holds:     maps.Clone(s.holds),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.workshops = snap.workshops
	s.slots = snap.slots
	s.bookings = snap.bookings
	s.holds = snap.holds
}

func inRange(date time.Time, from, to *time.Time) bool {
	if from != nil && date.Before(*from) {
		return false
	}
	if to != nil && date.After(*to) {
		return false
	}
	return true
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
