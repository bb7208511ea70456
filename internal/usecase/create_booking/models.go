package create_booking

import "time"

// Request модель запроса на создание бронирования.
// Слот задаётся либо SlotID, либо тройкой WorkshopID + Date + Time; SlotID приоритетнее.
type Request struct {
	SlotID       string
	WorkshopID   string
	Date         string // YYYY-MM-DD
	Time         string // HH:MM
	Name         string
	Phone        string
	Messenger    string
	Participants *int // nil или < 1 означает 1
	Comment      *string
	Honeypot     string
}

// Response результат допуска заявки
type Response struct {
	ID            string
	SlotID        string
	WorkshopID    string
	Status        string
	Participants  int
	Message       string
	HoldExpiresAt *time.Time // только для PENDING_ADMIN
}

// Сообщения для клиента
const (
	MessageConfirmed = "Booking created"
	MessageOverflow  = "Столько мест в выбранном времени нет. Мы поставили холд на указанное количество мест и передали запрос администратору."
)
