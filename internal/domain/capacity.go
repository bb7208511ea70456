package domain

// SlotAvailability занятость слота
type SlotAvailability struct {
	SlotID      string
	Capacity    int
	BookedSeats int // сумма участников CONFIRMED
	HeldSeats   int // сумма мест активных неистёкших удержаний
	FreeSeats   int
}

// ComputeAvailability считает свободные места: max(0, capacity - booked - held)
func ComputeAvailability(slotID string, capacity, booked, held int) SlotAvailability {
	free := capacity - booked - held
	if free < 0 {
		free = 0
	}
	return SlotAvailability{
		SlotID:      slotID,
		Capacity:    capacity,
		BookedSeats: booked,
		HeldSeats:   held,
		FreeSeats:   free,
	}
}

// Oversubscribed занято больше мест, чем вместимость
func (a SlotAvailability) Oversubscribed() bool {
	return a.BookedSeats+a.HeldSeats > a.Capacity
}
