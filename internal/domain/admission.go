package domain

// DecideAdmission выбирает статус новой заявки в открытый слот.
// Заявка, помещающаяся в свободные места, подтверждается сразу,
// иначе ждёт решения администратора с удержанием мест.
func DecideAdmission(participants, freeSeats int) BookingStatus {
	if participants <= freeSeats {
		return BookingConfirmed
	}
	return BookingPendingAdmin
}
