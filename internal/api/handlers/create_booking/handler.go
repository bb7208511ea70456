package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidRequest     = "Invalid request"
	msgWorkshopNotFound   = "Workshop not found"
	msgSlotNotFound       = "Slot not found"
	msgSlotUnavailable    = "Slot is not available for booking"
	msgSlotCancelled      = "Slot is cancelled"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/public/bookings
// 201 если мест хватило, 202 если заявка ушла на рассмотрение администратору
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /public/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		var validationErr *createBooking.ValidationError

		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /public/bookings - Validation failed: %v", err)
			handlers.RespondValidationError(w, validationErr.Fields)

		case errors.Is(err, createBooking.ErrSpamDetected):
			h.logger.Warn("POST /public/bookings - Honeypot filled: remote=%s", r.RemoteAddr)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, createBooking.ErrWorkshopNotFound):
			h.logger.Warn("POST /public/bookings - Workshop not found: workshop_id=%s", req.WorkshopID)
			handlers.RespondNotFound(w, msgWorkshopNotFound)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /public/bookings - Slot not found: slot_id=%s", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /public/bookings - Slot on hold: slot_id=%s, workshop_id=%s", req.SlotID, req.WorkshopID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrSlotCancelled):
			h.logger.Warn("POST /public/bookings - Slot cancelled: slot_id=%s, workshop_id=%s", req.SlotID, req.WorkshopID)
			handlers.RespondConflict(w, msgSlotCancelled)

		default:
			h.logger.Error("POST /public/bookings - Failed to create booking: slot_id=%s, workshop_id=%s, error=%v",
				req.SlotID, req.WorkshopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.Status == string(domain.BookingPendingAdmin) {
		status = http.StatusAccepted
	}

	h.logger.Info("POST /public/bookings - Booking admitted: booking_id=%s, slot_id=%s, status=%s",
		result.ID, result.SlotID, result.Status)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
