package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_available_slots"
)

const (
	msgMissingWorkshopID = "workshopId is required"
	msgInvalidDate       = "Invalid date, expected YYYY-MM-DD"
	msgInvalidRange      = "dateTo must not be before dateFrom"
	msgWorkshopNotFound  = "Workshop not found"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/public/slots
// Query params: workshopId (required), dateFrom, dateTo (YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Занятость меняется каждую минуту, кэшировать нельзя
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")

	workshopID := r.URL.Query().Get("workshopId")
	if workshopID == "" {
		h.logger.Warn("GET /public/slots - Missing workshop ID")
		handlers.RespondBadRequest(w, msgMissingWorkshopID)
		return
	}

	dateFrom, err := handlers.ParseDateQuery(r, "dateFrom")
	if err != nil {
		h.logger.Warn("GET /public/slots - Invalid dateFrom: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	dateTo, err := handlers.ParseDateQuery(r, "dateTo")
	if err != nil {
		h.logger.Warn("GET /public/slots - Invalid dateTo: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		WorkshopID: workshopID,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrWorkshopNotFound):
			h.logger.Warn("GET /public/slots - Workshop not found: workshop_id=%s", workshopID)
			handlers.RespondNotFound(w, msgWorkshopNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /public/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /public/slots - Failed to get slots: workshop_id=%s, error=%v", workshopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /public/slots - Slots retrieved successfully: workshop_id=%s, slots_count=%d",
		workshopID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
