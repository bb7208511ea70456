package list_workshops

import (
	"net/http"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
)

type Handler struct {
	service WorkshopService
	logger  Logger
}

func NewHandler(service WorkshopService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/public/workshops
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListActive(r.Context())
	if err != nil {
		h.logger.Error("GET /public/workshops - Failed to list workshops: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /public/workshops - Workshops retrieved: count=%d", len(list))
	handlers.RespondJSON(w, http.StatusOK, list)
}
