package admin_slots

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/service/slots"
	"github.com/m04kA/SMC-StudioBooking/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidDate        = "Invalid date, expected YYYY-MM-DD"
	msgInvalidInput       = "Invalid slot data"
	msgSlotNotFound       = "Slot not found"
	msgWorkshopNotFound   = "Workshop not found"
	msgInvalidTransition  = "Slot status does not allow this action"
)

// Handler управление расписанием слотов
type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/admin/slots?workshopId=&dateFrom=&dateTo=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	dateFrom, err := handlers.ParseDateQuery(r, "dateFrom")
	if err != nil {
		h.logger.Warn("GET /admin/slots - Invalid dateFrom: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	dateTo, err := handlers.ParseDateQuery(r, "dateTo")
	if err != nil {
		h.logger.Warn("GET /admin/slots - Invalid dateTo: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	resp, err := h.service.List(r.Context(), &models.ListSlotsRequest{
		WorkshopID: handlers.OptionalQuery(r, "workshopId"),
		DateFrom:   dateFrom,
		DateTo:     dateTo,
	})
	if err != nil {
		h.respondError(w, "GET /admin/slots", "", err)
		return
	}

	h.logger.Info("GET /admin/slots - Slots retrieved: count=%d", len(resp.Slots))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Upsert POST /api/admin/slots
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/slots", "", err)
		return
	}

	admin, _ := middleware.GetAdminLogin(r.Context())
	h.logger.Info("POST /admin/slots - Slot saved: slot_id=%s, status=%s, admin=%s", resp.ID, resp.Status, admin)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Update PATCH /api/admin/slots/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PATCH /admin/slots/{id}", id, err)
		return
	}

	admin, _ := middleware.GetAdminLogin(r.Context())
	h.logger.Info("PATCH /admin/slots/{id} - Slot updated: slot_id=%s, admin=%s", id, admin)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Hold POST /api/admin/slots/{id}/hold
func (h *Handler) Hold(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "POST /admin/slots/{id}/hold", h.service.Hold)
}

// Unhold POST /api/admin/slots/{id}/unhold
func (h *Handler) Unhold(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "POST /admin/slots/{id}/unhold", h.service.Unhold)
}

// Cancel POST /api/admin/slots/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "POST /admin/slots/{id}/cancel", h.service.Cancel)
}

// Delete DELETE /api/admin/slots/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /admin/slots/{id}", id, err)
		return
	}

	admin, _ := middleware.GetAdminLogin(r.Context())
	h.logger.Info("DELETE /admin/slots/{id} - Slot deleted: slot_id=%s, admin=%s", id, admin)
	handlers.RespondNoContent(w)
}

func (h *Handler) transition(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	action func(ctx context.Context, id string) (*models.SlotResponse, error),
) {
	id := mux.Vars(r)["id"]

	resp, err := action(r.Context(), id)
	if err != nil {
		h.respondError(w, route, id, err)
		return
	}

	admin, _ := middleware.GetAdminLogin(r.Context())
	h.logger.Info("%s - Slot status changed: slot_id=%s, status=%s, admin=%s", route, id, resp.Status, admin)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) respondError(w http.ResponseWriter, route, id string, err error) {
	switch {
	case errors.Is(err, slots.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, slots.ErrSlotNotFound):
		h.logger.Warn("%s - Slot not found: slot_id=%s", route, id)
		handlers.RespondNotFound(w, msgSlotNotFound)

	case errors.Is(err, slots.ErrWorkshopNotFound):
		h.logger.Warn("%s - Workshop not found: %v", route, err)
		handlers.RespondNotFound(w, msgWorkshopNotFound)

	case errors.Is(err, slots.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: slot_id=%s, error=%v", route, id, err)
		handlers.RespondConflict(w, msgInvalidTransition)

	default:
		h.logger.Error("%s - Failed: slot_id=%s, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
