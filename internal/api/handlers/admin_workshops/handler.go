package admin_workshops

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/service/workshops"
	"github.com/m04kA/SMC-StudioBooking/internal/service/workshops/models"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidInput       = "Title, durationMinutes, capacityPerSlot and price are required"
	msgWorkshopNotFound   = "Workshop not found"
	msgWorkshopInUse      = "Workshop has slots, delete them first"
)

// Handler управление каталогом мастер-классов
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

// List GET /api/admin/workshops
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/workshops - Failed to list workshops: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Create POST /api/admin/workshops
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWorkshopRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/workshops - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/workshops", "", err)
		return
	}

	admin, _ := middleware.GetAdminLogin(r.Context())
	h.logger.Info("POST /admin/workshops - Workshop created: workshop_id=%s, admin=%s", resp.ID, admin)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// Update PATCH /api/admin/workshops/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateWorkshopRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/workshops/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PATCH /admin/workshops/{id}", id, err)
		return
	}

	admin, _ := middleware.GetAdminLogin(r.Context())
	h.logger.Info("PATCH /admin/workshops/{id} - Workshop updated: workshop_id=%s, admin=%s", id, admin)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Delete DELETE /api/admin/workshops/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /admin/workshops/{id}", id, err)
		return
	}

	admin, _ := middleware.GetAdminLogin(r.Context())
	h.logger.Info("DELETE /admin/workshops/{id} - Workshop deleted: workshop_id=%s, admin=%s", id, admin)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route, id string, err error) {
	switch {
	case errors.Is(err, workshops.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, workshops.ErrWorkshopNotFound):
		h.logger.Warn("%s - Workshop not found: workshop_id=%s", route, id)
		handlers.RespondNotFound(w, msgWorkshopNotFound)

	case errors.Is(err, workshops.ErrWorkshopInUse):
		h.logger.Warn("%s - Workshop in use: workshop_id=%s", route, id)
		handlers.RespondConflict(w, msgWorkshopInUse)

	default:
		h.logger.Error("%s - Failed: workshop_id=%s, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
