package admin_bookings

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
)

const (
	msgInvalidDate       = "Invalid date, expected YYYY-MM-DD"
	msgInvalidInput      = "Invalid filter"
	msgBookingNotFound   = "Booking not found"
	msgInvalidTransition = "Booking status does not allow this action"
)

// Handler решения администратора по бронированиям
type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/admin/bookings?dateFrom=&dateTo=&workshopId=&status=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	dateFrom, err := handlers.ParseDateQuery(r, "dateFrom")
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid dateFrom: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	dateTo, err := handlers.ParseDateQuery(r, "dateTo")
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid dateTo: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	resp, err := h.service.List(r.Context(), &models.ListBookingsRequest{
		WorkshopID: handlers.OptionalQuery(r, "workshopId"),
		Status:     handlers.OptionalQuery(r, "status"),
		DateFrom:   dateFrom,
		DateTo:     dateTo,
	})
	if err != nil {
		h.respondError(w, "GET /admin/bookings", "", err)
		return
	}

	h.logger.Info("GET /admin/bookings - Bookings retrieved: count=%d", len(resp.Bookings))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Approve POST /api/admin/bookings/{id}/approve
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "POST /admin/bookings/{id}/approve", h.service.Approve)
}

// Reject POST /api/admin/bookings/{id}/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "POST /admin/bookings/{id}/reject", h.service.Reject)
}

// Confirm PATCH /api/admin/bookings/{id}/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "PATCH /admin/bookings/{id}/confirm", h.service.Confirm)
}

// Cancel PATCH /api/admin/bookings/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "PATCH /admin/bookings/{id}/cancel", h.service.Cancel)
}

// Delete DELETE /api/admin/bookings/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /admin/bookings/{id}", id, err)
		return
	}

	admin, _ := middleware.GetAdminLogin(r.Context())
	h.logger.Info("DELETE /admin/bookings/{id} - Booking deleted: booking_id=%s, admin=%s", id, admin)
	handlers.RespondNoContent(w)
}

func (h *Handler) transition(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	action func(ctx context.Context, id string) (*models.BookingResponse, error),
) {
	id := mux.Vars(r)["id"]

	resp, err := action(r.Context(), id)
	if err != nil {
		h.respondError(w, route, id, err)
		return
	}

	admin, _ := middleware.GetAdminLogin(r.Context())
	h.logger.Info("%s - Booking status changed: booking_id=%s, status=%s, admin=%s", route, id, resp.Status, admin)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) respondError(w http.ResponseWriter, route, id string, err error) {
	switch {
	case errors.Is(err, bookings.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("%s - Booking not found: booking_id=%s", route, id)
		handlers.RespondNotFound(w, msgBookingNotFound)

	case errors.Is(err, bookings.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: booking_id=%s, error=%v", route, id, err)
		handlers.RespondConflict(w, msgInvalidTransition)

	default:
		h.logger.Error("%s - Failed: booking_id=%s, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
