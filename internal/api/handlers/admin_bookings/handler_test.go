package admin_bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*models.BookingListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) Approve(ctx context.Context, id string) (*models.BookingResponse, error) {
	args := m.Called(ctx, id)
	return response(args)
}

func (m *mockService) Reject(ctx context.Context, id string) (*models.BookingResponse, error) {
	args := m.Called(ctx, id)
	return response(args)
}

func (m *mockService) Confirm(ctx context.Context, id string) (*models.BookingResponse, error) {
	args := m.Called(ctx, id)
	return response(args)
}

func (m *mockService) Cancel(ctx context.Context, id string) (*models.BookingResponse, error) {
	args := m.Called(ctx, id)
	return response(args)
}

func (m *mockService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func response(args mock.Arguments) (*models.BookingResponse, error) {
	if v := args.Get(0); v != nil {
		return v.(*models.BookingResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func newRouter(svc *mockService) *mux.Router {
	h := NewHandler(svc, logger.NewWithWriter(io.Discard, "info"))

	r := mux.NewRouter()
	r.HandleFunc("/api/admin/bookings", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/bookings/{id}/approve", h.Approve).Methods(http.MethodPost)
	r.HandleFunc("/api/admin/bookings/{id}/reject", h.Reject).Methods(http.MethodPost)
	r.HandleFunc("/api/admin/bookings/{id}/confirm", h.Confirm).Methods(http.MethodPatch)
	r.HandleFunc("/api/admin/bookings/{id}/cancel", h.Cancel).Methods(http.MethodPatch)
	r.HandleFunc("/api/admin/bookings/{id}", h.Delete).Methods(http.MethodDelete)
	return r
}

func do(r http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHandler_List_PassesFilter(t *testing.T) {
	svc := &mockService{}
	svc.On("List", mock.Anything, mock.MatchedBy(func(req *models.ListBookingsRequest) bool {
		return req.WorkshopID != nil && *req.WorkshopID == "w1" &&
			req.Status != nil && *req.Status == "PENDING_ADMIN" &&
			req.DateFrom != nil && req.DateTo == nil
	})).Return(&models.BookingListResponse{Bookings: []models.BookingResponse{{ID: "b1", Status: "PENDING_ADMIN"}}}, nil)

	rec := do(newRouter(svc), http.MethodGet, "/api/admin/bookings?workshopId=w1&status=PENDING_ADMIN&dateFrom=2026-02-01")

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.BookingListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Bookings, 1)
	assert.Equal(t, "b1", body.Bookings[0].ID)
}

func TestHandler_List_InvalidStatus(t *testing.T) {
	svc := &mockService{}
	svc.On("List", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: unknown status", bookings.ErrInvalidInput))

	assert.Equal(t, http.StatusBadRequest, do(newRouter(svc), http.MethodGet, "/api/admin/bookings?status=LOST").Code)
}

func TestHandler_Transitions(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		call       string
		err        error
		wantStatus int
	}{
		{"approve", http.MethodPost, "/api/admin/bookings/b1/approve", "Approve", nil, http.StatusOK},
		{"reject", http.MethodPost, "/api/admin/bookings/b1/reject", "Reject", nil, http.StatusOK},
		{"confirm", http.MethodPatch, "/api/admin/bookings/b1/confirm", "Confirm", nil, http.StatusOK},
		{"cancel", http.MethodPatch, "/api/admin/bookings/b1/cancel", "Cancel", nil, http.StatusOK},
		{"approve confirmed", http.MethodPost, "/api/admin/bookings/b1/approve", "Approve", bookings.ErrInvalidTransition, http.StatusConflict},
		{"reject missing", http.MethodPost, "/api/admin/bookings/b1/reject", "Reject", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"cancel internal", http.MethodPatch, "/api/admin/bookings/b1/cancel", "Cancel", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.err != nil {
				svc.On(tt.call, mock.Anything, "b1").Return(nil, tt.err)
			} else {
				svc.On(tt.call, mock.Anything, "b1").Return(&models.BookingResponse{ID: "b1", Status: "CONFIRMED"}, nil)
			}

			rec := do(newRouter(svc), tt.method, tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Delete(t *testing.T) {
	svc := &mockService{}
	svc.On("Delete", mock.Anything, "b1").Return(nil)
	svc.On("Delete", mock.Anything, "b9").Return(bookings.ErrBookingNotFound)

	r := newRouter(svc)
	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/api/admin/bookings/b1").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/api/admin/bookings/b9").Code)
}
