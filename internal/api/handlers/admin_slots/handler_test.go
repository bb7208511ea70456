package admin_slots

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/capacity"
	"github.com/m04kA/SMC-StudioBooking/internal/service/slots"
	"github.com/m04kA/SMC-StudioBooking/internal/service/slots/models"
	"github.com/m04kA/SMC-StudioBooking/internal/testutil/memstore"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

func newRouter(t *testing.T) *mux.Router {
	t.Helper()

	log := logger.NewWithWriter(io.Discard, "info")
	store := memstore.New()
	store.AddWorkshop(domain.Workshop{ID: "w1", Title: "Гончарный круг", DurationMinutes: 120, CapacityPerSlot: 6, IsActive: true})

	svc := slots.NewService(
		store.Slots(), store.Workshops(), store.Bookings(), store.Holds(),
		capacity.NewLedger(store.Bookings(), store.Holds()), store, log,
	)
	h := NewHandler(svc, log)

	r := mux.NewRouter()
	r.HandleFunc("/api/admin/slots", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/slots", h.Upsert).Methods(http.MethodPost)
	r.HandleFunc("/api/admin/slots/{id}", h.Update).Methods(http.MethodPatch)
	r.HandleFunc("/api/admin/slots/{id}/hold", h.Hold).Methods(http.MethodPost)
	r.HandleFunc("/api/admin/slots/{id}/unhold", h.Unhold).Methods(http.MethodPost)
	r.HandleFunc("/api/admin/slots/{id}/cancel", h.Cancel).Methods(http.MethodPost)
	r.HandleFunc("/api/admin/slots/{id}", h.Delete).Methods(http.MethodDelete)
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func decodeSlot(t *testing.T, rec *httptest.ResponseRecorder) models.SlotResponse {
	t.Helper()

	var resp models.SlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandler_SlotLifecycle(t *testing.T) {
	r := newRouter(t)

	rec := do(r, http.MethodPost, "/api/admin/slots", `{"workshopId":"w1","date":"2026-02-02","time":"11:00","freeze":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	slot := decodeSlot(t, rec)
	assert.Equal(t, "HELD", slot.Status)
	assert.Equal(t, 6, slot.FreeSeats)

	rec = do(r, http.MethodPost, "/api/admin/slots/"+slot.ID+"/unhold", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OPEN", decodeSlot(t, rec).Status)

	rec = do(r, http.MethodPatch, "/api/admin/slots/"+slot.ID, `{"capacity":10}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, decodeSlot(t, rec).FreeSeats)

	rec = do(r, http.MethodPost, "/api/admin/slots/"+slot.ID+"/cancel", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CANCELLED", decodeSlot(t, rec).Status)

	assert.Equal(t, http.StatusConflict, do(r, http.MethodPost, "/api/admin/slots/"+slot.ID+"/hold", "").Code)

	rec = do(r, http.MethodGet, "/api/admin/slots?workshopId=w1&dateFrom=2026-02-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list models.SlotListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Slots, 1)
	assert.Equal(t, "Гончарный круг", list.Slots[0].WorkshopTitle)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/api/admin/slots/"+slot.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/api/admin/slots/"+slot.ID, "").Code)
}

func TestHandler_Errors(t *testing.T) {
	r := newRouter(t)

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{"unknown workshop", http.MethodPost, "/api/admin/slots", `{"workshopId":"w9","date":"2026-02-02","time":"11:00"}`, http.StatusNotFound},
		{"invalid time", http.MethodPost, "/api/admin/slots", `{"workshopId":"w1","date":"2026-02-02","time":"25:00"}`, http.StatusBadRequest},
		{"broken body", http.MethodPost, "/api/admin/slots", `{`, http.StatusBadRequest},
		{"invalid date filter", http.MethodGet, "/api/admin/slots?dateFrom=02.02.2026", "", http.StatusBadRequest},
		{"unknown slot", http.MethodPost, "/api/admin/slots/s9/hold", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, do(r, tt.method, tt.target, tt.body).Code)
		})
	}
}
