package workshops

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/workshops/models"
	"github.com/m04kA/SMC-StudioBooking/internal/testutil/memstore"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/ptr"
)

func newService() (*Service, *memstore.Store) {
	store := memstore.New()
	return NewService(store.Workshops(), logger.NewWithWriter(io.Discard, "info")), store
}

func TestService_Create(t *testing.T) {
	svc, _ := newService()

	tests := []struct {
		name         string
		req          models.CreateWorkshopRequest
		wantDuration int
		wantCapacity int
		wantPrice    int
		wantActive   bool
	}{
		{
			name:         "explicit values",
			req:          models.CreateWorkshopRequest{Title: "Лепка", DurationMinutes: ptr.Ptr(90), CapacityPerSlot: ptr.Ptr(8), Price: ptr.Ptr(2500)},
			wantDuration: 90, wantCapacity: 8, wantPrice: 2500, wantActive: true,
		},
		{
			name:         "zero values fall back to defaults",
			req:          models.CreateWorkshopRequest{Title: "Роспись", DurationMinutes: ptr.Ptr(0), CapacityPerSlot: ptr.Ptr(0), Price: ptr.Ptr(0), IsActive: ptr.Ptr(false)},
			wantDuration: 120, wantCapacity: 6, wantPrice: 0, wantActive: false,
		},
		{
			name:         "negative values are clamped",
			req:          models.CreateWorkshopRequest{Title: "Витраж", DurationMinutes: ptr.Ptr(-5), CapacityPerSlot: ptr.Ptr(-1), Price: ptr.Ptr(-100)},
			wantDuration: 1, wantCapacity: 1, wantPrice: 0, wantActive: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Create(context.Background(), &tt.req)
			require.NoError(t, err)
			assert.NotEmpty(t, resp.ID)
			assert.Equal(t, tt.wantDuration, resp.DurationMinutes)
			assert.Equal(t, tt.wantCapacity, resp.CapacityPerSlot)
			assert.Equal(t, tt.wantPrice, resp.Price)
			assert.Equal(t, tt.wantActive, resp.IsActive)
		})
	}

	_, err := svc.Create(context.Background(), &models.CreateWorkshopRequest{Title: "Без цены", DurationMinutes: ptr.Ptr(60), CapacityPerSlot: ptr.Ptr(4)})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ListActive(t *testing.T) {
	svc, store := newService()
	store.AddWorkshop(domain.Workshop{ID: "w2", Title: "Лепка", IsActive: true})
	store.AddWorkshop(domain.Workshop{ID: "w1", Title: "Гончарный круг", IsActive: true})
	store.AddWorkshop(domain.Workshop{ID: "w3", Title: "Архив", IsActive: false})

	active, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Гончарный круг", active[0].Title)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestService_Update(t *testing.T) {
	svc, store := newService()
	store.AddWorkshop(domain.Workshop{ID: "w1", Title: "Лепка", DurationMinutes: 120, CapacityPerSlot: 6, Price: 3000, ImageURL: ptr.Ptr("/img/1.jpg"), IsActive: true})

	resp, err := svc.Update(context.Background(), "w1", &models.UpdateWorkshopRequest{
		CapacityPerSlot: ptr.Ptr(0),
		ImageURL:        ptr.Ptr(""),
		IsActive:        ptr.Ptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "Лепка", resp.Title)
	assert.Equal(t, 1, resp.CapacityPerSlot)
	assert.Equal(t, 120, resp.DurationMinutes)
	assert.Nil(t, resp.ImageURL)
	assert.False(t, resp.IsActive)

	_, err = svc.Update(context.Background(), "w9", &models.UpdateWorkshopRequest{})
	require.ErrorIs(t, err, ErrWorkshopNotFound)
}

func TestService_Delete(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()
	store.AddWorkshop(domain.Workshop{ID: "w1", Title: "Лепка", CapacityPerSlot: 6, DurationMinutes: 120})
	store.AddWorkshop(domain.Workshop{ID: "w2", Title: "Роспись"})

	require.NoError(t, store.Slots().InsertIfAbsent(ctx, &domain.Slot{
		ID: "s1", WorkshopID: "w1", Date: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), Time: "11:00", Capacity: 6, Status: domain.SlotOpen,
	}))

	require.ErrorIs(t, svc.Delete(ctx, "w1"), ErrWorkshopInUse)
	require.NoError(t, svc.Delete(ctx, "w2"))
	require.ErrorIs(t, svc.Delete(ctx, "w2"), ErrWorkshopNotFound)
}
