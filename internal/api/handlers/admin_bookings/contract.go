package admin_bookings

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
)

type BookingService interface {
	List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error)
	Approve(ctx context.Context, id string) (*models.BookingResponse, error)
	Reject(ctx context.Context, id string) (*models.BookingResponse, error)
	Confirm(ctx context.Context, id string) (*models.BookingResponse, error)
	Cancel(ctx context.Context, id string) (*models.BookingResponse, error)
	Delete(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
