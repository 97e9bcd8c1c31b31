// Package store defines the storage interface and its database/sql implementation.
package store

import (
	"context"
	"time"

	"github.com/xiaot623/neuralthreads/internal/domain"
)

// Store defines the interface for data persistence.
type Store interface {
	// Booking operations
	CreateBooking(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	ListBookingsByDesigner(ctx context.Context, designerID string) ([]domain.Booking, error)
	// UpdateBookingStatus moves a booking from one status to another. It
	// returns nil when no booking with that id is in the from status.
	UpdateBookingStatus(ctx context.Context, id string, from, to domain.BookingStatus, at time.Time) (*domain.Booking, error)

	// Profile operations. Upserts are keyed by user id.
	UpsertCustomerProfile(ctx context.Context, profile *domain.CustomerProfile) (*domain.CustomerProfile, error)
	UpsertDesignerProfile(ctx context.Context, profile *domain.DesignerProfile) (*domain.DesignerProfile, error)
	GetCustomerProfile(ctx context.Context, userID string) (*domain.CustomerProfile, error)
	GetDesignerProfile(ctx context.Context, userID string) (*domain.DesignerProfile, error)
	SearchDesigners(ctx context.Context, filter domain.DesignerFilter) ([]domain.DesignerProfile, error)

	// Lifecycle
	Close() error
}

// Ensure SQLStore implements Store interface.
var _ Store = (*SQLStore)(nil)
