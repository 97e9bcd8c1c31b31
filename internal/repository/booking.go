package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xiaot623/neuralthreads/internal/domain"
)

const bookingColumns = `id, customer_id, designer_id, service_type, notes, booking_date, status, created_at, updated_at`

// CreateBooking inserts a booking and returns the stored row.
func (s *SQLStore) CreateBooking(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	var notes sql.NullString
	if b.Notes != nil {
		notes = sql.NullString{String: *b.Notes, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO bookings (id, customer_id, designer_id, service_type, notes, booking_date, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		b.ID, b.CustomerID, b.DesignerID, b.ServiceType, notes, b.BookingDate.UTC(), string(b.Status), b.CreatedAt.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to insert booking: %w", err)
	}

	created, err := s.GetBooking(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back booking: %w", err)
	}
	if created == nil {
		return nil, fmt.Errorf("booking %s missing after insert", b.ID)
	}
	return created, nil
}

// GetBooking retrieves a booking by id. It returns nil when none exists.
func (s *SQLStore) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`), id)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBookingsByDesigner returns the designer's bookings, newest first.
func (s *SQLStore) ListBookingsByDesigner(ctx context.Context, designerID string) ([]domain.Booking, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT `+bookingColumns+` FROM bookings WHERE designer_id = ? ORDER BY created_at DESC, id DESC`), designerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// UpdateBookingStatus sets the status only while the row still holds from,
// so concurrent updates cannot skip a transition.
func (s *SQLStore) UpdateBookingStatus(ctx context.Context, id string, from, to domain.BookingStatus, at time.Time) (*domain.Booking, error) {
	res, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE bookings SET status = ?, updated_at = ? WHERE id = ? AND status = ?`),
		string(to), at.UTC(), id, string(from))
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.GetBooking(ctx, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var notes sql.NullString
	var status string
	var updated sql.NullTime
	if err := row.Scan(&b.ID, &b.CustomerID, &b.DesignerID, &b.ServiceType, &notes, &b.BookingDate, &status, &b.CreatedAt, &updated); err != nil {
		return nil, err
	}
	if notes.Valid {
		b.Notes = &notes.String
	}
	if updated.Valid {
		b.UpdatedAt = &updated.Time
	}
	b.Status = domain.BookingStatus(status)
	return &b, nil
}
