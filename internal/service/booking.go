package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiaot623/neuralthreads/internal/domain"
)

// MissingBookingFieldsMessage is returned when a required booking field is empty.
const MissingBookingFieldsMessage = "Missing required fields: customer_id, designer_id, service_type, and booking_date are required"

var bookingDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseBookingDate(s string) (time.Time, error) {
	for _, layout := range bookingDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// CreateBooking validates req, checks it against the booking policy and
// inserts one pending booking.
func (s *Service) CreateBooking(ctx context.Context, req domain.BookingRequest) (*domain.Booking, error) {
	req.CustomerID = strings.TrimSpace(req.CustomerID)
	req.DesignerID = strings.TrimSpace(req.DesignerID)
	req.ServiceType = strings.TrimSpace(req.ServiceType)
	req.BookingDate = strings.TrimSpace(req.BookingDate)

	if req.CustomerID == "" || req.DesignerID == "" || req.ServiceType == "" || req.BookingDate == "" {
		s.logger.Warn("booking rejected: missing fields")
		return nil, invalid("%s", MissingBookingFieldsMessage)
	}

	bookingDate, err := parseBookingDate(req.BookingDate)
	if err != nil {
		return nil, invalid("Invalid booking_date: %v", err)
	}

	if s.policyEngine != nil {
		decision, reason, err := s.policyEngine.Evaluate(ctx, map[string]interface{}{
			"customer_id":  req.CustomerID,
			"designer_id":  req.DesignerID,
			"service_type": req.ServiceType,
			"booking_date": bookingDate.UTC().Format(time.RFC3339),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate booking policy: %w", err)
		}
		if domain.PolicyDecision(decision) == domain.PolicyDecisionBlock {
			s.logger.Info("booking blocked by policy", zap.String("reason", reason))
			if reason == "" {
				reason = "booking not allowed"
			}
			return nil, invalid("Booking rejected: %s", reason)
		}
	}

	booking := &domain.Booking{
		ID:          uuid.New().String(),
		CustomerID:  req.CustomerID,
		DesignerID:  req.DesignerID,
		ServiceType: req.ServiceType,
		BookingDate: bookingDate,
		Status:      domain.BookingStatusPending,
		CreatedAt:   s.now(),
	}
	if req.Notes != "" {
		notes := req.Notes
		booking.Notes = &notes
	}

	created, err := s.store.CreateBooking(ctx, booking)
	if err != nil {
		s.logger.Error("booking insert failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", created.ID),
		zap.String("designer_id", created.DesignerID),
	)
	return created, nil
}

// ListDesignerBookings returns the bookings made with a designer, newest first.
func (s *Service) ListDesignerBookings(ctx context.Context, designerID string) ([]domain.Booking, error) {
	designerID = strings.TrimSpace(designerID)
	if designerID == "" {
		return nil, invalid("designer id is required")
	}
	bookings, err := s.store.ListBookingsByDesigner(ctx, designerID)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, nil
}

// UpdateBookingStatus moves a booking along pending -> accepted|rejected and
// accepted -> completed. It returns nil when the booking does not exist.
func (s *Service) UpdateBookingStatus(ctx context.Context, id string, req domain.BookingStatusRequest) (*domain.Booking, error) {
	if !req.Status.Valid() {
		return nil, invalid("status must be one of %s, %s, %s or %s",
			domain.BookingStatusPending, domain.BookingStatusAccepted, domain.BookingStatusRejected, domain.BookingStatusCompleted)
	}

	current, err := s.store.GetBooking(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}
	if designerID := strings.TrimSpace(req.DesignerID); designerID != "" && designerID != current.DesignerID {
		return nil, invalid("booking belongs to another designer")
	}
	if !current.Status.CanTransitionTo(req.Status) {
		return nil, &TransitionError{From: current.Status, To: req.Status}
	}

	updated, err := s.store.UpdateBookingStatus(ctx, id, current.Status, req.Status, s.now())
	if err != nil {
		s.logger.Error("booking status update failed", zap.String("booking_id", id), zap.Error(err))
		return nil, err
	}
	if updated == nil {
		// Another update won the race; report against the status it left behind.
		latest, err := s.store.GetBooking(ctx, id)
		if err != nil || latest == nil {
			return nil, err
		}
		return nil, &TransitionError{From: latest.Status, To: req.Status}
	}

	s.logger.Info("booking status changed",
		zap.String("booking_id", id),
		zap.String("from", string(current.Status)),
		zap.String("to", string(updated.Status)),
	)
	return updated, nil
}
