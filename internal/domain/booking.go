package domain

import "time"

// BookingRequest is the body accepted by the booking endpoint.
type BookingRequest struct {
	CustomerID  string `json:"p_customer_id"`
	DesignerID  string `json:"p_designer_id"`
	ServiceType string `json:"p_service_type"`
	Notes       string `json:"p_notes,omitempty"`
	BookingDate string `json:"p_booking_date"`
}

// Booking is a stored booking row.
type Booking struct {
	ID          string        `json:"id"`
	CustomerID  string        `json:"customer_id"`
	DesignerID  string        `json:"designer_id"`
	ServiceType string        `json:"service_type"`
	Notes       *string       `json:"notes"`
	BookingDate time.Time     `json:"booking_date"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   *time.Time    `json:"updated_at,omitempty"`
}

// BookingStatusRequest moves a booking to a new status. DesignerID, when
// set, must own the booking.
type BookingStatusRequest struct {
	Status     BookingStatus `json:"status"`
	DesignerID string        `json:"designer_id,omitempty"`
}

// ErrorResponse is the JSON error body used by the HTTP endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse wraps a successful payload.
type DataResponse struct {
	Data any `json:"data"`
}
