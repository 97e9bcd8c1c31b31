// Package domain defines the core domain models for the stylist backend.
package domain

// UserType identifies which kind of account a session belongs to.
type UserType string

const (
	UserTypeCustomer UserType = "customer"
	UserTypeDesigner UserType = "designer"
)

// Valid reports whether t is a known user type.
func (t UserType) Valid() bool {
	return t == UserTypeCustomer || t == UserTypeDesigner
}

// BookingStatus represents the lifecycle status of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCompleted BookingStatus = "completed"
)

// bookingTransitions lists the statuses a booking may move to from each status.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:  {BookingStatusAccepted, BookingStatusRejected},
	BookingStatusAccepted: {BookingStatusCompleted},
}

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusRejected, BookingStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether a booking in status s may move to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PolicyDecision is the outcome of an admission policy evaluation.
type PolicyDecision string

const (
	PolicyDecisionAllow PolicyDecision = "allow"
	PolicyDecisionBlock PolicyDecision = "block"
)
