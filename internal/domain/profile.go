package domain

import "time"

// CustomerProfile holds body measurements for a customer account.
type CustomerProfile struct {
	UserID    string    `json:"user_id"`
	Height    float64   `json:"height"`
	Weight    float64   `json:"weight"`
	Age       int       `json:"age"`
	Chest     *float64  `json:"chest,omitempty"`
	Waist     *float64  `json:"waist,omitempty"`
	Hip       *float64  `json:"hip,omitempty"`
	Inseam    *float64  `json:"inseam,omitempty"`
	ShoeSize  *float64  `json:"shoe_size,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DesignerProfile holds the public directory entry of a designer.
type DesignerProfile struct {
	UserID         string    `json:"user_id"`
	Height         float64   `json:"height"`
	Weight         float64   `json:"weight"`
	Age            int       `json:"age"`
	Specialization string    `json:"specialization,omitempty"`
	Experience     string    `json:"experience,omitempty"`
	Location       string    `json:"location,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProfileRequest is the loosely shaped body accepted when saving a profile.
// UserType selects which record the fields are decoded into.
type ProfileRequest struct {
	UserType       UserType `json:"user_type"`
	Height         *float64 `json:"height"`
	Weight         *float64 `json:"weight"`
	Age            *int     `json:"age"`
	Chest          *float64 `json:"chest,omitempty"`
	Waist          *float64 `json:"waist,omitempty"`
	Hip            *float64 `json:"hip,omitempty"`
	Inseam         *float64 `json:"inseam,omitempty"`
	ShoeSize       *float64 `json:"shoe_size,omitempty"`
	Specialization string   `json:"specialization,omitempty"`
	Experience     string   `json:"experience,omitempty"`
	Location       string   `json:"location,omitempty"`
}

// Profile is either a customer or a designer record, never both.
type Profile struct {
	Customer *CustomerProfile `json:"customer,omitempty"`
	Designer *DesignerProfile `json:"designer,omitempty"`
}

// UserType returns the discriminator of the populated record.
func (p Profile) UserType() UserType {
	if p.Designer != nil {
		return UserTypeDesigner
	}
	return UserTypeCustomer
}

// DesignerFilter narrows a designer directory search.
type DesignerFilter struct {
	Query          string
	Location       string
	Specialization string
	Limit          int
}
