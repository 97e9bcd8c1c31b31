package domain

// Session identifies the signed-in user and the kind of account they hold.
// It is passed explicitly to whatever needs it.
type Session struct {
	UserID   string   `json:"user_id"`
	UserType UserType `json:"user_type"`
}
