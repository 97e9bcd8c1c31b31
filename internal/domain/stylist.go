package domain

// StylistRequest is the body accepted by the stylist endpoint.
type StylistRequest struct {
	Message string   `json:"message"`
	Images  []string `json:"images,omitempty"`
}

// StylistResponse is returned by the stylist endpoint. Degraded responses
// set Error but always carry a usable Response.
type StylistResponse struct {
	Response string   `json:"response"`
	Images   []string `json:"images,omitempty"`
	Error    string   `json:"error,omitempty"`
}
