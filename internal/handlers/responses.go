package handlers

// ErrorResponse is the standard format for API error responses.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SessionResponse describes the identity that was stored.
type SessionResponse struct {
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Redirect string `json:"redirect"`
}
