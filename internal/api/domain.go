package api

// Response is the generic envelope for messages and errors.
type Response struct {
	Success   bool   `json:"success" example:"false"`
	Message   string `json:"message,omitempty" example:"Operation successful"`
	Error     string `json:"error,omitempty" example:"Resource not found"`
	RequestID string `json:"request_id,omitempty"`
}

// MessageResponse is a bare {"message": ...} body.
type MessageResponse struct {
	Message string `json:"message" example:"Visit started successfully"`
}
