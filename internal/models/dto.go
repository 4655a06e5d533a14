package models

// StudentRequest carries the six user-editable fields. Create and update
// share the same shape: an update replaces all six fields atomically.
type StudentRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
