package utils

import (
	"encoding/json"
	"net/http"

	"github.com/RubachokBoss/student-registry/internal/models"
)

func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func ReadJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// ErrorMessage writes an error body carrying only the fixed message.
func ErrorMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, models.ErrorResponse{Message: message})
}

// ErrorDetail writes an error body echoing the underlying failure
// detail alongside the message.
func ErrorDetail(w http.ResponseWriter, status int, message string, err error) {
	WriteJSON(w, status, models.ErrorResponse{Message: message, Error: err.Error()})
}
