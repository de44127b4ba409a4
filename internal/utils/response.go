package utils

import (
	"encoding/json"
	"net/http"

	"prepwise/server/internal/models"
)

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// Fail writes the uniform {success:false, error:{code,message}} body.
func Fail(w http.ResponseWriter, statusCode int, code, message string) {
	JSON(w, statusCode, models.ErrorEnvelope{
		Success: false,
		Error:   models.ErrorResponse{Code: code, Message: message},
	})
}
