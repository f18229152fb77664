package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

type successEnvelope struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// JSON writes the standard success envelope {"message": ..., "data": ...}.
func JSON(w http.ResponseWriter, status int, message string, data any) {
	write(w, status, successEnvelope{Message: message, Data: data})
}

// Error writes the standard error envelope {"error": ...}.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, errorEnvelope{Error: message})
}

func write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}
