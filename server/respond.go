package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Svector-anu/Aboki-Business/abokiapi"
	apperrors "github.com/Svector-anu/Aboki-Business/internal/errors"
)

// apiResponse is the JSON envelope this service sends to the web client,
// matching the remote API's {success, message, data} shape.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	respond(w, status, apiResponse{Success: status < 400, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respond(w, status, apiResponse{Success: status < 400, Message: message})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, apiResponse{Success: false, Message: message})
}

func respond(w http.ResponseWriter, status int, body apiResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("Failed to encode response")
	}
}

// decodeBody reads a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// respondUpstreamError maps a remote-API error onto this service's response.
// 401s are handled by the callers (they also clear the session) before
// reaching here.
func respondUpstreamError(w http.ResponseWriter, err error) {
	var apiErr *abokiapi.APIError
	switch {
	case apperrors.Is(err, apperrors.ErrNetwork):
		respondError(w, http.StatusBadGateway, "Unable to connect to server. Please check your internet connection.")
	case apperrors.As(err, &apiErr):
		status := apiErr.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
		message := apiErr.Message
		if message == "" {
			message = "request failed"
		}
		respondError(w, status, message)
	default:
		log.Err(err).Msg("Unexpected upstream error")
		respondError(w, http.StatusBadGateway, "request failed")
	}
}
