package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// StatusResponse is the {status, message} envelope the fetch-based
// clients expect for mutations and failures.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// respondWithJSON sends a JSON response with the given status code and payload.
func (h *Handler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("marshaling JSON response", zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":"error","message":"Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError sends the generic error envelope. message must never
// contain raw storage error text; log that server-side instead.
func (h *Handler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, StatusResponse{Status: "error", Message: message})
}

func (h *Handler) respondWithSuccess(w http.ResponseWriter, message string) {
	h.respondWithJSON(w, http.StatusOK, StatusResponse{Status: "success", Message: message})
}
