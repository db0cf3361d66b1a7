package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/groupe-sii/lumext/internal/common"
	"github.com/groupe-sii/lumext/internal/server/services"
)

type errorBody struct {
	ErrorMessage string `json:"error_message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", common.MediaType)
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{ErrorMessage: message})
}

// writeDomainError answers err with its mapped status and logs internal
// failures.
func (h *handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	de := services.ToDomainError(err)
	if de.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeError(w, de.HTTPStatus, de.Message)
}
