package api

import (
	"encoding/json"
	"net/http"

	"github.com/KiwiAmenazante/DREMO/internal/core/domain"
)

// ValidateDNIResponse is the success envelope of POST /api/validate-dni. The
// identity block passes provider extra attributes through unmodified.
type ValidateDNIResponse struct {
	Success        bool                   `json:"success"`
	Message        string                 `json:"message"`
	DNI            string                 `json:"dni"`
	IdentitySource domain.IdentitySource  `json:"identitySource"`
	Identity       domain.IdentityFields  `json:"identity"`
	Directory      domain.DirectoryMatch  `json:"directory"`
}

// ErrorResponse is the envelope for every non-success outcome.
type ErrorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Detail  string              `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
