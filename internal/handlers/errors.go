package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"gorm.io/gorm"

	"github.com/cplatt-iso/axiom-admin/internal/services"
)

// fieldViolation is one entry of a 422 body's detail array. The shape is the
// platform-wide error contract every console client parses.
type fieldViolation struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeDetail writes a plain error body: {"detail": "<message>"}.
func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

// writeValidationErrors writes a 422 body with one detail entry per field,
// ordered by field path so responses are stable.
func writeValidationErrors(w http.ResponseWriter, fields map[string]string) {
	paths := make([]string, 0, len(fields))
	for path := range fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	detail := make([]fieldViolation, 0, len(paths))
	for _, path := range paths {
		detail = append(detail, fieldViolation{
			Loc: []string{"body", path},
			Msg: fields[path],
		})
	}

	writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"detail": detail})
}

// writeError maps service errors to the wire contract.
func writeError(w http.ResponseWriter, err error, fallback string) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		writeValidationErrors(w, ve.Fields())
	case errors.Is(err, gorm.ErrRecordNotFound):
		writeDetail(w, http.StatusNotFound, "Not found")
	default:
		writeDetail(w, http.StatusInternalServerError, fallback)
	}
}
