package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/gorm"

	"github.com/cplatt-iso/axiom-admin/internal/rules"
	"github.com/cplatt-iso/axiom-admin/internal/services"
)

func TestWriteValidationErrorsShape(t *testing.T) {
	var res rules.Result
	res.Add(rules.FieldCriterionTag, 0, "Tag must be in GGGG,EEEE format.")
	res.Add(rules.FieldName, 0, "Rule name is required.")

	rec := httptest.NewRecorder()
	writeError(rec, &services.ValidationError{Result: res}, "fallback")

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var body struct {
		Detail []struct {
			Loc []string `json:"loc"`
			Msg string   `json:"msg"`
		} `json:"detail"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Detail) != 2 {
		t.Fatalf("expected two entries, got %+v", body.Detail)
	}

	// Entries are sorted by field path.
	first := body.Detail[0]
	if len(first.Loc) != 2 || first.Loc[0] != "body" || first.Loc[1] != "matchCriteria[0].tag" {
		t.Errorf("unexpected loc: %v", first.Loc)
	}
	if first.Msg != "Tag must be in GGGG,EEEE format." {
		t.Errorf("unexpected msg: %q", first.Msg)
	}
	if body.Detail[1].Loc[1] != "name" {
		t.Errorf("unexpected second entry: %+v", body.Detail[1])
	}
}

func TestWriteErrorNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, gorm.ErrRecordNotFound, "fallback")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["detail"] != "Not found" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestWriteErrorWrappedNotFound(t *testing.T) {
	// Repository layers wrap gorm errors; the mapping must still hold.
	wrapped := fmt.Errorf("failed to get rule: %w", gorm.ErrRecordNotFound)

	rec := httptest.NewRecorder()
	writeError(rec, wrapped, "fallback")

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for wrapped not-found, got %d", rec.Code)
	}
}

func TestWriteErrorFallback(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("boom"), "Failed to create rule")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if body["detail"] != "Failed to create rule" {
		t.Errorf("unexpected body: %v", body)
	}
}
