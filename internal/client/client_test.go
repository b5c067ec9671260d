package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cplatt-iso/axiom-admin/internal/models"
	"github.com/cplatt-iso/axiom-admin/internal/rules"
)

func TestCreateRule(t *testing.T) {
	rulesetID := uuid.New()
	var gotPath, gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		var payload models.RuleCreatePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("bad body: %v", err)
		}

		rule := models.Rule{ID: uuid.New(), RulesetID: rulesetID, Name: payload.Name}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(rule)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	rule, err := c.CreateRule(context.Background(), rulesetID, models.RuleCreatePayload{Name: "Route CT"})
	if err != nil {
		t.Fatal(err)
	}

	if gotPath != "/api/v1/rulesets/"+rulesetID.String()+"/rules" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if rule.Name != "Route CT" {
		t.Errorf("unexpected rule: %+v", rule)
	}
}

func TestAPIErrorValidationDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[{"loc":["body","matchCriteria[0].tag"],"msg":"Tag must be in GGGG,EEEE format."}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.CreateRule(context.Background(), uuid.New(), models.RuleCreatePayload{Name: "x"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("unexpected status %d", apiErr.StatusCode)
	}
	if got := apiErr.FieldMessage(); got != "matchCriteria[0].tag: Tag must be in GGGG,EEEE format." {
		t.Errorf("unexpected field message %q", got)
	}
	if apiErr.FieldErrors()["matchCriteria[0].tag"] == "" {
		t.Errorf("field errors not extracted: %+v", apiErr.Fields)
	}
}

func TestAPIErrorStringDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	err := c.DeleteRule(context.Background(), uuid.New())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Detail != "Not found" || apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}

func TestAPIErrorUnparsableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	err := c.DeleteRule(context.Background(), uuid.New())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("unexpected status %d", apiErr.StatusCode)
	}
}

func TestSubmitRuleDraftBlocksInvalid(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	d := rules.NewRuleDraft(uuid.New()) // no name, invalid

	_, err := c.SubmitRuleDraft(context.Background(), d)

	var invalid *DraftInvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected DraftInvalidError, got %v", err)
	}
	if invalid.Result.PathErrors()["name"] == "" {
		t.Errorf("expected name error: %v", invalid.Result.PathErrors())
	}
	if called {
		t.Error("network request ran for an invalid draft")
	}
}

func TestSubmitRuleDraftCreatesAndUpdates(t *testing.T) {
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.Rule{ID: uuid.New()})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")

	d := rules.NewRuleDraft(uuid.New())
	d.Name = "new rule"
	if _, err := c.SubmitRuleDraft(context.Background(), d); err != nil {
		t.Fatal(err)
	}
	if method != http.MethodPost {
		t.Errorf("create-mode draft must POST, got %s %s", method, path)
	}

	d.ID = uuid.New()
	if _, err := c.SubmitRuleDraft(context.Background(), d); err != nil {
		t.Fatal(err)
	}
	if method != http.MethodPut || path != "/api/v1/rules/"+d.ID.String() {
		t.Errorf("edit-mode draft must PUT, got %s %s", method, path)
	}
}

func TestSubmitGate(t *testing.T) {
	var gate SubmitGate
	release := make(chan struct{})
	started := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		gate.Do(func() error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	if err := gate.Do(func() error { return nil }); !errors.Is(err, ErrSubmitInFlight) {
		t.Errorf("expected ErrSubmitInFlight, got %v", err)
	}

	close(release)
	wg.Wait()

	// Gate reopens once the submit finishes.
	if err := gate.Do(func() error { return nil }); err != nil {
		t.Errorf("expected gate to reopen, got %v", err)
	}
}

func TestRuleListOptimisticDelete(t *testing.T) {
	ruleA := models.Rule{ID: uuid.New(), Name: "a"}
	ruleB := models.Rule{ID: uuid.New(), Name: "b"}
	fail := true

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode([]models.Rule{ruleA, ruleB})
		case http.MethodDelete:
			if fail {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"detail":"boom"}`))
				return
			}
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	list := NewRuleList(c, uuid.New())
	if err := list.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Rejected delete restores the snapshot.
	if err := list.Delete(context.Background(), ruleA.ID); err == nil {
		t.Fatal("expected delete to fail")
	}
	got := list.Rules()
	if len(got) != 2 || got[0].ID != ruleA.ID {
		t.Errorf("list not restored after rejected delete: %+v", got)
	}

	// Accepted delete keeps the row out.
	fail = false
	if err := list.Delete(context.Background(), ruleA.ID); err != nil {
		t.Fatal(err)
	}
	got = list.Rules()
	if len(got) != 1 || got[0].ID != ruleB.ID {
		t.Errorf("unexpected list after delete: %+v", got)
	}
}

func TestClientTimeoutConfigured(t *testing.T) {
	c := NewClient("http://localhost:1", "")
	if c.httpClient.Timeout != defaultTimeout {
		t.Errorf("unexpected timeout %v", c.httpClient.Timeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := c.DeleteRule(ctx, uuid.New()); err == nil {
		t.Error("expected connection error")
	}
}
