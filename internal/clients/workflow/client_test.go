package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arolsen/finboard/internal/interfaces"
)

func TestTriggerAnalysis_PostsAndReturnsRawResponse(t *testing.T) {
	var capturedPath, capturedAuth string
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedAuth = r.Header.Get("Authorization")
		capturedBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"summary":"looks fine","confidence":0.8}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "hook-secret")
	payload, err := client.TriggerAnalysis(context.Background(), interfaces.WorkflowRequest{
		UserID:   "alice",
		Scope:    "asset",
		TargetID: "aapl",
	})
	if err != nil {
		t.Fatalf("TriggerAnalysis failed: %v", err)
	}

	if capturedPath != "/finboard-analysis" {
		t.Errorf("unexpected path: %s", capturedPath)
	}
	if capturedAuth != "Bearer hook-secret" {
		t.Errorf("unexpected auth header: %s", capturedAuth)
	}

	var req interfaces.WorkflowRequest
	if err := json.Unmarshal(capturedBody, &req); err != nil {
		t.Fatalf("request body is not valid JSON: %v", err)
	}
	if req.UserID != "alice" || req.TargetID != "aapl" {
		t.Errorf("unexpected request body: %+v", req)
	}

	// The response is returned verbatim, never reshaped.
	if string(payload) != `{"summary":"looks fine","confidence":0.8}` {
		t.Errorf("unexpected payload: %s", payload)
	}
}

func TestTriggerSuggestion_UsesSuggestionPath(t *testing.T) {
	var capturedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	if _, err := client.TriggerSuggestion(context.Background(), interfaces.WorkflowRequest{TargetID: "p1"}); err != nil {
		t.Fatalf("TriggerSuggestion failed: %v", err)
	}
	if capturedPath != "/finboard-suggestion" {
		t.Errorf("unexpected path: %s", capturedPath)
	}
}

func TestNotify_PostsEvent(t *testing.T) {
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"delivered":true}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	err := client.Notify(context.Background(), "alert.triggered", map[string]string{"alert_id": "al1"})
	if err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	var body struct {
		Event   string            `json:"event"`
		Payload map[string]string `json:"payload"`
	}
	if err := json.Unmarshal(capturedBody, &body); err != nil {
		t.Fatalf("notify body is not valid JSON: %v", err)
	}
	if body.Event != "alert.triggered" || body.Payload["alert_id"] != "al1" {
		t.Errorf("unexpected notify body: %+v", body)
	}
}

func TestEngineErrorSurfacesAsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "workflow not active", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.TriggerAnalysis(context.Background(), interfaces.WorkflowRequest{TargetID: "aapl"})
	if err == nil {
		t.Fatal("expected an error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", apiErr.StatusCode)
	}
	if apiErr.Endpoint != "/finboard-analysis" {
		t.Errorf("unexpected endpoint: %s", apiErr.Endpoint)
	}
}
