package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(Health{Status: "healthy"})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok-123")
	if _, err := c.Health(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("authorization = %q", gotAuth)
	}
}

func TestClient_Health(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/health" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Health{Status: "healthy", Version: "1.2.3", RequestCount: 7})
	}))
	defer srv.Close()

	h, err := New(srv.URL, "").Health(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if h.Status != "healthy" || h.Version != "1.2.3" || h.RequestCount != 7 {
		t.Errorf("health = %+v", h)
	}
}

func TestClient_ListRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("owner"); got != "client-1" {
			t.Errorf("owner = %q", got)
		}
		json.NewEncoder(w).Encode(listResponse{
			Requests: []Request{{ID: "r1", ProjectName: "Shop"}},
			Total:    1,
		})
	}))
	defer srv.Close()

	requests, err := New(srv.URL, "tok").ListRequests(context.Background(), "client-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(requests) != 1 || requests[0].ID != "r1" {
		t.Errorf("requests = %+v", requests)
	}
}

func TestClient_Transition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["status"] != "active" {
			t.Errorf("status = %q", body["status"])
		}
		json.NewEncoder(w).Encode(Progress{ProjectID: "r1", Status: "active"})
	}))
	defer srv.Close()

	prog, err := New(srv.URL, "tok").Transition(context.Background(), "r1", "active")
	if err != nil {
		t.Fatal(err)
	}
	if prog.Status != "active" {
		t.Errorf("status = %q", prog.Status)
	}
}

func TestClient_DecodesProblemResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{
			"type":   "https://forgeboard.dev/errors/forbidden",
			"title":  "Forbidden",
			"status": 403,
			"detail": "Operation not permitted for this identity",
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL, "tok").GetRequest(context.Background(), "r1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != 403 || apiErr.Title != "Forbidden" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if apiErr.Detail == "" {
		t.Error("detail lost")
	}
}

func TestClient_NonProblemErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "plain text failure", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "tok").GetProgress(context.Background(), "r1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("status = %d", apiErr.Status)
	}
	if apiErr.Title != http.StatusText(http.StatusBadGateway) {
		t.Errorf("title = %q", apiErr.Title)
	}
}
