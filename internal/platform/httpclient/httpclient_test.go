package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewWithBaseURL(t *testing.T) {
	c, err := NewWithBaseURL("http://localhost:8080/", time.Second)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if c.BaseURL != "http://localhost:8080" {
		t.Fatalf("expected trailing slash trimmed, got %q", c.BaseURL)
	}

	if _, err := NewWithBaseURL("not a url", time.Second); err == nil {
		t.Fatalf("expected error for invalid base url")
	}
}

func TestDoJSON_DecodesAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprint(w, `{"status":404,"error":"Not Found","message":"pet not found with id: 999"}`)
	}))
	defer ts.Close()

	c, _ := NewWithBaseURL(ts.URL, time.Second)
	err := c.DoJSON(context.Background(), http.MethodGet, "/api/v1/pets/999", nil, nil, nil)
	if StatusCode(err) != http.StatusNotFound {
		t.Fatalf("expected status 404, got %v", err)
	}

	he := err.(*HTTPError)
	if he.Message != "pet not found with id: 999" {
		t.Fatalf("unexpected message %q", he.Message)
	}
}

func TestDoJSON_NoContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c, _ := NewWithBaseURL(ts.URL, time.Second)
	var out map[string]any
	if err := c.DoJSON(context.Background(), http.MethodDelete, "pets/1", nil, nil, &out); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if out != nil {
		t.Fatalf("expected out untouched, got %v", out)
	}
}

func TestDoJSON_RelativePathNeedsBaseURL(t *testing.T) {
	c := New(0)
	if err := c.DoJSON(context.Background(), http.MethodGet, "/health", nil, nil, nil); err == nil {
		t.Fatalf("expected error without BaseURL")
	}
}

func TestDoJSON_SendsHeaders(t *testing.T) {
	var gotID, gotCT string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-Id")
		gotCT = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	c, _ := NewWithBaseURL(ts.URL, time.Second)
	headers := map[string]string{"X-Request-Id": "abc", " ": "ignored"}
	if err := c.DoJSON(context.Background(), http.MethodPost, "/x", headers, map[string]string{"a": "b"}, nil); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if gotID != "abc" {
		t.Fatalf("expected X-Request-Id abc, got %q", gotID)
	}
	if gotCT != "application/json" {
		t.Fatalf("expected json content type, got %q", gotCT)
	}
}
