package libre

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jepennn/Lexa/internal/engine"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /languages", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]languageResponse{
			{Code: "en", Name: "English", Targets: []string{"sv", "fr"}},
			{Code: "fr", Name: "French", Targets: []string{"en"}},
		})
	})
	mux.HandleFunc("POST /translate", func(w http.ResponseWriter, r *http.Request) {
		var req translateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Q == "" || req.Format != "text" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(translateResponse{TranslatedText: "hello"})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestAvailability(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(server.URL, "")
	defer client.Close()

	tests := []struct {
		name   string
		source string
		target string
		want   engine.Availability
	}{
		{name: "served pair", source: "en", target: "sv", want: engine.AvailabilityAvailable},
		{name: "reverse pair", source: "fr", target: "en", want: engine.AvailabilityAvailable},
		{name: "unknown target", source: "en", target: "ja", want: engine.AvailabilityUnavailable},
		{name: "unknown source", source: "xx", target: "en", want: engine.AvailabilityUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := client.Availability(context.Background(), tt.source, tt.target)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestAvailabilityServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	defer client.Close()

	if _, err := client.Availability(context.Background(), "en", "sv"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestTranslate(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(server.URL, "")
	defer client.Close()

	translator, err := client.Create(context.Background(), "fr", "en", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := translator.Translate(context.Background(), "bonjour")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello" {
		t.Fatalf("expected hello, got %q", got)
	}
}

func TestTranslatePassesAPIKey(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req translateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotKey = req.APIKey
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(translateResponse{TranslatedText: "hej"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	defer client.Close()

	translator, _ := client.Create(context.Background(), "en", "sv", nil)
	if _, err := translator.Translate(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "secret" {
		t.Fatalf("expected api key forwarded, got %q", gotKey)
	}
}

func TestCreateHonorsCancelledContext(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(server.URL, "")
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.Create(ctx, "en", "sv", nil); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
