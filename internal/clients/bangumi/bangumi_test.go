package bangumi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bangarr/internal/clients/bangumi"
)

func TestGetWatchingSendsUserAgentAndFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "Sonarr Custom List/1.0" {
			t.Errorf("unexpected user agent: %q", got)
		}
		if r.URL.Path != "/user/12345/collection" {
			t.Errorf("unexpected path: %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("cat"); got != "watching" {
			t.Errorf("unexpected cat filter: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name":"葬送のフリーレン","name_cn":"葬送的芙莉莲"},{"name":"Dan Da Dan"}]`))
	}))
	defer server.Close()

	client := bangumi.NewClient(server.URL)
	subjects, err := client.GetWatching("12345")
	if err != nil {
		t.Fatalf("GetWatching returned error: %v", err)
	}
	if len(subjects) != 2 {
		t.Fatalf("expected 2 subjects, got %d", len(subjects))
	}
	if subjects[0].Name != "葬送のフリーレン" {
		t.Fatalf("unexpected first subject: %q", subjects[0].Name)
	}
	if subjects[1].Name != "Dan Da Dan" {
		t.Fatalf("unexpected second subject: %q", subjects[1].Name)
	}
}

func TestGetWatchingNonSuccessStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := bangumi.NewClient(server.URL)
	if _, err := client.GetWatching("12345"); err == nil {
		t.Fatal("expected error for non-success status")
	}
}

func TestGetWatchingMalformedPayloadIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "not an array"}`))
	}))
	defer server.Close()

	client := bangumi.NewClient(server.URL)
	if _, err := client.GetWatching("12345"); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
