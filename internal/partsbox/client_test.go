package partsbox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for missing API key")
	}
	if _, err := New(Config{APIKey: "   "}); err == nil {
		t.Fatal("expected error for blank API key")
	}
}

func TestCallSendsAuthorizedPost(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotBody map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		_, _ = w.Write([]byte(`{"data": {"part/id": "part_001"}}`))
	})

	data, err := client.Call(context.Background(), "part/get", map[string]any{"part/id": "part_001"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/part/get" {
		t.Errorf("expected path /part/get, got %q", gotPath)
	}
	if gotAuth != "APIKey test-key" {
		t.Errorf("expected APIKey authorization, got %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected JSON content type, got %q", gotContentType)
	}
	if gotBody["part/id"] != "part_001" {
		t.Errorf("expected part/id in body, got %v", gotBody)
	}
	record, ok := data.(map[string]any)
	if !ok || record["part/id"] != "part_001" {
		t.Errorf("unexpected data payload: %v", data)
	}
}

func TestCallNilPayloadSendsEmptyObject(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("expected JSON object body: %v", err)
		}
		_, _ = w.Write([]byte(`{"data": null}`))
	})

	data, err := client.Call(context.Background(), "part/all", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil data, got %v", data)
	}
	if len(gotBody) != 0 {
		t.Errorf("expected empty JSON object body, got %v", gotBody)
	}
}

func TestCallErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "invalid api key"}`, http.StatusUnauthorized)
	})

	_, err := client.Call(context.Background(), "part/all", nil)
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("expected status in error, got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("expected body detail in error, got %v", err)
	}
}

func TestListAll(t *testing.T) {
	t.Run("returns records", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data": [{"part/id": "a"}, {"part/id": "b"}]}`))
		})
		records, err := client.ListAll(context.Background(), "part/all", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 2 {
			t.Errorf("expected 2 records, got %d", len(records))
		}
	})

	t.Run("null data becomes empty slice", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data": null}`))
		})
		records, err := client.ListAll(context.Background(), "part/all", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if records == nil || len(records) != 0 {
			t.Errorf("expected empty slice, got %v", records)
		}
	})

	t.Run("non-list data is an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data": {"unexpected": true}}`))
		})
		if _, err := client.ListAll(context.Background(), "part/all", nil); err == nil {
			t.Fatal("expected error for non-list data")
		}
	})
}

func TestCallContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Call(ctx, "part/all", nil); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
