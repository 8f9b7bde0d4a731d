package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// fakeInventory serves canned list responses per operation.
type fakeInventory struct {
	lists map[string][]any
}

func (f *fakeInventory) Call(ctx context.Context, operation string, payload map[string]any) (any, error) {
	if records, ok := f.lists[operation]; ok {
		return records, nil
	}
	return nil, nil
}

func (f *fakeInventory) ListAll(ctx context.Context, operation string, payload map[string]any) ([]any, error) {
	return f.lists[operation], nil
}

// connectTestClient runs the server over an in-memory transport and returns
// a connected client session.
func connectTestClient(t *testing.T, server *Server) *mcp.ClientSession {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer connectCancel()

	session, err := client.Connect(connectCtx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		select {
		case err := <-serveErr:
			if err != nil {
				t.Errorf("serve returned error: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("server did not stop after cancel")
		}
	})
	return session
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestRunUnsupportedTransport(t *testing.T) {
	err := Run(context.Background(), Config{APIKey: "key", Transport: "websocket"})
	if err == nil {
		t.Fatal("expected error for unsupported transport")
	}
	if !strings.Contains(err.Error(), "not supported") {
		t.Errorf("expected 'not supported' in error, got: %v", err)
	}
}

func TestServerListsAllTools(t *testing.T) {
	server := newServer(&fakeInventory{}, 0)
	session := connectTestClient(t, server)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	listed, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}

	names := map[string]bool{}
	for _, tool := range listed.Tools {
		names[tool.Name] = true
	}
	expected := []string{
		"list_parts", "get_part_storage", "get_part_lots", "get_part",
		"create_part", "update_part", "delete_part",
		"list_storage_locations", "list_storage_parts", "list_storage_lots", "get_storage_location",
		"list_lots", "get_lot",
		"list_orders", "get_order_entries", "get_order",
		"list_projects", "get_project_entries", "get_project_builds", "get_project",
		"get_cache_info", "invalidate_cache",
	}
	for _, name := range expected {
		if !names[name] {
			t.Errorf("tool %q is not registered", name)
		}
	}
	if len(listed.Tools) != len(expected) {
		t.Errorf("expected %d tools, got %d", len(expected), len(listed.Tools))
	}
}

func TestListPartsEndToEnd(t *testing.T) {
	parts := make([]any, 0, 5)
	for i := 1; i <= 5; i++ {
		parts = append(parts, map[string]any{"part/id": fmt.Sprintf("id%d", i)})
	}
	server := newServer(&fakeInventory{lists: map[string][]any{"part/all": parts}}, 0)
	session := connectTestClient(t, server)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	callPage := func(args map[string]any) map[string]any {
		t.Helper()
		result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "list_parts", Arguments: args})
		if err != nil {
			t.Fatalf("call list_parts: %v", err)
		}
		raw, err := json.Marshal(result.StructuredContent)
		if err != nil {
			t.Fatalf("marshal structured content: %v", err)
		}
		var page map[string]any
		if err := json.Unmarshal(raw, &page); err != nil {
			t.Fatalf("decode page: %v", err)
		}
		return page
	}

	first := callPage(map[string]any{"limit": 2})
	if first["success"] != true {
		t.Fatalf("expected success, got %v", first)
	}
	if first["total"] != float64(5) || first["has_more"] != true {
		t.Errorf("unexpected first page metadata: %v", first)
	}
	cacheKey, _ := first["cache_key"].(string)
	if !strings.HasPrefix(cacheKey, "pb_") {
		t.Errorf("unexpected cache key %q", cacheKey)
	}

	last := callPage(map[string]any{"limit": 2, "offset": 4, "cache_key": cacheKey})
	if last["has_more"] != false {
		t.Errorf("expected final page, got %v", last)
	}
	data, _ := last["data"].([]any)
	if len(data) != 1 {
		t.Errorf("expected 1 item on final page, got %d", len(data))
	}

	invalid := callPage(map[string]any{"limit": 0})
	if invalid["success"] != false || invalid["error"] != "limit must be between 1 and 1000" {
		t.Errorf("unexpected validation result: %v", invalid)
	}
}

func TestCacheInfoEndToEnd(t *testing.T) {
	server := newServer(&fakeInventory{lists: map[string][]any{"part/all": {map[string]any{"part/id": "a"}}}}, 0)
	session := connectTestClient(t, server)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	listResult, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "list_parts", Arguments: map[string]any{}})
	if err != nil {
		t.Fatalf("call list_parts: %v", err)
	}
	page, _ := listResult.StructuredContent.(map[string]any)
	cacheKey, _ := page["cache_key"].(string)
	if cacheKey == "" {
		t.Fatalf("missing cache key in %v", page)
	}

	infoResult, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "get_cache_info", Arguments: map[string]any{"cache_key": cacheKey}})
	if err != nil {
		t.Fatalf("call get_cache_info: %v", err)
	}
	info, _ := infoResult.StructuredContent.(map[string]any)
	if info["valid"] != true || info["total_items"] != float64(1) {
		t.Errorf("unexpected cache info: %v", info)
	}
}
