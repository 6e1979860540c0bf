package server

import (
	"bufio"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ironsheep/pixel-art-mcp/internal/config"
)

func TestNew(t *testing.T) {
	s := New(nil)
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.store == nil {
		t.Fatal("New() did not initialize store")
	}
	if s.cfg == nil {
		t.Fatal("New() did not fall back to the default config")
	}
}

func TestNew_UsesConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MaxImportPixels = 123
	s := New(cfg)
	if s.decoder.MaxPixels != 123 {
		t.Errorf("decoder.MaxPixels: got %d, want 123", s.decoder.MaxPixels)
	}
}

func TestHandleRequest_Initialize(t *testing.T) {
	s := New(nil)
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "initialize",
	}

	resp := s.handleRequest(req)

	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	if resp.ID != 1 {
		t.Errorf("ID: got %v, want 1", resp.ID)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}

	serverInfo, ok := result["serverInfo"].(map[string]interface{})
	if !ok {
		t.Fatal("serverInfo should be a map")
	}
	if serverInfo["name"] != "pixel-art-mcp" {
		t.Errorf("serverInfo.name: got %v", serverInfo["name"])
	}
	if serverInfo["version"] != Version {
		t.Errorf("serverInfo.version: got %v, want %s", serverInfo["version"], Version)
	}
}

func TestHandleRequest_Ping(t *testing.T) {
	s := New(nil)
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      "ping-1",
		Method:  "ping",
	}

	resp := s.handleRequest(req)

	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	if resp.ID != "ping-1" {
		t.Errorf("ID: got %v, want ping-1", resp.ID)
	}
}

func TestHandleRequest_ToolsList(t *testing.T) {
	s := New(nil)
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/list",
	}

	resp := s.handleRequest(req)

	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("tools: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}

func TestHandleRequest_NotificationsInitialized(t *testing.T) {
	s := New(nil)
	req := &MCPRequest{
		JSONRPC: "2.0",
		Method:  "notifications/initialized",
	}

	// Notifications don't get responses
	if resp := s.handleRequest(req); resp != nil {
		t.Error("notifications/initialized should return nil response")
	}
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	s := New(nil)
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      7,
		Method:  "resources/list",
	}

	resp := s.handleRequest(req)

	if resp == nil || resp.Error == nil {
		t.Fatal("unknown method should return an error response")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("Error.Code: got %d, want -32601", resp.Error.Code)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New(nil)
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	}

	resp := s.handleRequest(req)

	if resp.Error == nil {
		t.Fatal("expected an error response")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error.Code: got %d, want -32602", resp.Error.Code)
	}
}

func TestServe(t *testing.T) {
	s := New(nil)
	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`this is not json`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"pixel_create","arguments":{"width":3,"height":2}}}`,
		`{"jsonrpc":"2.0","id":3,"method":"ping"}`,
	}, "\n")

	var out strings.Builder
	if err := s.Serve(strings.NewReader(input), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	var ids []float64
	scanner := bufio.NewScanner(strings.NewReader(out.String()))
	for scanner.Scan() {
		var resp struct {
			ID    float64   `json:"id"`
			Error *MCPError `json:"error"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response line %q: %v", scanner.Text(), err)
		}
		if resp.Error != nil {
			t.Errorf("response %v: unexpected error %v", resp.ID, resp.Error)
		}
		ids = append(ids, resp.ID)
	}

	want := []float64{1, 2, 3}
	if len(ids) != len(want) {
		t.Fatalf("responses: got ids %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("response %d: got id %v, want %v", i, ids[i], want[i])
		}
	}
	if s.store.Len() != 1 {
		t.Errorf("store: got %d documents, want 1", s.store.Len())
	}
}
