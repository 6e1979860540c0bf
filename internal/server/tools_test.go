package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"pixel_create",
		"pixel_info",
		"pixel_close",
		"pixel_grid",
		"pixel_get_cell",
		"pixel_paint",
		"pixel_paint_stroke",
		"pixel_fill_line",
		"pixel_fill_column",
		"pixel_fill_grid",
		"pixel_reset",
		"pixel_undo",
		"pixel_redo",
		"pixel_history",
		"pixel_compact_history",
		"pixel_export_png",
		"pixel_import_png",
		"pixel_preview",
		"pixel_export_region",
		"pixel_palette",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("Duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("tool count: got %d, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema == nil {
				t.Fatal("Tool InputSchema is nil")
			}

			if schemaType := tool.InputSchema["type"]; schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			// Every required argument must be described
			required, _ := tool.InputSchema["required"].([]string)
			for _, name := range required {
				if _, ok := props[name]; !ok {
					t.Errorf("required argument %s has no property schema", name)
				}
			}
		})
	}
}

func TestToolDefinitions_RequiredID(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if tool.Name == "pixel_create" {
			continue
		}
		t.Run(tool.Name, func(t *testing.T) {
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("required should be a string slice")
			}
			found := false
			for _, name := range required {
				if name == "id" {
					found = true
				}
			}
			if !found {
				t.Error("document tools must require an id")
			}
		})
	}
}
