package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// Shared schema fragments
var (
	idProperty = map[string]interface{}{
		"type":        "string",
		"description": "Document id returned by pixel_create",
	}
	colorProperty = map[string]interface{}{
		"type":        "string",
		"description": "Color as hex (\"#ff0000\", \"ff000080\", \"#f00\"), \"rgb(255, 0, 0)\", \"rgba(255, 0, 0, 0.5)\" or \"transparent\"",
	}
)

// idOnlySchema is the input schema of tools that take just a document id
func idOnlySchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"id": idProperty,
		},
		"required": []string{"id"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Document Lifecycle
		{
			Name:        "pixel_create",
			Description: "Create a new pixel-art document. Omitted values fall back to the server defaults (16x16, transparent, 25 px cells).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Number of columns (> 0)",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Number of rows (> 0)",
					},
					"fill_color": colorProperty,
					"pixel_size": map[string]interface{}{
						"type":        "integer",
						"description": "Rendering size hint: screen pixels per cell, used by pixel_preview",
					},
				},
			},
		},
		{
			Name:        "pixel_info",
			Description: "Get a document's dimensions, pixel size, initial color and history position.",
			InputSchema: idOnlySchema(),
		},
		{
			Name:        "pixel_close",
			Description: "Close a document and free its grid and history.",
			InputSchema: idOnlySchema(),
		},
		{
			Name:        "pixel_grid",
			Description: "Get every cell as rows of canonical hex strings. Transparent cells are empty strings.",
			InputSchema: idOnlySchema(),
		},
		{
			Name:        "pixel_get_cell",
			Description: "Get the color of one cell as hex, RGBA and HSL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty,
					"col": map[string]interface{}{
						"type":        "integer",
						"description": "Column (0-based, from left)",
					},
					"row": map[string]interface{}{
						"type":        "integer",
						"description": "Row (0-based, from top)",
					},
				},
				"required": []string{"id", "col", "row"},
			},
		},

		// Paint Operations
		{
			Name:        "pixel_paint",
			Description: "Paint a single cell. Recorded as one history step.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty,
					"col": map[string]interface{}{
						"type":        "integer",
						"description": "Column (0-based, from left)",
					},
					"row": map[string]interface{}{
						"type":        "integer",
						"description": "Row (0-based, from top)",
					},
					"color": colorProperty,
				},
				"required": []string{"id", "col", "row", "color"},
			},
		},
		{
			Name:        "pixel_paint_stroke",
			Description: "Paint several cells with one color as a single history step, like a drag gesture. Nothing is painted if any cell is out of bounds.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty,
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"col": map[string]interface{}{"type": "integer"},
								"row": map[string]interface{}{"type": "integer"},
							},
							"required": []string{"col", "row"},
						},
						"description": "Cells to paint",
					},
					"color": colorProperty,
				},
				"required": []string{"id", "points", "color"},
			},
		},
		{
			Name:        "pixel_fill_line",
			Description: "Fill one row with a color as a single history step.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty,
					"row": map[string]interface{}{
						"type":        "integer",
						"description": "Row to fill (0-based, from top)",
					},
					"color": colorProperty,
				},
				"required": []string{"id", "row", "color"},
			},
		},
		{
			Name:        "pixel_fill_column",
			Description: "Fill one column with a color as a single history step.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty,
					"col": map[string]interface{}{
						"type":        "integer",
						"description": "Column to fill (0-based, from left)",
					},
					"color": colorProperty,
				},
				"required": []string{"id", "col", "color"},
			},
		},
		{
			Name:        "pixel_fill_grid",
			Description: "Fill every cell with a color.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id":    idProperty,
					"color": colorProperty,
				},
				"required": []string{"id", "color"},
			},
		},
		{
			Name:        "pixel_reset",
			Description: "Reset every cell to the document's initial color.",
			InputSchema: idOnlySchema(),
		},

		// History
		{
			Name:        "pixel_undo",
			Description: "Undo the last paint operation. Reports changed=false when already at the initial state.",
			InputSchema: idOnlySchema(),
		},
		{
			Name:        "pixel_redo",
			Description: "Redo the last undone operation. Reports changed=false when already at the newest state.",
			InputSchema: idOnlySchema(),
		},
		{
			Name:        "pixel_history",
			Description: "List the history entries with their action labels and the current position.",
			InputSchema: idOnlySchema(),
		},
		{
			Name:        "pixel_compact_history",
			Description: "Drop every history entry except the current one to free memory. Undo and redo become unavailable.",
			InputSchema: idOnlySchema(),
		},

		// Raster Import/Export
		{
			Name:        "pixel_export_png",
			Description: "Export the grid as a PNG with one image pixel per cell, returned as base64. Transparent cells stay transparent.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty,
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file path to also write the PNG to",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "pixel_import_png",
			Description: "Replace the grid with an image, one cell per pixel, resizing the document to the image. Fully transparent pixels become transparent cells. Recorded as one history step.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty,
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to a PNG file",
					},
					"image_base64": map[string]interface{}{
						"type":        "string",
						"description": "Base64-encoded PNG data, used instead of path",
					},
				},
				"required": []string{"id"},
			},
		},

		// Rendering
		{
			Name:        "pixel_preview",
			Description: "Render the grid scaled up for viewing, with transparent cells on a checkerboard, as a base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty,
					"pixel_size": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels per cell. Defaults to the document's pixel size",
					},
					"show_grid": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw lines between cells",
						"default":     true,
					},
					"grid_color": colorProperty,
					"show_coordinates": map[string]interface{}{
						"type":        "boolean",
						"description": "Label column indices along the top and row indices along the left",
						"default":     false,
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "pixel_export_region",
			Description: "Crop a rectangular block of cells and return it as a base64 PNG, optionally enlarged.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty,
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left column (inclusive)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top row (inclusive)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right column (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom row (exclusive)",
					},
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels per cell in the output. Default 1",
						"default":     1,
					},
				},
				"required": []string{"id", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "pixel_palette",
			Description: "List the colors used in the grid, most frequent first, with counts and HSL values.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty,
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of colors to return (0 = all)",
						"default":     0,
					},
				},
				"required": []string{"id"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
