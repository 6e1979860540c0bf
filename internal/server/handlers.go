package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ironsheep/pixel-art-mcp/internal/pixelart"
	"github.com/ironsheep/pixel-art-mcp/internal/raster"
	"github.com/ironsheep/pixel-art-mcp/internal/render"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "pixel_create", "pixel_paint").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.debugf("tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Looks up the document in the store
//  4. Calls the appropriate pixelart/raster/render function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Document Lifecycle
	case "pixel_create":
		return s.handlePixelCreate(args)
	case "pixel_info":
		return s.handlePixelInfo(args)
	case "pixel_close":
		return s.handlePixelClose(args)
	case "pixel_grid":
		return s.handlePixelGrid(args)
	case "pixel_get_cell":
		return s.handlePixelGetCell(args)

	// Paint Operations
	case "pixel_paint":
		return s.handlePixelPaint(args)
	case "pixel_paint_stroke":
		return s.handlePixelPaintStroke(args)
	case "pixel_fill_line":
		return s.handlePixelFillLine(args)
	case "pixel_fill_column":
		return s.handlePixelFillColumn(args)
	case "pixel_fill_grid":
		return s.handlePixelFillGrid(args)
	case "pixel_reset":
		return s.handlePixelReset(args)

	// History
	case "pixel_undo":
		return s.handlePixelUndo(args)
	case "pixel_redo":
		return s.handlePixelRedo(args)
	case "pixel_history":
		return s.handlePixelHistory(args)
	case "pixel_compact_history":
		return s.handlePixelCompactHistory(args)

	// Raster Import/Export
	case "pixel_export_png":
		return s.handlePixelExportPNG(args)
	case "pixel_import_png":
		return s.handlePixelImportPNG(args)

	// Rendering
	case "pixel_preview":
		return s.handlePixelPreview(args)
	case "pixel_export_region":
		return s.handlePixelExportRegion(args)
	case "pixel_palette":
		return s.handlePixelPalette(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Result Types ===

// DocumentInfo describes a document after an operation.
type DocumentInfo struct {
	ID           string                `json:"id"`
	Width        int                   `json:"width"`
	Height       int                   `json:"height"`
	PixelSize    int                   `json:"pixel_size"`
	InitialColor string                `json:"initial_color"`
	History      pixelart.HistoryState `json:"history"`
}

// NavigationResult is returned by pixel_undo and pixel_redo.
type NavigationResult struct {
	Changed  bool          `json:"changed"`
	Document *DocumentInfo `json:"document"`
}

// HistoryResult is returned by pixel_history.
type HistoryResult struct {
	pixelart.HistoryState
	Entries []pixelart.HistoryEntry `json:"entries"`
}

// GridResult is returned by pixel_grid.
type GridResult struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Rows   [][]string `json:"rows"`
}

// ExportResult is returned by pixel_export_png.
type ExportResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	Path        string `json:"path,omitempty"`
}

func describe(doc *pixelart.Document) *DocumentInfo {
	return &DocumentInfo{
		ID:           doc.ID(),
		Width:        doc.Width(),
		Height:       doc.Height(),
		PixelSize:    doc.PixelSize(),
		InitialColor: doc.InitialColor().String(),
		History:      doc.HistoryState(),
	}
}

// parseColorArg parses a color argument, naming the argument on failure
func parseColorArg(name, value string) (pixelart.Color, error) {
	c, err := pixelart.ParseColor(value)
	if err != nil {
		return pixelart.Transparent, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// requiredColorArg parses a color argument that must be present. Erasing
// takes an explicit "transparent".
func requiredColorArg(name string, value *string) (pixelart.Color, error) {
	if value == nil || *value == "" {
		return pixelart.Transparent, fmt.Errorf("%s is required (use \"transparent\" to erase)", name)
	}
	return parseColorArg(name, *value)
}

// === Document Lifecycle Handlers ===

type documentArgs struct {
	ID string `json:"id"`
}

// document unmarshals args carrying a document id and looks it up
func (s *Server) document(args json.RawMessage) (*pixelart.Document, error) {
	var a documentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.store.Get(a.ID)
}

type pixelCreateArgs struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	FillColor *string `json:"fill_color"`
	PixelSize int     `json:"pixel_size"`
}

func (s *Server) handlePixelCreate(args json.RawMessage) (interface{}, error) {
	var a pixelCreateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Width == 0 {
		a.Width = s.cfg.Defaults.Width
	}
	if a.Height == 0 {
		a.Height = s.cfg.Defaults.Height
	}
	if a.PixelSize == 0 {
		a.PixelSize = s.cfg.Defaults.PixelSize
	}

	// Created documents share the import cell budget
	if a.Width > 0 && a.Height > 0 && a.Width > s.cfg.MaxImportPixels/a.Height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d cells", pixelart.ErrInvalidDimensions, a.Width, a.Height, s.cfg.MaxImportPixels)
	}

	fill := s.cfg.FillColor()
	if a.FillColor != nil {
		c, err := parseColorArg("fill_color", *a.FillColor)
		if err != nil {
			return nil, err
		}
		fill = c
	}

	doc, err := pixelart.New(a.Width, a.Height, pixelart.WithFill(fill), pixelart.WithPixelSize(a.PixelSize))
	if err != nil {
		return nil, err
	}
	if err := s.store.Add(doc); err != nil {
		return nil, err
	}

	s.debugf("created document %s (%dx%d)", doc.ID(), doc.Width(), doc.Height())
	return describe(doc), nil
}

func (s *Server) handlePixelInfo(args json.RawMessage) (interface{}, error) {
	doc, err := s.document(args)
	if err != nil {
		return nil, err
	}
	return describe(doc), nil
}

func (s *Server) handlePixelClose(args json.RawMessage) (interface{}, error) {
	var a documentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if _, err := s.store.Get(a.ID); err != nil {
		return nil, err
	}
	s.store.Evict(a.ID)
	return map[string]interface{}{"closed": a.ID, "open_documents": s.store.Len()}, nil
}

func (s *Server) handlePixelGrid(args json.RawMessage) (interface{}, error) {
	doc, err := s.document(args)
	if err != nil {
		return nil, err
	}

	rows := doc.Grid().Rows()
	out := make([][]string, len(rows))
	for y, row := range rows {
		out[y] = make([]string, len(row))
		for x, c := range row {
			out[y][x] = c.Hex()
		}
	}
	return &GridResult{Width: doc.Width(), Height: doc.Height(), Rows: out}, nil
}

type cellArgs struct {
	ID  string `json:"id"`
	Col int    `json:"col"`
	Row int    `json:"row"`
}

func (s *Server) handlePixelGetCell(args json.RawMessage) (interface{}, error) {
	var a cellArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.Get(a.ID)
	if err != nil {
		return nil, err
	}
	return doc.Sample(a.Col, a.Row)
}

// === Paint Operation Handlers ===

type pixelPaintArgs struct {
	ID    string  `json:"id"`
	Col   int     `json:"col"`
	Row   int     `json:"row"`
	Color *string `json:"color"`
}

func (s *Server) handlePixelPaint(args json.RawMessage) (interface{}, error) {
	var a pixelPaintArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.Get(a.ID)
	if err != nil {
		return nil, err
	}
	c, err := requiredColorArg("color", a.Color)
	if err != nil {
		return nil, err
	}
	if err := doc.PaintPixel(a.Col, a.Row, c); err != nil {
		return nil, err
	}
	return describe(doc), nil
}

type pixelPaintStrokeArgs struct {
	ID     string           `json:"id"`
	Points []pixelart.Point `json:"points"`
	Color  *string          `json:"color"`
}

func (s *Server) handlePixelPaintStroke(args json.RawMessage) (interface{}, error) {
	var a pixelPaintStrokeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.Get(a.ID)
	if err != nil {
		return nil, err
	}
	c, err := requiredColorArg("color", a.Color)
	if err != nil {
		return nil, err
	}
	if err := doc.PaintPixels(a.Points, c); err != nil {
		return nil, err
	}
	return describe(doc), nil
}

type pixelFillLineArgs struct {
	ID    string  `json:"id"`
	Row   int     `json:"row"`
	Color *string `json:"color"`
}

func (s *Server) handlePixelFillLine(args json.RawMessage) (interface{}, error) {
	var a pixelFillLineArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.Get(a.ID)
	if err != nil {
		return nil, err
	}
	c, err := requiredColorArg("color", a.Color)
	if err != nil {
		return nil, err
	}
	if err := doc.FillLine(c, a.Row); err != nil {
		return nil, err
	}
	return describe(doc), nil
}

type pixelFillColumnArgs struct {
	ID    string  `json:"id"`
	Col   int     `json:"col"`
	Color *string `json:"color"`
}

func (s *Server) handlePixelFillColumn(args json.RawMessage) (interface{}, error) {
	var a pixelFillColumnArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.Get(a.ID)
	if err != nil {
		return nil, err
	}
	c, err := requiredColorArg("color", a.Color)
	if err != nil {
		return nil, err
	}
	if err := doc.FillColumn(c, a.Col); err != nil {
		return nil, err
	}
	return describe(doc), nil
}

type pixelFillGridArgs struct {
	ID    string  `json:"id"`
	Color *string `json:"color"`
}

func (s *Server) handlePixelFillGrid(args json.RawMessage) (interface{}, error) {
	var a pixelFillGridArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.Get(a.ID)
	if err != nil {
		return nil, err
	}
	c, err := requiredColorArg("color", a.Color)
	if err != nil {
		return nil, err
	}
	if err := doc.FillGrid(c); err != nil {
		return nil, err
	}
	return describe(doc), nil
}

func (s *Server) handlePixelReset(args json.RawMessage) (interface{}, error) {
	doc, err := s.document(args)
	if err != nil {
		return nil, err
	}
	if err := doc.ResetGrid(); err != nil {
		return nil, err
	}
	return describe(doc), nil
}

// === History Handlers ===

func (s *Server) handlePixelUndo(args json.RawMessage) (interface{}, error) {
	doc, err := s.document(args)
	if err != nil {
		return nil, err
	}
	changed := doc.Undo()
	return &NavigationResult{Changed: changed, Document: describe(doc)}, nil
}

func (s *Server) handlePixelRedo(args json.RawMessage) (interface{}, error) {
	doc, err := s.document(args)
	if err != nil {
		return nil, err
	}
	changed := doc.Redo()
	return &NavigationResult{Changed: changed, Document: describe(doc)}, nil
}

func (s *Server) handlePixelHistory(args json.RawMessage) (interface{}, error) {
	doc, err := s.document(args)
	if err != nil {
		return nil, err
	}
	return &HistoryResult{
		HistoryState: doc.HistoryState(),
		Entries:      doc.HistoryEntries(),
	}, nil
}

func (s *Server) handlePixelCompactHistory(args json.RawMessage) (interface{}, error) {
	doc, err := s.document(args)
	if err != nil {
		return nil, err
	}
	doc.CompactHistory()
	return describe(doc), nil
}

// === Raster Import/Export Handlers ===

type pixelExportArgs struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

func (s *Server) handlePixelExportPNG(args json.RawMessage) (interface{}, error) {
	var a pixelExportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.Get(a.ID)
	if err != nil {
		return nil, err
	}

	data, err := raster.EncodeBytes(doc.Grid())
	if err != nil {
		return nil, err
	}
	if a.Path != "" {
		if err := os.WriteFile(a.Path, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write png: %w", err)
		}
		s.debugf("exported %s to %s", doc.ID(), a.Path)
	}

	return &ExportResult{
		Width:       doc.Width(),
		Height:      doc.Height(),
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    "image/png",
		Path:        a.Path,
	}, nil
}

type pixelImportArgs struct {
	ID          string `json:"id"`
	Path        string `json:"path"`
	ImageBase64 string `json:"image_base64"`
}

func (s *Server) handlePixelImportPNG(args json.RawMessage) (interface{}, error) {
	var a pixelImportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.Get(a.ID)
	if err != nil {
		return nil, err
	}

	switch {
	case a.Path != "" && a.ImageBase64 != "":
		return nil, fmt.Errorf("give either path or image_base64, not both")
	case a.Path != "":
		f, err := os.Open(a.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		defer f.Close()
		if err := s.decoder.Import(doc, f); err != nil {
			return nil, err
		}
	case a.ImageBase64 != "":
		data, err := base64.StdEncoding.DecodeString(a.ImageBase64)
		if err != nil {
			return nil, fmt.Errorf("invalid image_base64: %w", err)
		}
		if err := s.decoder.Import(doc, bytes.NewReader(data)); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("path or image_base64 is required")
	}

	s.debugf("imported image into %s (%dx%d)", doc.ID(), doc.Width(), doc.Height())
	return describe(doc), nil
}

// === Rendering Handlers ===

type pixelPreviewArgs struct {
	ID              string `json:"id"`
	PixelSize       int    `json:"pixel_size"`
	ShowGrid        *bool  `json:"show_grid"`
	GridColor       string `json:"grid_color"`
	ShowCoordinates bool   `json:"show_coordinates"`
}

func (s *Server) handlePixelPreview(args json.RawMessage) (interface{}, error) {
	var a pixelPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.Get(a.ID)
	if err != nil {
		return nil, err
	}

	if a.PixelSize == 0 {
		a.PixelSize = doc.PixelSize()
	}
	if a.PixelSize > s.cfg.Preview.MaxPixelSize {
		return nil, fmt.Errorf("pixel_size %d exceeds the configured maximum %d", a.PixelSize, s.cfg.Preview.MaxPixelSize)
	}
	showGrid := true
	if a.ShowGrid != nil {
		showGrid = *a.ShowGrid
	}
	gridColor := s.cfg.GridColor()
	if a.GridColor != "" {
		c, err := parseColorArg("grid_color", a.GridColor)
		if err != nil {
			return nil, err
		}
		gridColor = c
	}

	return render.PreviewPNG(doc.Grid(), render.PreviewOptions{
		PixelSize:       a.PixelSize,
		ShowGrid:        showGrid,
		GridColor:       gridColor,
		ShowCoordinates: a.ShowCoordinates,
		MaxPixels:       s.cfg.Preview.MaxPixels,
	})
}

type pixelExportRegionArgs struct {
	ID    string `json:"id"`
	X1    int    `json:"x1"`
	Y1    int    `json:"y1"`
	X2    int    `json:"x2"`
	Y2    int    `json:"y2"`
	Scale int    `json:"scale"`
}

func (s *Server) handlePixelExportRegion(args json.RawMessage) (interface{}, error) {
	var a pixelExportRegionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1
	}
	doc, err := s.store.Get(a.ID)
	if err != nil {
		return nil, err
	}
	return render.ExportRegion(doc.Grid(), a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

type pixelPaletteArgs struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func (s *Server) handlePixelPalette(args json.RawMessage) (interface{}, error) {
	var a pixelPaletteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.Get(a.ID)
	if err != nil {
		return nil, err
	}
	return pixelart.Palette(doc.Grid(), a.Count), nil
}
