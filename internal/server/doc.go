// Package server implements the MCP (Model Context Protocol) server for pixel-art editing.
//
// This package provides a JSON-RPC 2.0 server that exposes pixel-art documents
// through the MCP protocol, so an MCP client can create a grid, paint it, step
// through its history, and exchange it with PNG files.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Document Lifecycle:
//   - pixel_create: Create a document, returns its id
//   - pixel_info: Dimensions, pixel size and history position
//   - pixel_close: Drop a document
//   - pixel_grid: Every cell as hex rows
//   - pixel_get_cell: One cell as hex, RGBA and HSL
//
// Paint Operations (one history step each):
//   - pixel_paint, pixel_paint_stroke
//   - pixel_fill_line, pixel_fill_column, pixel_fill_grid
//   - pixel_reset
//
// History:
//   - pixel_undo, pixel_redo, pixel_history, pixel_compact_history
//
// Raster Import/Export:
//   - pixel_export_png: One image pixel per cell
//   - pixel_import_png: Replace the grid with an image
//
// Rendering:
//   - pixel_preview: Scaled preview with checkerboard and grid lines
//   - pixel_export_region: Crop of a block of cells
//   - pixel_palette: Colors in use, most frequent first
//
// # Documents
//
// Documents live in a workspace.Store keyed by a generated id for the lifetime
// of the server process, up to the configured max_documents.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "coordinates out of bounds: ..."
//
// A failed tool call never changes the document.
//
// # Usage
//
//	srv := server.New(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
