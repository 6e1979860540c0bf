// Package render produces viewable images of pixel-art grids.
//
// Where package raster maps one cell to one pixel for export, render scales
// cells up to the document's pixel size hint so a client can look at the
// artwork: Transparent cells are shown over a checkerboard, grid lines and
// row/column indices can be overlaid, and rectangular regions can be cropped
// out and enlarged.
//
// All results are PNG images returned as base64 strings, the form tool
// clients consume directly.
package render
