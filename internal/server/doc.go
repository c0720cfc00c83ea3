// Package server implements the MCP (Model Context Protocol) server for the
// image manipulation tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the imaging,
// filter and chart packages through the MCP protocol.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_save: Write an image in another format
//
// Color Operations:
//   - image_sample_color: Get color at pixel
//   - image_sample_colors_multi: Sample multiple points
//
// Geometry:
//   - image_crop, image_crop_quadrant: Extract a region
//   - image_resize, image_thumbnail: Scale
//   - image_rotate, image_flip: Reorient
//   - image_paste: Composite one image onto another
//
// Filters:
//   - image_effect: Negative, grayscale, sharpen, blur, gamma, brightness, contrast
//   - image_convolve: Custom kernel convolution
//   - image_detect_borders: Laplacian border kernels
//
// Drawing:
//   - image_grid_overlay: Pixel coordinate grid
//   - image_draw_line: Solid, dashed or dotted line with optional label
//   - image_line_chart: Render data series as a chart
//
// Tools that produce an image return it as a base64 PNG and, when the
// output_path argument is set, also write it to disk.
//
// # Image Caching
//
// Decoded source images are cached by path for the lifetime of the server.
// Every tool edits a copy, so cached images are never modified. Writing to
// output_path evicts that path from the cache.
//
// # Error Handling
//
// Errors are returned as JSON-RPC error responses:
//   - -32601: unknown method
//   - -32602: malformed arguments or unknown tool
//   - -32000: the tool ran and failed; data holds the Go error string
//
// # Usage
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
