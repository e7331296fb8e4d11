// Package server implements the MCP (Model Context Protocol) server for the
// image dataset pipeline.
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
// Dataset Pipeline (each call re-reads the annotation; nothing is persisted):
//   - dataset_load: Annotation rows as read
//   - dataset_probe: Rows plus height, width and depth
//   - dataset_describe: Statistics of height, width and depth
//   - dataset_filter: Rows within a size limit
//   - dataset_sort: Rows with area, sorted by ascending area
//
// Dataset Browsing:
//   - dataset_browse_open: Open a forward-only cursor
//   - dataset_browse_next: Next image of a cursor, with optional preview
//
// Single Image:
//   - image_info: Dimensions, channels and format
//   - image_histogram: Per-channel intensity histogram
//   - image_grayscale: Save a grayscale copy
//
// # Cursors
//
// Open cursors live until they run out of images. Reaching the end of a
// cursor is a normal result ({"done": true}), never a JSON-RPC error. The
// cursor and its table are then dropped, and only its id is kept so that
// later calls with that id keep answering done.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, which names the failed stage and its cause
package server
