package server

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/ironsheep/image-dataset-tools/internal/cursor"
	"github.com/ironsheep/image-dataset-tools/internal/dataset"
	"github.com/ironsheep/image-dataset-tools/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "dataset_describe", "image_info").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// endOfDatasetMessage is returned by dataset_browse_next after the last image.
const endOfDatasetMessage = "You have viewed all images in the annotation."

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
		if s.cfg.Debug() {
			log.Printf("tool %s failed: %v", params.Name, err)
		}
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Dataset Pipeline
	case "dataset_load":
		return s.handleDatasetLoad(args)
	case "dataset_probe":
		return s.handleDatasetProbe(args)
	case "dataset_describe":
		return s.handleDatasetDescribe(args)
	case "dataset_filter":
		return s.handleDatasetFilter(args)
	case "dataset_sort":
		return s.handleDatasetSort(args)

	// Dataset Browsing
	case "dataset_browse_open":
		return s.handleBrowseOpen(args)
	case "dataset_browse_next":
		return s.handleBrowseNext(args)

	// Single Image
	case "image_info":
		return s.handleImageInfo(args)
	case "image_histogram":
		return s.handleImageHistogram(args)
	case "image_grayscale":
		return s.handleImageGrayscale(args)

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

// === Result Shapes ===

type rowResult struct {
	Row    int                    `json:"row"`
	Values map[string]interface{} `json:"values"`
}

type probeFailureResult struct {
	Row   int    `json:"row"`
	Path  string `json:"path"`
	Error string `json:"error"`
}

type tableResult struct {
	Columns       []string             `json:"columns"`
	RowCount      int                  `json:"row_count"`
	Rows          []rowResult          `json:"rows"`
	ProbeFailures []probeFailureResult `json:"probe_failures,omitempty"`
}

func newTableResult(t *dataset.Table) *tableResult {
	columns := t.Columns()
	res := &tableResult{
		Columns:  columns,
		RowCount: t.Len(),
		Rows:     make([]rowResult, t.Len()),
	}
	for i := range res.Rows {
		values := make(map[string]interface{}, len(columns))
		for _, c := range columns {
			values[c], _ = t.Value(i, c)
		}
		res.Rows[i] = rowResult{Row: t.Origin(i), Values: values}
	}
	for _, f := range t.ProbeFailures() {
		res.ProbeFailures = append(res.ProbeFailures, probeFailureResult{Row: f.Row, Path: f.Path, Error: f.Err.Error()})
	}
	return res
}

// === Dataset Pipeline Handlers ===

type datasetArgs struct {
	AnnotationPath string `json:"annotation_path"`
	Policy         string `json:"policy"`
}

// probe loads and probes the annotation named in a.
func (s *Server) probe(a datasetArgs) (*dataset.Table, error) {
	policy := s.cfg.ProbePolicy
	if a.Policy != "" {
		p, err := dataset.ParseProbePolicy(a.Policy)
		if err != nil {
			return nil, err
		}
		policy = p
	}

	t, err := dataset.Load(a.AnnotationPath)
	if err != nil {
		return nil, err
	}
	return dataset.Probe(t, s.decoder, policy)
}

func (s *Server) handleDatasetLoad(args json.RawMessage) (interface{}, error) {
	var a datasetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	t, err := dataset.Load(a.AnnotationPath)
	if err != nil {
		return nil, err
	}
	return newTableResult(t), nil
}

func (s *Server) handleDatasetProbe(args json.RawMessage) (interface{}, error) {
	var a datasetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	t, err := s.probe(a)
	if err != nil {
		return nil, err
	}
	return newTableResult(t), nil
}

func (s *Server) handleDatasetDescribe(args json.RawMessage) (interface{}, error) {
	var a datasetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	t, err := s.probe(a)
	if err != nil {
		return nil, err
	}
	return dataset.Describe(t)
}

type datasetFilterArgs struct {
	datasetArgs
	MaxHeight *int   `json:"max_height"`
	MaxWidth  *int   `json:"max_width"`
	Where     string `json:"where"`
}

func (s *Server) handleDatasetFilter(args json.RawMessage) (interface{}, error) {
	var a datasetFilterArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	bounds := dataset.Bounds{
		MaxHeight: dataset.IntOf(s.cfg.MaxHeight),
		MaxWidth:  dataset.IntOf(s.cfg.MaxWidth),
	}
	if a.Where != "" {
		b, err := dataset.ParseWhere(a.Where)
		if err != nil {
			return nil, err
		}
		bounds = b
	}
	if a.MaxHeight != nil {
		bounds.MaxHeight = dataset.IntOf(*a.MaxHeight)
	}
	if a.MaxWidth != nil {
		bounds.MaxWidth = dataset.IntOf(*a.MaxWidth)
	}

	t, err := s.probe(a.datasetArgs)
	if err != nil {
		return nil, err
	}
	filtered, err := dataset.FilterBounds(t, bounds)
	if err != nil {
		return nil, err
	}
	return newTableResult(filtered), nil
}

func (s *Server) handleDatasetSort(args json.RawMessage) (interface{}, error) {
	var a datasetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	t, err := s.probe(a)
	if err != nil {
		return nil, err
	}
	t, err = dataset.AddArea(t)
	if err != nil {
		return nil, err
	}
	t, err = dataset.SortByArea(t)
	if err != nil {
		return nil, err
	}
	return newTableResult(t), nil
}

// === Dataset Browsing Handlers ===

type browseOpenResult struct {
	CursorID string `json:"cursor_id"`
	Count    int    `json:"count"`
}

func (s *Server) handleBrowseOpen(args json.RawMessage) (interface{}, error) {
	var a datasetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cur, err := cursor.Open(a.AnnotationPath)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursorID++
	id := "cursor-" + strconv.Itoa(s.cursorID)
	s.cursors[id] = cur
	return &browseOpenResult{CursorID: id, Count: cur.Len()}, nil
}

type browseNextArgs struct {
	CursorID      string `json:"cursor_id"`
	Preview       bool   `json:"preview"`
	PreviewWidth  int    `json:"preview_width"`
	PreviewHeight int    `json:"preview_height"`
}

type browseNextResult struct {
	Done      bool                   `json:"done"`
	Message   string                 `json:"message,omitempty"`
	Item      *cursor.Item           `json:"item,omitempty"`
	Remaining int                    `json:"remaining"`
	Preview   *imaging.PreviewResult `json:"preview,omitempty"`
}

func (s *Server) handleBrowseNext(args json.RawMessage) (interface{}, error) {
	var a browseNextArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.PreviewWidth == 0 {
		a.PreviewWidth = s.cfg.PreviewWidth
	}
	if a.PreviewHeight == 0 {
		a.PreviewHeight = s.cfg.PreviewHeight
	}

	s.mu.Lock()
	if s.exhausted[a.CursorID] {
		s.mu.Unlock()
		return &browseNextResult{Done: true, Message: endOfDatasetMessage}, nil
	}
	cur, ok := s.cursors[a.CursorID]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("unknown cursor: %s", a.CursorID)
	}
	item, ok := cur.Next()
	remaining := cur.Remaining()
	if !ok {
		// Release the table; only the id is remembered.
		delete(s.cursors, a.CursorID)
		s.exhausted[a.CursorID] = true
	}
	s.mu.Unlock()

	if !ok {
		return &browseNextResult{Done: true, Message: endOfDatasetMessage}, nil
	}

	res := &browseNextResult{Item: &item, Remaining: remaining}
	if a.Preview {
		img, err := s.cache.Load(item.Path)
		if err != nil {
			return nil, fmt.Errorf("image %d (%s): %w", item.Index, item.Path, err)
		}
		// The cursor never returns to this image.
		s.cache.Evict(item.Path)

		res.Preview, err = imaging.Preview(img, a.PreviewWidth, a.PreviewHeight)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// === Single Image Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.Inspect(a.Path)
}

func (s *Server) handleImageHistogram(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.ChannelHistogram(img), nil
}

type imageGrayscaleArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
}

type imageGrayscaleResult struct {
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageGrayscale(args json.RawMessage) (interface{}, error) {
	var a imageGrayscaleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutputPath == "" {
		return nil, fmt.Errorf("output_path is required")
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if err := imaging.SaveGrayscale(img, a.OutputPath); err != nil {
		return nil, err
	}
	return &imageGrayscaleResult{OutputPath: a.OutputPath}, nil
}
