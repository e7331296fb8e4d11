package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func annotationPathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the CSV annotation file (header row, absolute_path column)",
	}
}

func policyProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"strict", "permissive"},
		"description": "What to do when an image cannot be decoded: strict aborts, permissive records null dimensions. Defaults to the server setting.",
	}
}

func imagePathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Dataset Pipeline
		{
			Name:        "dataset_load",
			Description: "Read an annotation CSV and return its rows. Image files are not opened.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"annotation_path": annotationPathProperty(),
				},
				"required": []string{"annotation_path"},
			},
		},
		{
			Name:        "dataset_probe",
			Description: "Read an annotation and add height, width and depth (channels) for every image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"annotation_path": annotationPathProperty(),
					"policy":          policyProperty(),
				},
				"required": []string{"annotation_path"},
			},
		},
		{
			Name:        "dataset_describe",
			Description: "Probe an annotation and return count, mean, std, min, quartiles and max of height, width and depth.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"annotation_path": annotationPathProperty(),
					"policy":          policyProperty(),
				},
				"required": []string{"annotation_path"},
			},
		},
		{
			Name:        "dataset_filter",
			Description: "Probe an annotation and keep images no larger than the given height and width (inclusive). Images that could not be probed are dropped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"annotation_path": annotationPathProperty(),
					"policy":          policyProperty(),
					"max_height": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum height in pixels. Defaults to the server setting (500).",
					},
					"max_width": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum width in pixels. Defaults to the server setting (500).",
					},
					"where": map[string]interface{}{
						"type":        "string",
						"description": "Alternative to max_height/max_width, e.g. \"height <= 500 and width <= 400\"",
					},
				},
				"required": []string{"annotation_path"},
			},
		},
		{
			Name:        "dataset_sort",
			Description: "Probe an annotation, add an area column (height x width) and sort by ascending area. Images without an area come last.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"annotation_path": annotationPathProperty(),
					"policy":          policyProperty(),
				},
				"required": []string{"annotation_path"},
			},
		},

		// Dataset Browsing
		{
			Name:        "dataset_browse_open",
			Description: "Open a forward-only cursor over the images of an annotation. Returns a cursor_id for dataset_browse_next.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"annotation_path": annotationPathProperty(),
				},
				"required": []string{"annotation_path"},
			},
		},
		{
			Name:        "dataset_browse_next",
			Description: "Return the next image of a cursor, optionally with a preview scaled to fit a box. Reports done=true after the last image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"cursor_id": map[string]interface{}{
						"type":        "string",
						"description": "Cursor returned by dataset_browse_open",
					},
					"preview": map[string]interface{}{
						"type":        "boolean",
						"description": "Include a base64 PNG preview of the image",
						"default":     false,
					},
					"preview_width": map[string]interface{}{
						"type":        "integer",
						"description": "Preview box width. Defaults to the server setting (800).",
					},
					"preview_height": map[string]interface{}{
						"type":        "integer",
						"description": "Preview box height. Defaults to the server setting (600).",
					},
				},
				"required": []string{"cursor_id"},
			},
		},

		// Single Image
		{
			Name:        "image_info",
			Description: "Get width, height, channel count, format and file size of an image. Only the header is read.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": imagePathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_histogram",
			Description: "Count pixel intensities (0-255) per red, green and blue channel and report the mean color.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": imagePathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_grayscale",
			Description: "Convert an image to grayscale and save it. The output format follows the output file extension.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": imagePathProperty(),
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Where to write the grayscale image (.png, .jpg, .gif, .bmp, .tif)",
					},
				},
				"required": []string{"path", "output_path"},
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
