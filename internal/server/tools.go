package server

import (
	"github.com/ironsheep/imagine-mcp/internal/imaging"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func object(required []string, properties map[string]interface{}) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

func enumProp(description string, values ...string) map[string]interface{} {
	p := prop("string", description)
	p["enum"] = values
	return p
}

func withDefault(p map[string]interface{}, def interface{}) map[string]interface{} {
	p["default"] = def
	return p
}

var (
	pathProperty    = prop("string", "Absolute path to the image file")
	outputProperty  = prop("string", "Optional path to also write the result to (.png, .jpg, .jpeg or .bmp)")
	paletteProperty = enumProp("Color model used to read and write pixels. Defaults to the file's natural model", "rgb", "cmyk", "gray")
)

func styleProp() map[string]interface{} {
	return withDefault(enumProp("Line pattern", "solid", "dashed", "dotted"), "solid")
}

// lineProperties adds the stroke arguments shared by drawing tools.
func lineProperties(props map[string]interface{}) map[string]interface{} {
	props["color"] = withDefault(prop("string", "Line color as #RRGGBB or #RRGGBBAA"), "#000000")
	props["style"] = styleProp()
	props["thickness"] = withDefault(prop("integer", "Line thickness in pixels"), 1)
	props["spacing"] = withDefault(prop("number", "Dash length or dot interval in pixels for dashed and dotted lines"), defaultSpacing)
	return props
}

func filterNames() []string {
	names := make([]string, 0, len(imaging.Filters))
	for _, name := range []string{"nearest", "linear", "catmull", "lanczos", "box", "gaussian"} {
		if _, ok := imaging.Filters[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, color depth and color model.",
			InputSchema: object([]string{"path"}, map[string]interface{}{
				"path": pathProperty,
			}),
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: object([]string{"path"}, map[string]interface{}{
				"path": pathProperty,
			}),
		},
		{
			Name:        "image_save",
			Description: "Write an image to a new file. The format is chosen from the output extension.",
			InputSchema: object([]string{"path", "output_path"}, map[string]interface{}{
				"path":        pathProperty,
				"output_path": prop("string", "Destination path (.png, .jpg, .jpeg or .bmp)"),
			}),
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate, in hex, RGB, HSL and the chosen palette.",
			InputSchema: object([]string{"path", "x", "y"}, map[string]interface{}{
				"path":    pathProperty,
				"x":       prop("integer", "X coordinate (0-based, from left)"),
				"y":       prop("integer", "Y coordinate (0-based, from top)"),
				"palette": paletteProperty,
			}),
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Sample colors at several points in one call.",
			InputSchema: object([]string{"path", "points"}, map[string]interface{}{
				"path": pathProperty,
				"points": map[string]interface{}{
					"type":        "array",
					"description": "Points to sample",
					"items": object([]string{"x", "y"}, map[string]interface{}{
						"x":     prop("integer", "X coordinate"),
						"y":     prop("integer", "Y coordinate"),
						"label": prop("string", "Optional label echoed in the result"),
					}),
				},
				"palette": paletteProperty,
			}),
		},

		// Geometry
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image and return it as base64-encoded PNG. Use this to zoom into areas that need detailed examination.",
			InputSchema: object([]string{"path", "x1", "y1", "x2", "y2"}, map[string]interface{}{
				"path":        pathProperty,
				"x1":          prop("integer", "Left edge X coordinate (0-based)"),
				"y1":          prop("integer", "Top edge Y coordinate (0-based)"),
				"x2":          prop("integer", "Right edge X coordinate (exclusive)"),
				"y2":          prop("integer", "Bottom edge Y coordinate (exclusive)"),
				"scale":       withDefault(prop("number", "Optional scale factor (e.g., 2.0 to double size)"), 1.0),
				"output_path": outputProperty,
			}),
		},
		{
			Name:        "image_crop_quadrant",
			Description: "Crop a named region of the image (top-left, top-right, bottom-left, bottom-right, top-half, bottom-half, left-half, right-half, center).",
			InputSchema: object([]string{"path", "region"}, map[string]interface{}{
				"path": pathProperty,
				"region": enumProp("Named region to extract",
					"top-left", "top-right", "bottom-left", "bottom-right",
					"top-half", "bottom-half", "left-half", "right-half", "center"),
				"scale":       withDefault(prop("number", "Optional scale factor"), 1.0),
				"output_path": outputProperty,
			}),
		},
		{
			Name:        "image_resize",
			Description: "Resize an image. Set width or height to 0 to keep the aspect ratio.",
			InputSchema: object([]string{"path", "width", "height"}, map[string]interface{}{
				"path":        pathProperty,
				"width":       prop("integer", "Target width in pixels (0 keeps aspect ratio)"),
				"height":      prop("integer", "Target height in pixels (0 keeps aspect ratio)"),
				"filter":      withDefault(enumProp("Resampling filter", filterNames()...), "lanczos"),
				"output_path": outputProperty,
			}),
		},
		{
			Name:        "image_thumbnail",
			Description: "Scale and center-crop an image to exactly the given size.",
			InputSchema: object([]string{"path", "width", "height"}, map[string]interface{}{
				"path":        pathProperty,
				"width":       prop("integer", "Thumbnail width in pixels"),
				"height":      prop("integer", "Thumbnail height in pixels"),
				"filter":      withDefault(enumProp("Resampling filter", filterNames()...), "lanczos"),
				"output_path": outputProperty,
			}),
		},
		{
			Name:        "image_rotate",
			Description: "Rotate an image counter-clockwise by an angle in degrees. The canvas grows to fit.",
			InputSchema: object([]string{"path", "angle"}, map[string]interface{}{
				"path":        pathProperty,
				"angle":       prop("number", "Rotation in degrees, counter-clockwise"),
				"background":  prop("string", "Fill for uncovered corners as #RRGGBB or #RRGGBBAA. Default transparent"),
				"output_path": outputProperty,
			}),
		},
		{
			Name:        "image_flip",
			Description: "Mirror an image horizontally or vertically.",
			InputSchema: object([]string{"path"}, map[string]interface{}{
				"path":        pathProperty,
				"direction":   withDefault(enumProp("Mirror axis", "horizontal", "vertical"), "horizontal"),
				"output_path": outputProperty,
			}),
		},
		{
			Name:        "image_paste",
			Description: "Paste one image onto another at a position, optionally blended.",
			InputSchema: object([]string{"path", "source_path", "x", "y"}, map[string]interface{}{
				"path":        pathProperty,
				"source_path": prop("string", "Absolute path to the image to paste"),
				"x":           prop("integer", "X of the pasted image's top-left corner"),
				"y":           prop("integer", "Y of the pasted image's top-left corner"),
				"opacity":     withDefault(prop("integer", "Opacity percentage of the pasted image (0-100)"), 100),
				"output_path": outputProperty,
			}),
		},

		// Filters
		{
			Name:        "image_effect",
			Description: "Apply a named effect: negative, grayscale, sharpen, blur (amount = radius), gamma (amount = gamma), brightness or contrast (amount in -1..1).",
			InputSchema: object([]string{"path", "effect"}, map[string]interface{}{
				"path":        pathProperty,
				"effect":      enumProp("Effect name", imaging.Effects...),
				"amount":      prop("number", "Effect strength, see description"),
				"output_path": outputProperty,
			}),
		},
		{
			Name:        "image_convolve",
			Description: "Convolve the image with a custom kernel. Each channel of the palette is accumulated separately; pixels whose neighborhood leaves the image are kept unchanged.",
			InputSchema: object([]string{"path", "kernel"}, map[string]interface{}{
				"path": pathProperty,
				"kernel": map[string]interface{}{
					"type":        "array",
					"description": "Kernel rows, all of the same length",
					"items": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "number"},
					},
				},
				"palette":     paletteProperty,
				"output_path": outputProperty,
			}),
		},
		{
			Name:        "image_detect_borders",
			Description: "Highlight borders with one of three 3x3 Laplacian-style kernels: 1 (4-neighbor), 2 (8-neighbor), 3 (edges weighed against corners).",
			InputSchema: object([]string{"path"}, map[string]interface{}{
				"path": pathProperty,
				"variant": map[string]interface{}{
					"type":        "integer",
					"description": "Kernel variant",
					"enum":        []int{1, 2, 3},
					"default":     1,
				},
				"palette":     paletteProperty,
				"output_path": outputProperty,
			}),
		},

		// Drawing
		{
			Name:        "image_grid_overlay",
			Description: "Overlay a pixel coordinate grid on the image, optionally labeling each intersection.",
			InputSchema: object([]string{"path"}, map[string]interface{}{
				"path":             pathProperty,
				"grid_spacing":     withDefault(prop("integer", "Pixels between grid lines"), defaultGridSpacing),
				"show_coordinates": withDefault(prop("boolean", "Label intersections with their coordinates"), false),
				"grid_color":       withDefault(prop("string", "Grid color as #RRGGBB or #RRGGBBAA"), "#FF000080"),
				"style":            styleProp(),
				"output_path":      outputProperty,
			}),
		},
		{
			Name:        "image_draw_line",
			Description: "Draw a solid, dashed or dotted line between two pixel coordinates, with an optional text label at the end point.",
			InputSchema: object([]string{"path", "x1", "y1", "x2", "y2"}, lineProperties(map[string]interface{}{
				"path":        pathProperty,
				"x1":          prop("number", "Start X"),
				"y1":          prop("number", "Start Y"),
				"x2":          prop("number", "End X"),
				"y2":          prop("number", "End Y"),
				"label":       prop("string", "Optional text drawn at the end point"),
				"font_size":   withDefault(prop("number", "Label size in points"), defaultFontSize),
				"output_path": outputProperty,
			})),
		},
		{
			Name:        "image_line_chart",
			Description: "Render one or more data series as a line chart with axes, border, ticks, grid and optional tick labels on a new canvas.",
			InputSchema: object([]string{"series"}, map[string]interface{}{
				"width":      withDefault(prop("integer", "Canvas width in pixels"), defaultChartWidth),
				"height":     withDefault(prop("integer", "Canvas height in pixels"), defaultChartHeight),
				"background": withDefault(prop("string", "Background color"), "#FFFFFF"),
				"series": map[string]interface{}{
					"type":        "array",
					"description": "Data series, drawn in order",
					"items": object([]string{"points"}, lineProperties(map[string]interface{}{
						"points": map[string]interface{}{
							"type":        "array",
							"description": "Data-space points, Y up",
							"items": object([]string{"x", "y"}, map[string]interface{}{
								"x": prop("number", "X value"),
								"y": prop("number", "Y value"),
							}),
						},
					})),
				},
				"fit_view_to_data": withDefault(prop("boolean", "Place the origin where the data needs it instead of centering it"), false),
				"margin_percent":   withDefault(prop("number", "Outer margin per side, as a percentage (or a fraction below 1)"), 5),
				"padding_percent":  withDefault(prop("number", "Inner padding per side, as a percentage (or a fraction below 1)"), 5),
				"label_axes":       withDefault(prop("boolean", "Draw tick labels"), false),
				"font_size":        withDefault(prop("number", "Tick label size in points"), defaultFontSize),
				"scale_step_x":     withDefault(prop("number", "X tick spacing in data units"), 5),
				"scale_step_y":     withDefault(prop("number", "Y tick spacing in data units"), 5),
				"hide_grid":        withDefault(prop("boolean", "Skip axes, border, ticks and grid"), false),
				"output_path":      outputProperty,
			}),
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
