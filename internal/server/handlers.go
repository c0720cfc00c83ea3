package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/ironsheep/imagine-mcp/internal/canvas"
	"github.com/ironsheep/imagine-mcp/internal/chart"
	"github.com/ironsheep/imagine-mcp/internal/filter"
	"github.com/ironsheep/imagine-mcp/internal/imaging"
	"github.com/ironsheep/imagine-mcp/internal/logging"
	"github.com/ironsheep/imagine-mcp/internal/matrix"
	"github.com/ironsheep/imagine-mcp/internal/palette"
)

var (
	// errInvalidParams marks arguments that could not be decoded. It maps
	// to JSON-RPC code -32602 instead of a tool failure.
	errInvalidParams = errors.New("invalid params")

	errUnknownTool = errors.New("unknown tool")
)

// Defaults applied by the handlers when an optional argument is omitted.
const (
	defaultGridSpacing = 50
	defaultChartWidth  = 640
	defaultChartHeight = 480
	defaultFontSize    = 12
	defaultSpacing     = 4
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_crop").
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
// Undecodable arguments and unknown tools return code -32602; any other tool
// error returns code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		logging.Logger().Debug("tool failed", "tool", params.Name, "err", err)
		if errors.Is(err, errInvalidParams) || errors.Is(err, errUnknownTool) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
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
//  3. Opens images through the cache as needed
//  4. Calls the imaging, filter or chart code
//  5. Saves the output when output_path is set and returns the result
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_save":
		return s.handleImageSave(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)

	// Geometry
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_crop_quadrant":
		return s.handleImageCropQuadrant(args)
	case "image_resize":
		return s.handleImageResize(args)
	case "image_thumbnail":
		return s.handleImageThumbnail(args)
	case "image_rotate":
		return s.handleImageRotate(args)
	case "image_flip":
		return s.handleImageFlip(args)
	case "image_paste":
		return s.handleImagePaste(args)

	// Filters
	case "image_effect":
		return s.handleImageEffect(args)
	case "image_convolve":
		return s.handleImageConvolve(args)
	case "image_detect_borders":
		return s.handleImageDetectBorders(args)

	// Drawing
	case "image_grid_overlay":
		return s.handleImageGridOverlay(args)
	case "image_draw_line":
		return s.handleImageDrawLine(args)
	case "image_line_chart":
		return s.handleImageLineChart(args)

	default:
		return nil, fmt.Errorf("%w: %s", errUnknownTool, name)
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

func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidParams, err)
	}
	return nil
}

// open loads path through the cache. An empty palette name picks the
// palette matching how the file is stored.
func (s *Server) open(path, paletteName string) (*imaging.Image, error) {
	if paletteName == "" {
		src, err := s.cache.Load(path)
		if err != nil {
			return nil, err
		}
		return imaging.FromImage(src, imaging.NaturalPalette(src)), nil
	}
	p, err := palette.ByName(paletteName)
	if err != nil {
		return nil, err
	}
	return s.cache.Open(path, p)
}

// SavedImageResult is an encoded image plus where it was written, if
// anywhere.
type SavedImageResult struct {
	*imaging.ImageResult
	SavedTo string `json:"saved_to,omitempty"`
}

// finish encodes img for the client and, when outputPath is set, writes it
// to disk and drops any stale cache entry for that path.
func (s *Server) finish(img *imaging.Image, outputPath string) (*SavedImageResult, error) {
	if outputPath != "" {
		if err := img.Save(outputPath); err != nil {
			return nil, err
		}
		s.cache.Evict(outputPath)
	}
	res, err := img.Result()
	if err != nil {
		return nil, err
	}
	return &SavedImageResult{ImageResult: res, SavedTo: outputPath}, nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageSaveArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
}

type imageSaveResult struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) handleImageSave(args json.RawMessage) (interface{}, error) {
	var a imageSaveArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.OutputPath == "" {
		return nil, fmt.Errorf("%w: output_path is required", errInvalidParams)
	}
	img, err := s.open(a.Path, "")
	if err != nil {
		return nil, err
	}
	if err := img.Save(a.OutputPath); err != nil {
		return nil, err
	}
	s.cache.Evict(a.OutputPath)
	return &imageSaveResult{
		Path:   a.OutputPath,
		Format: filepath.Ext(a.OutputPath),
		Width:  img.Width(),
		Height: img.Height(),
	}, nil
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path    string `json:"path"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Palette string `json:"palette"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.open(a.Path, a.Palette)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imageSampleColorsMultiArgs struct {
	Path    string                 `json:"path"`
	Points  []imaging.LabeledPoint `json:"points"`
	Palette string                 `json:"palette"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.open(a.Path, a.Palette)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColorsMulti(img, a.Points)
}

// === Geometry Handlers ===

type imageCropArgs struct {
	Path       string  `json:"path"`
	X1         int     `json:"x1"`
	Y1         int     `json:"y1"`
	X2         int     `json:"x2"`
	Y2         int     `json:"y2"`
	Scale      float64 `json:"scale"`
	OutputPath string  `json:"output_path"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.open(a.Path, "")
	if err != nil {
		return nil, err
	}
	out, err := img.Crop(a.X1, a.Y1, a.X2, a.Y2, a.Scale)
	if err != nil {
		return nil, err
	}
	return s.finish(out, a.OutputPath)
}

type imageCropQuadrantArgs struct {
	Path       string  `json:"path"`
	Region     string  `json:"region"`
	Scale      float64 `json:"scale"`
	OutputPath string  `json:"output_path"`
}

func (s *Server) handleImageCropQuadrant(args json.RawMessage) (interface{}, error) {
	var a imageCropQuadrantArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.open(a.Path, "")
	if err != nil {
		return nil, err
	}
	out, err := img.CropRegion(a.Region, a.Scale)
	if err != nil {
		return nil, err
	}
	return s.finish(out, a.OutputPath)
}

type imageResizeArgs struct {
	Path       string `json:"path"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Filter     string `json:"filter"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	f, err := imaging.ParseFilter(a.Filter)
	if err != nil {
		return nil, err
	}
	img, err := s.open(a.Path, "")
	if err != nil {
		return nil, err
	}
	out, err := img.Resize(a.Width, a.Height, f)
	if err != nil {
		return nil, err
	}
	return s.finish(out, a.OutputPath)
}

func (s *Server) handleImageThumbnail(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	f, err := imaging.ParseFilter(a.Filter)
	if err != nil {
		return nil, err
	}
	img, err := s.open(a.Path, "")
	if err != nil {
		return nil, err
	}
	out, err := img.Thumbnail(a.Width, a.Height, f)
	if err != nil {
		return nil, err
	}
	return s.finish(out, a.OutputPath)
}

type imageRotateArgs struct {
	Path       string  `json:"path"`
	Angle      float64 `json:"angle"`
	Background string  `json:"background"`
	OutputPath string  `json:"output_path"`
}

func (s *Server) handleImageRotate(args json.RawMessage) (interface{}, error) {
	var a imageRotateArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.open(a.Path, "")
	if err != nil {
		return nil, err
	}
	var bg palette.Color
	if a.Background != "" {
		if bg, err = palette.Parse(img.Palette(), a.Background); err != nil {
			return nil, err
		}
	}
	out, err := img.Rotate(a.Angle, bg)
	if err != nil {
		return nil, err
	}
	return s.finish(out, a.OutputPath)
}

type imageFlipArgs struct {
	Path       string `json:"path"`
	Direction  string `json:"direction"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageFlip(args json.RawMessage) (interface{}, error) {
	var a imageFlipArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.open(a.Path, "")
	if err != nil {
		return nil, err
	}
	var out *imaging.Image
	switch a.Direction {
	case "", "horizontal":
		out = img.FlipHorizontally()
	case "vertical":
		out = img.FlipVertically()
	default:
		return nil, fmt.Errorf("%w: direction %q (want horizontal or vertical)", errInvalidParams, a.Direction)
	}
	return s.finish(out, a.OutputPath)
}

type imagePasteArgs struct {
	Path       string `json:"path"`
	SourcePath string `json:"source_path"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Opacity    *int   `json:"opacity"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImagePaste(args json.RawMessage) (interface{}, error) {
	var a imagePasteArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	opacity := palette.Opaque
	if a.Opacity != nil {
		opacity = *a.Opacity
	}
	img, err := s.open(a.Path, "")
	if err != nil {
		return nil, err
	}
	src, err := s.open(a.SourcePath, "")
	if err != nil {
		return nil, err
	}
	out, err := img.Paste(src, image.Pt(a.X, a.Y), opacity)
	if err != nil {
		return nil, err
	}
	return s.finish(out, a.OutputPath)
}

// === Filter Handlers ===

type imageEffectArgs struct {
	Path       string  `json:"path"`
	Effect     string  `json:"effect"`
	Amount     float64 `json:"amount"`
	OutputPath string  `json:"output_path"`
}

func (s *Server) handleImageEffect(args json.RawMessage) (interface{}, error) {
	var a imageEffectArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.open(a.Path, "")
	if err != nil {
		return nil, err
	}
	out, err := img.ApplyEffect(a.Effect, a.Amount)
	if err != nil {
		return nil, err
	}
	return s.finish(out, a.OutputPath)
}

type imageConvolveArgs struct {
	Path       string      `json:"path"`
	Kernel     [][]float64 `json:"kernel"`
	Palette    string      `json:"palette"`
	OutputPath string      `json:"output_path"`
}

func (s *Server) handleImageConvolve(args json.RawMessage) (interface{}, error) {
	var a imageConvolveArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	kernel, err := kernelFromRows(a.Kernel)
	if err != nil {
		return nil, err
	}
	img, err := s.open(a.Path, a.Palette)
	if err != nil {
		return nil, err
	}
	out, err := img.Convolve(kernel)
	if err != nil {
		return nil, err
	}
	return s.finish(out, a.OutputPath)
}

// kernelFromRows builds a kernel from row-major rows of equal length.
func kernelFromRows(rows [][]float64) (*matrix.Matrix[float64], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: kernel must have at least one row and column", errInvalidParams)
	}
	width := len(rows[0])
	values := make([]float64, 0, width*len(rows))
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: kernel row %d has %d values, want %d", errInvalidParams, i, len(row), width)
		}
		values = append(values, row...)
	}
	return matrix.New(width, len(rows), values...)
}

type imageDetectBordersArgs struct {
	Path       string `json:"path"`
	Variant    int    `json:"variant"`
	Palette    string `json:"palette"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageDetectBorders(args json.RawMessage) (interface{}, error) {
	var a imageDetectBordersArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Variant == 0 {
		a.Variant = int(filter.VariantOne)
	}
	img, err := s.open(a.Path, a.Palette)
	if err != nil {
		return nil, err
	}
	out, err := img.DetectBorders(filter.BorderVariant(a.Variant))
	if err != nil {
		return nil, err
	}
	return s.finish(out, a.OutputPath)
}

// === Drawing Handlers ===

type imageGridOverlayArgs struct {
	Path            string `json:"path"`
	GridSpacing     int    `json:"grid_spacing"`
	ShowCoordinates bool   `json:"show_coordinates"`
	GridColor       string `json:"grid_color"`
	Style           string `json:"style"`
	OutputPath      string `json:"output_path"`
}

func (s *Server) handleImageGridOverlay(args json.RawMessage) (interface{}, error) {
	var a imageGridOverlayArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.GridSpacing == 0 {
		a.GridSpacing = defaultGridSpacing
	}
	style, err := chart.ParseStyle(a.Style)
	if err != nil {
		return nil, err
	}
	img, err := s.open(a.Path, "")
	if err != nil {
		return nil, err
	}
	opts := imaging.GridOverlayOptions{
		Spacing:         a.GridSpacing,
		Style:           style,
		ShowCoordinates: a.ShowCoordinates,
	}
	if a.GridColor != "" {
		if opts.Color, err = palette.Parse(img.Palette(), a.GridColor); err != nil {
			return nil, err
		}
	}
	out, err := img.GridOverlay(opts)
	if err != nil {
		return nil, err
	}
	return s.finish(out, a.OutputPath)
}

// lineArgs is the stroke description shared by image_draw_line and the
// series of image_line_chart.
type lineArgs struct {
	Color     string  `json:"color"`
	Style     string  `json:"style"`
	Thickness int     `json:"thickness"`
	Spacing   float64 `json:"spacing"`
}

func (l lineArgs) lineStyle(p palette.Palette) (chart.LineStyle, error) {
	if l.Color == "" {
		l.Color = "#000000"
	}
	if l.Thickness == 0 {
		l.Thickness = 1
	}
	if l.Spacing == 0 {
		l.Spacing = defaultSpacing
	}
	c, err := palette.Parse(p, l.Color)
	if err != nil {
		return chart.LineStyle{}, err
	}
	style, err := chart.ParseStyle(l.Style)
	if err != nil {
		return chart.LineStyle{}, err
	}
	return chart.NewLineStyle(c, style, l.Thickness, l.Spacing)
}

type imageDrawLineArgs struct {
	lineArgs
	Path       string  `json:"path"`
	X1         float64 `json:"x1"`
	Y1         float64 `json:"y1"`
	X2         float64 `json:"x2"`
	Y2         float64 `json:"y2"`
	Label      string  `json:"label"`
	FontSize   float64 `json:"font_size"`
	OutputPath string  `json:"output_path"`
}

func (s *Server) handleImageDrawLine(args json.RawMessage) (interface{}, error) {
	var a imageDrawLineArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.open(a.Path, "")
	if err != nil {
		return nil, err
	}
	style, err := a.lineStyle(img.Palette())
	if err != nil {
		return nil, err
	}

	plotter := chart.NewLinePlotter(img.Draw())
	p1, p2 := canvas.Pt(a.X1, a.Y1), canvas.Pt(a.X2, a.Y2)
	if err := plotter.Plot(p1, p2, style); err != nil {
		return nil, err
	}
	if a.Label != "" {
		if a.FontSize == 0 {
			a.FontSize = defaultFontSize
		}
		f, err := imaging.NewFont(a.FontSize, style.Color())
		if err != nil {
			return nil, err
		}
		if err := plotter.Label(p2, a.Label, f); err != nil {
			return nil, err
		}
	}
	return s.finish(img, a.OutputPath)
}

type chartPointArgs struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type chartSeriesArgs struct {
	lineArgs
	Points []chartPointArgs `json:"points"`
}

type imageLineChartArgs struct {
	Width          int               `json:"width"`
	Height         int               `json:"height"`
	Background     string            `json:"background"`
	Series         []chartSeriesArgs `json:"series"`
	FitViewToData  bool              `json:"fit_view_to_data"`
	MarginPercent  *float64          `json:"margin_percent"`
	PaddingPercent *float64          `json:"padding_percent"`
	LabelAxes      bool              `json:"label_axes"`
	FontSize       float64           `json:"font_size"`
	ScaleStepX     float64           `json:"scale_step_x"`
	ScaleStepY     float64           `json:"scale_step_y"`
	HideGrid       bool              `json:"hide_grid"`
	OutputPath     string            `json:"output_path"`
}

// LineChartResult is a rendered chart plus the transform that placed it.
type LineChartResult struct {
	*SavedImageResult
	ScaleX  float64      `json:"scale_x"`
	ScaleY  float64      `json:"scale_y"`
	Origin  canvas.Point `json:"origin"`
	Extents chart.Ranges `json:"extents"`
}

func (s *Server) handleImageLineChart(args json.RawMessage) (interface{}, error) {
	var a imageLineChartArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Width == 0 {
		a.Width = defaultChartWidth
	}
	if a.Height == 0 {
		a.Height = defaultChartHeight
	}
	if a.Background == "" {
		a.Background = "#FFFFFF"
	}
	if len(a.Series) == 0 {
		return nil, fmt.Errorf("%w: at least one series is required", errInvalidParams)
	}

	p := palette.RGB{}
	bg, err := palette.Parse(p, a.Background)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Create(a.Width, a.Height, p, bg)
	if err != nil {
		return nil, err
	}

	sets := make([]*chart.DataSet, 0, len(a.Series))
	for i, series := range a.Series {
		style, err := series.lineStyle(p)
		if err != nil {
			return nil, fmt.Errorf("series %d: %w", i, err)
		}
		set, err := chart.NewDataSet(&style)
		if err != nil {
			return nil, err
		}
		for _, pt := range series.Points {
			if err := set.Add(chart.DataPoint{X: pt.X, Y: pt.Y}); err != nil {
				return nil, fmt.Errorf("series %d: %w", i, err)
			}
		}
		sets = append(sets, set)
	}

	opts := chart.DefaultOptions()
	opts.Layout.FitViewToData = a.FitViewToData
	if a.MarginPercent != nil {
		opts.Layout.MarginPercent = *a.MarginPercent
	}
	if a.PaddingPercent != nil {
		opts.Layout.PaddingPercent = *a.PaddingPercent
	}
	if a.LabelAxes {
		if a.FontSize == 0 {
			a.FontSize = defaultFontSize
		}
		f, err := imaging.NewFont(a.FontSize, palette.MustParse(p, "#000000"))
		if err != nil {
			return nil, err
		}
		opts.Layout.LabelAxes = true
		opts.Layout.Font = f
	}
	opts.Grid.ScaleStepX = a.ScaleStepX
	opts.Grid.ScaleStepY = a.ScaleStepY
	opts.HideGrid = a.HideGrid

	cfg, err := chart.NewLineChart(opts).Render(img, sets...)
	if err != nil {
		return nil, err
	}
	saved, err := s.finish(img, a.OutputPath)
	if err != nil {
		return nil, err
	}
	scaleX, scaleY := cfg.ScaleFactors()
	return &LineChartResult{
		SavedImageResult: saved,
		ScaleX:           scaleX,
		ScaleY:           scaleY,
		Origin:           cfg.Origin(),
		Extents:          cfg.Ranges(),
	}, nil
}
