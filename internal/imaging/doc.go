// Package imaging is the pixel engine behind the MCP tools.
//
// An Image pairs an *image.NRGBA buffer with a palette.Palette and implements
// canvas.Surface, so the neighborhood filters and the chart renderer can read
// and draw on it without knowing how pixels are stored. Geometric transforms
// are delegated to github.com/disintegration/imaging, color effects and file
// encoding to github.com/anthonynsimon/bild, and rasterization of lines,
// ellipses and text to golang.org/x/image.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// Drawing primitives take fractional canvas.Point values and clip anything
// that falls outside the image.
//
// # Immutability
//
// Transforms and effects return a new Image and leave the receiver untouched.
// Only the Drawer returned by Draw, and the filters that use it, write into an
// existing Image.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. An Image is not; callers
// that share one between goroutines must synchronize writes.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Coordinates outside image bounds (ErrOutOfBounds)
//   - Invalid sizes, regions or parameters (ErrInvalidArgument)
//   - Unknown file extensions when saving (ErrUnsupportedFormat)
//   - File I/O and decoding errors during loading
package imaging
