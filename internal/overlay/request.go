package overlay

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidRequest is returned for render requests whose global settings
// cannot produce a page.
var ErrInvalidRequest = errors.New("overlay: invalid render request")

// Point is a position in PDF user space, origin bottom-left, unit points.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// PageSize is a page extent in points.
type PageSize struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// A4 matches the ISO 216 A4 sheet (210 x 297 mm).
var A4 = PageSize{Width: 595.2755905511812, Height: 841.8897637795277}

// FromTop converts a position measured from the top-left corner of the page
// into PDF space.
func (s PageSize) FromTop(x, y float64) Point {
	return Point{X: x, Y: s.Height - y}
}

// Request is the snapshot of everything needed for one generation call.
// Positions and WrapWidths are keyed by field name; positions without
// content are skipped.
type Request struct {
	Content     map[string]string
	Positions   map[string]Point
	Font        string
	FontSize    float64
	LineSpacing float64
	PageSize    PageSize
	WrapWidths  map[string]float64
}

// DefaultRequest returns the settings the Berichtsheft template was laid out
// with: Helvetica 12pt on 14pt leading, A4.
func DefaultRequest() Request {
	return Request{
		Font:        "Helvetica",
		FontSize:    12,
		LineSpacing: 14,
		PageSize:    A4,
	}
}

// Validate checks the global settings of the request.
func (r Request) Validate() error {
	if r.Font == "" {
		return errors.Wrap(ErrInvalidRequest, "font is required")
	}
	if !positive(r.FontSize) {
		return errors.Wrapf(ErrInvalidRequest, "font size %v", r.FontSize)
	}
	if !positive(r.LineSpacing) {
		return errors.Wrapf(ErrInvalidRequest, "line spacing %v", r.LineSpacing)
	}
	if !positive(r.PageSize.Width) || !positive(r.PageSize.Height) {
		return errors.Wrapf(ErrInvalidRequest, "page size %vx%v", r.PageSize.Width, r.PageSize.Height)
	}
	return nil
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 1)
}
