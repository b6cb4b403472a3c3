package overlay

import (
	"bytes"
	"io"
	"log"
	"os"

	"github.com/natefinch/atomic"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/validate"
	"github.com/pkg/errors"
)

// overlayStamp places the overlay page unscaled over the full page.
const overlayStamp = "pos:bl, off:0 0, scalefactor:1 abs, rot:0"

// Compositor renders field overlays and merges them onto template documents.
type Compositor struct {
	conf     *model.Configuration
	compress bool
	logger   *log.Logger
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithCompression toggles flate compression of the overlay content stream.
func WithCompression(compress bool) Option {
	return func(c *Compositor) {
		c.compress = compress
	}
}

// WithConfiguration overrides the pdfcpu configuration used to read and
// write documents.
func WithConfiguration(conf *model.Configuration) Option {
	return func(c *Compositor) {
		if conf != nil {
			c.conf = conf
		}
	}
}

// WithLogger routes progress messages to logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Compositor) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a Compositor reading templates in relaxed validation mode.
func New(opts ...Option) *Compositor {
	c := &Compositor{
		compress: true,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.conf == nil {
		c.conf = model.NewDefaultConfiguration()
		c.conf.ValidationMode = model.ValidationRelaxed
	}
	return c
}

// Generate fills the template at templatePath with req and writes the result
// to outputPath. The output is assembled in memory and replaces outputPath in
// a single rename, so a failed call never leaves a partial file behind.
func (c *Compositor) Generate(templatePath, outputPath string, req Request) error {
	template, err := os.ReadFile(templatePath)
	if err != nil {
		return &TemplateReadError{Path: templatePath, Err: err}
	}
	ctx, err := c.readContext(template)
	if err != nil {
		return &TemplateReadError{Path: templatePath, Err: err}
	}

	overlay, err := c.Overlay(req)
	if err != nil {
		return errors.Wrap(err, "render overlay")
	}
	if err = c.stamp(ctx, overlay); err != nil {
		return err
	}

	data, err := c.writeToBytes(ctx)
	if err != nil {
		return err
	}
	if err = writeFile(outputPath, data); err != nil {
		return err
	}
	c.logger.Printf("overlay: wrote %s (%d pages)", outputPath, ctx.PageCount)
	return nil
}

// Merge stamps the first page of overlay on top of every page of template
// and returns the resulting document. A template that cannot be parsed is
// reported as a TemplateReadError without a Path.
func (c *Compositor) Merge(template, overlay []byte) ([]byte, error) {
	ctx, err := c.readContext(template)
	if err != nil {
		return nil, &TemplateReadError{Err: err}
	}
	if err = c.stamp(ctx, overlay); err != nil {
		return nil, err
	}
	return c.writeToBytes(ctx)
}

func (c *Compositor) readContext(template []byte) (*model.Context, error) {
	ctx, err := pdfcpu.Read(bytes.NewReader(template), c.conf)
	if err != nil {
		return nil, err
	}
	if err = validate.XRefTable(ctx.XRefTable); err != nil {
		return nil, err
	}
	if err = ctx.EnsurePageCount(); err != nil {
		return nil, err
	}
	if ctx.PageCount == 0 {
		return nil, errors.New("document has no pages")
	}
	return ctx, nil
}

// stamp adds the overlay as a foreground watermark to all pages of ctx.
// pdfcpu loads PDF watermarks by file name, so the overlay is staged in a
// temporary file for the duration of the call.
func (c *Compositor) stamp(ctx *model.Context, overlay []byte) error {
	f, err := os.CreateTemp("", "berichtsheft-overlay-*.pdf")
	if err != nil {
		return errors.Wrap(err, "stage overlay")
	}
	defer os.Remove(f.Name())
	if _, err = f.Write(overlay); err != nil {
		f.Close()
		return errors.Wrap(err, "stage overlay")
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(err, "stage overlay")
	}

	wm, err := api.PDFWatermark(f.Name()+":1", overlayStamp, true, false, types.POINTS)
	if err != nil {
		return errors.Wrap(err, "Build PDFWatermark failed")
	}
	if err = pdfcpu.AddWatermarks(ctx, allPages(ctx), wm); err != nil {
		return errors.Wrap(err, "Add PDFWatermark failed")
	}
	return nil
}

func (c *Compositor) writeToBytes(ctx *model.Context) ([]byte, error) {
	buffer := bytes.NewBuffer(nil)
	if err := api.WriteContext(ctx, buffer); err != nil {
		return nil, errors.Wrap(err, "serialize document")
	}
	return buffer.Bytes(), nil
}

func allPages(ctx *model.Context) types.IntSet {
	pages := types.IntSet{}
	for i := 1; i <= ctx.PageCount; i++ {
		pages[i] = true
	}
	return pages
}

func writeFile(path string, data []byte) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return &OutputWriteError{Path: path, Err: err}
	}
	return nil
}
