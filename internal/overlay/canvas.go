package overlay

import (
	"bytes"
	"sort"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"berichtsheft/internal/textlayout"
)

// Overlay draws every field of req onto a single transparent page and
// returns it as a PDF document.
func (c *Compositor) Overlay(req Request) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: req.PageSize.Width, Ht: req.PageSize.Height},
	})
	pdf.SetCompression(c.compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetFont(req.Font, "", req.FontSize)
	if err := pdf.Error(); err != nil {
		return nil, errors.Wrapf(err, "set font %q", req.Font)
	}

	// Core fonts are WinAnsi encoded.
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	drawn := 0
	for _, name := range fieldNames(req.Positions) {
		value, ok := req.Content[name]
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		pos := req.Positions[name]
		lines := textlayout.Lines(value, req.WrapWidths[name], req.FontSize)
		for i, line := range lines {
			baseline := pos.Y - float64(i)*req.LineSpacing
			// fpdf measures y from the top edge.
			pdf.Text(pos.X, req.PageSize.Height-baseline, translate(line))
		}
		drawn++
	}
	if err := pdf.Error(); err != nil {
		return nil, errors.Wrap(err, "draw overlay")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "finalize overlay")
	}
	c.logger.Printf("overlay: drew %d of %d fields", drawn, len(req.Positions))
	return buf.Bytes(), nil
}

func fieldNames(positions map[string]Point) []string {
	names := make([]string, 0, len(positions))
	for name := range positions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
