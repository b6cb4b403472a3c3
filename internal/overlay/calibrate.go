package overlay

import (
	"fmt"
	"math"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"
)

// Calibrate labels every position with its field name in red on all pages of
// the template and writes the result to outputPath. It is a tool for tuning
// field coordinates against a new template.
func (c *Compositor) Calibrate(templatePath, outputPath string, positions map[string]Point) error {
	template, err := os.ReadFile(templatePath)
	if err != nil {
		return &TemplateReadError{Path: templatePath, Err: err}
	}
	ctx, err := c.readContext(template)
	if err != nil {
		return &TemplateReadError{Path: templatePath, Err: err}
	}

	for _, name := range fieldNames(positions) {
		pos := positions[name]
		if err = c.addLabel(ctx, name, int(math.Round(pos.X)), int(math.Round(pos.Y))); err != nil {
			return errors.Wrapf(err, "label %s", name)
		}
	}

	data, err := c.writeToBytes(ctx)
	if err != nil {
		return err
	}
	return writeFile(outputPath, data)
}

// addLabel adds text at the specified position on every page.
func (c *Compositor) addLabel(ctx *model.Context, text string, x, y int) error {
	descriptionString := fmt.Sprintf("points:8, strokec:#E00000, fillc:#E00000, scalefactor:1 abs, pos:bl, rot:0, off:%d %d", x, y)
	c.logger.Printf("overlay: label %q %s", text, descriptionString)
	wm, err := api.TextWatermark(text, descriptionString, true, false, types.POINTS)
	if err != nil {
		return errors.Wrap(err, "Build TextWatermark failed")
	}
	if err = pdfcpu.AddWatermarks(ctx, allPages(ctx), wm); err != nil {
		return errors.Wrap(err, "Add TextWatermark failed")
	}
	return nil
}
