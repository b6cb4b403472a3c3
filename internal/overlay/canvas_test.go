package overlay

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderOverlay(t *testing.T, req Request) string {
	t.Helper()
	out, err := New(WithCompression(false)).Overlay(req)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	return string(out)
}

func TestOverlayDrawsFieldAtPosition(t *testing.T) {
	out := renderOverlay(t, nameRequest())

	assert.Contains(t, out, "BT 50.00 700.00 Td (A. Tester) Tj ET")
	assert.Equal(t, 1, strings.Count(out, ") Tj"))
}

func TestOverlaySkipsEmptyAndMissingContent(t *testing.T) {
	req := DefaultRequest()
	req.Content = map[string]string{
		"empty": "",
		"blank": "  \n\t ",
	}
	req.Positions = map[string]Point{
		"empty":   {X: 10, Y: 10},
		"blank":   {X: 20, Y: 20},
		"missing": {X: 30, Y: 30},
	}

	out := renderOverlay(t, req)
	assert.NotContains(t, out, " Tj")
}

func TestOverlayIgnoresContentWithoutPosition(t *testing.T) {
	req := nameRequest()
	req.Content["unplaced"] = "not drawn"

	out := renderOverlay(t, req)
	assert.NotContains(t, out, "not drawn")
}

func TestOverlayAdvancesByLineSpacing(t *testing.T) {
	req := DefaultRequest()
	req.LineSpacing = 14
	req.Content = map[string]string{"texts_1": "one\ntwo\nthree"}
	req.Positions = map[string]Point{"texts_1": {X: 100, Y: 500}}

	out := renderOverlay(t, req)
	assert.Contains(t, out, "BT 100.00 500.00 Td (one) Tj ET")
	assert.Contains(t, out, "BT 100.00 486.00 Td (two) Tj ET")
	assert.Contains(t, out, "BT 100.00 472.00 Td (three) Tj ET")
}

func TestOverlayAllowsVerticalOverflow(t *testing.T) {
	req := DefaultRequest()
	req.Content = map[string]string{"hour_3": "a\nb\nc"}
	req.Positions = map[string]Point{"hour_3": {X: 500, Y: 10}}

	out := renderOverlay(t, req)
	assert.Contains(t, out, "BT 500.00 -18.00 Td (c) Tj ET")
}

func TestOverlayWrapsConfiguredFields(t *testing.T) {
	long := "very long line exceeding configured width of 100 units at font size 12"
	req := DefaultRequest()
	req.Content = map[string]string{"wrapped": long, "plain": long}
	req.Positions = map[string]Point{
		"wrapped": {X: 50, Y: 400},
		"plain":   {X: 50, Y: 200},
	}
	req.WrapWidths = map[string]float64{"wrapped": 100}

	out := renderOverlay(t, req)
	assert.Contains(t, out, "BT 50.00 200.00 Td ("+long+") Tj ET")
	assert.Contains(t, out, "BT 50.00 400.00 Td (very long line) Tj ET")
	assert.Contains(t, out, "BT 50.00 386.00 Td (exceeding) Tj ET")
	assert.Contains(t, out, "BT 50.00 344.00 Td (font size 12) Tj ET")
}

func TestOverlayEncodesUmlauts(t *testing.T) {
	req := DefaultRequest()
	req.Content = map[string]string{"texts_2": "Prüfung"}
	req.Positions = map[string]Point{"texts_2": {X: 50, Y: 300}}

	out := renderOverlay(t, req)
	assert.Contains(t, out, "(Pr\xfcfung) Tj")
}

func TestOverlayRejectsInvalidRequest(t *testing.T) {
	tests := map[string]func(*Request){
		"no font":          func(r *Request) { r.Font = "" },
		"zero font size":   func(r *Request) { r.FontSize = 0 },
		"negative leading": func(r *Request) { r.LineSpacing = -1 },
		"no page":          func(r *Request) { r.PageSize = PageSize{} },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			req := nameRequest()
			mutate(&req)
			_, err := New().Overlay(req)
			assert.True(t, errors.Is(err, ErrInvalidRequest), "got %v", err)
		})
	}
}

func TestOverlayUnknownFont(t *testing.T) {
	req := nameRequest()
	req.Font = "NoSuchFont"

	_, err := New().Overlay(req)
	assert.Error(t, err)
}

func TestPageSizeFromTop(t *testing.T) {
	p := A4.FromTop(211, 70)
	assert.Equal(t, 211.0, p.X)
	assert.InDelta(t, 771.89, p.Y, 0.001)
}
