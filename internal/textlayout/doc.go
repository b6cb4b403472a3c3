// Package textlayout turns raw field values into the lines drawn on a PDF page.
//
// Line widths are estimated from the font size alone (see CharBudget), which
// keeps layout independent of the font program embedded in the output.
package textlayout
