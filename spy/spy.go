// SPDX-License-Identifier: MIT

// Package spy renders the sparsity pattern of a matrix: one marker per stored
// entry, column on the X axis and row on the Y axis (row 0 at the top).
package spy

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/katalvlaran/sparsecalc/sparse"
)

// Defaults for rendered images.
const (
	DefaultWidth  = 5 * vg.Inch
	DefaultHeight = 5 * vg.Inch
	DefaultRadius = vg.Length(2)
)

// ErrBadSize is returned for a non-positive image size.
var ErrBadSize = errors.New("spy: width and height must be positive")

// Option configures Plot, Render and Save.
type Option func(*options)

type options struct {
	width, height vg.Length
	radius        vg.Length
	title         string
	color         color.Color
}

// WithSize sets the image size.
func WithSize(width, height vg.Length) Option {
	return func(o *options) { o.width, o.height = width, height }
}

// WithTitle sets the plot title. The default title states shape and nnz.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// WithMarkerRadius sets the marker half-size.
func WithMarkerRadius(r vg.Length) Option {
	return func(o *options) { o.radius = r }
}

// WithColor sets the marker color.
func WithColor(c color.Color) Option {
	return func(o *options) { o.color = c }
}

func gatherOptions(opts []Option) (options, error) {
	o := options{
		width:  DefaultWidth,
		height: DefaultHeight,
		radius: DefaultRadius,
		color:  color.Black,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.width <= 0 || o.height <= 0 {
		return o, ErrBadSize
	}

	return o, nil
}

// Plot builds the sparsity plot for m without rendering it.
func Plot(m *sparse.Sparse, opts ...Option) (*plot.Plot, error) {
	if err := sparse.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("spy: %w", err)
	}
	o, err := gatherOptions(opts)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = o.title
	if p.Title.Text == "" {
		p.Title.Text = fmt.Sprintf("%dx%d, nnz=%d", m.Rows(), m.Cols(), m.NNZ())
	}
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Add(plotter.NewGrid())

	// Axis ranges cover the declared shape and any out-of-shape entries.
	minRow, maxRow := 0.0, float64(m.Rows())-1
	minCol, maxCol := 0.0, float64(m.Cols())-1
	entries := m.Entries()
	pts := make(plotter.XYs, len(entries))
	for i, e := range entries {
		x, y := float64(e.Col), float64(e.Row)
		pts[i].X, pts[i].Y = x, y
		minCol, maxCol = math.Min(minCol, x), math.Max(maxCol, x)
		minRow, maxRow = math.Min(minRow, y), math.Max(maxRow, y)
	}
	p.X.Min, p.X.Max = minCol-0.5, math.Max(maxCol, minCol)+0.5
	p.Y.Min, p.Y.Max = minRow-0.5, math.Max(maxRow, minRow)+0.5

	if len(pts) > 0 {
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("spy: %w", err)
		}
		s.GlyphStyle.Shape = draw.BoxGlyph{}
		s.GlyphStyle.Radius = o.radius
		s.GlyphStyle.Color = o.color
		p.Add(s)
	}

	return p, nil
}

// Render writes the plot of m to w in the given format (png, svg, pdf, eps,
// jpg, tif).
func Render(w io.Writer, m *sparse.Sparse, format string, opts ...Option) error {
	o, err := gatherOptions(opts)
	if err != nil {
		return err
	}
	p, err := Plot(m, opts...)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(o.width, o.height, format)
	if err != nil {
		return fmt.Errorf("spy: %w", err)
	}
	if _, err = wt.WriteTo(w); err != nil {
		return fmt.Errorf("spy: write: %w", err)
	}

	return nil
}

// Save renders the plot of m into path; the format follows the file extension.
func Save(path string, m *sparse.Sparse, opts ...Option) error {
	o, err := gatherOptions(opts)
	if err != nil {
		return err
	}
	p, err := Plot(m, opts...)
	if err != nil {
		return err
	}
	if err = p.Save(o.width, o.height, path); err != nil {
		return fmt.Errorf("spy: save %s: %w", path, err)
	}

	return nil
}
