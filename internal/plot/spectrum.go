// Package plot renders spectra as static images.
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/enlighten/internal/spectra"
	"github.com/banshee-data/enlighten/internal/units"
)

// ErrNothingToPlot is returned when neither reading has a processed channel
// that matches its axis.
var ErrNothingToPlot = errors.New("plot: no plottable processed spectrum")

var (
	sourceColor       = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	interpolatedColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
)

// SpectrumPlotter draws a source reading and its interpolated counterpart
// on a shared x axis.
type SpectrumPlotter struct {
	Axis   spectra.AxisKind
	Title  string
	Width  vg.Length
	Height vg.Length
}

// NewSpectrumPlotter returns a plotter for the given axis with the default
// 14x6 inch canvas.
func NewSpectrumPlotter(axis spectra.AxisKind) *SpectrumPlotter {
	return &SpectrumPlotter{
		Axis:   axis,
		Title:  "Interpolated spectrum",
		Width:  14 * vg.Inch,
		Height: 6 * vg.Inch,
	}
}

// Plot builds the figure. Either reading may be nil. unit selects the
// wavelength display unit and is ignored on a wavenumber axis.
func (sp *SpectrumPlotter) Plot(source, interpolated *spectra.Reading, unit string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = sp.Title
	p.X.Label.Text = sp.xLabel(unit)
	p.Y.Label.Text = "Intensity (counts)"

	added := 0
	for _, s := range []struct {
		label  string
		r      *spectra.Reading
		color  color.Color
		dashes []vg.Length
	}{
		{"source", source, sourceColor, []vg.Length{vg.Points(4), vg.Points(2)}},
		{"interpolated", interpolated, interpolatedColor, nil},
	} {
		pts := sp.points(s.r, unit)
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("%s series: %w", s.label, err)
		}
		line.Color = s.color
		line.Width = vg.Points(1)
		line.Dashes = s.dashes
		p.Add(line)
		p.Legend.Add(s.label, line)
		added++
	}
	if added == 0 {
		return nil, ErrNothingToPlot
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	p.Add(plotter.NewGrid())
	return p, nil
}

// Render writes a PNG to path.
func (sp *SpectrumPlotter) Render(path string, source, interpolated *spectra.Reading, unit string) error {
	p, err := sp.Plot(source, interpolated, unit)
	if err != nil {
		return err
	}
	if err := p.Save(sp.Width, sp.Height, path); err != nil {
		return fmt.Errorf("failed to save plot %s: %w", path, err)
	}
	return nil
}

// RenderPNG writes the figure as PNG to w.
func (sp *SpectrumPlotter) RenderPNG(w io.Writer, source, interpolated *spectra.Reading, unit string) error {
	p, err := sp.Plot(source, interpolated, unit)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(sp.Width, sp.Height, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func (sp *SpectrumPlotter) xLabel(unit string) string {
	if sp.Axis == spectra.AxisWavenumber {
		return "Raman shift (cm⁻¹)"
	}
	return units.Label(unit)
}

// points pairs the reading's processed channel with its axis. Cropped or
// otherwise mismatched channels are skipped.
func (sp *SpectrumPlotter) points(r *spectra.Reading, unit string) plotter.XYs {
	if r == nil {
		return nil
	}
	xs := r.Axis(sp.Axis)
	ys := r.Processed
	if len(xs) == 0 || len(xs) != len(ys) {
		return nil
	}
	if sp.Axis == spectra.AxisWavelength {
		xs = units.ConvertWavelengths(xs, unit)
	}
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return pts
}
