package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/enlighten/internal/httputil"
	"github.com/banshee-data/enlighten/internal/plot"
	"github.com/banshee-data/enlighten/internal/spectra"
	"github.com/banshee-data/enlighten/internal/units"
)

// lineData pairs a reading's processed channel with its axis as echarts
// [x, y] points. Cropped channels yield nil.
func lineData(r *spectra.Reading, kind spectra.AxisKind, unit string) []opts.LineData {
	xs := r.Axis(kind)
	if len(xs) == 0 || len(xs) != len(r.Processed) {
		return nil
	}
	if kind == spectra.AxisWavelength {
		xs = units.ConvertWavelengths(xs, unit)
	}
	data := make([]opts.LineData, len(xs))
	for i := range xs {
		data[i] = opts.LineData{Value: []interface{}{xs[i], r.Processed[i]}}
	}
	return data
}

// SpectrumChart builds an HTML line chart comparing a source reading with
// its interpolated counterpart on the given axis.
func SpectrumChart(src, out *spectra.Reading, kind spectra.AxisKind, unit, assetsHost string) *charts.Line {
	xName := units.Label(unit)
	if kind == spectra.AxisWavenumber {
		xName = "Raman shift (cm⁻¹)"
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Interpolated spectrum", Width: "100%", Height: "640px", AssetsHost: assetsHost}),
		charts.WithTitleOpts(opts.Title{Title: "Interpolated spectrum", Subtitle: fmt.Sprintf("reading=%s points=%d", src.ID, out.Pixels())}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: xName, NameLocation: "middle", NameGap: 25, Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Intensity (counts)", NameLocation: "middle", NameGap: 45, Scale: opts.Bool(true)}),
	)
	line.AddSeries("source", lineData(src, kind, unit), charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	line.AddSeries("interpolated", lineData(out, kind, unit), charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	return line
}

// chartAxis picks the axis to draw out against: the configured one, unless
// the configuration changed after processing and out lacks it.
func (s *Server) chartAxis(out *spectra.Reading) spectra.AxisKind {
	if _, kind := s.interp.Axis(); out.Axis(kind) != nil {
		return kind
	}
	if out.Wavelengths != nil {
		return spectra.AxisWavelength
	}
	return spectra.AxisWavenumber
}

func (s *Server) chartReading(w http.ResponseWriter, r *http.Request) {
	src, out, unit, ok := s.interpolate(w, r)
	if !ok {
		return
	}
	kind := s.chartAxis(out)

	var buf bytes.Buffer
	if err := SpectrumChart(src, out, kind, unit, s.assetsHost).Render(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) plotReading(w http.ResponseWriter, r *http.Request) {
	src, out, unit, ok := s.interpolate(w, r)
	if !ok {
		return
	}
	kind := s.chartAxis(out)

	var buf bytes.Buffer
	if err := plot.NewSpectrumPlotter(kind).RenderPNG(&buf, src, out, unit); err != nil {
		if errors.Is(err, plot.ErrNothingToPlot) {
			httputil.UnprocessableEntity(w, err.Error())
			return
		}
		httputil.InternalServerError(w, fmt.Sprintf("failed to render plot: %v", err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}
