// Command interp resamples a JSON reading onto a regular axis offline.
//
//	interp -in reading.json -axis wavenumber -start 400 -end 2400 -incr 1 -png out.png
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/banshee-data/enlighten/internal/api"
	"github.com/banshee-data/enlighten/internal/config"
	"github.com/banshee-data/enlighten/internal/interpolation"
	"github.com/banshee-data/enlighten/internal/plot"
	"github.com/banshee-data/enlighten/internal/spectra"
	"github.com/banshee-data/enlighten/internal/units"
	"github.com/banshee-data/enlighten/internal/version"
)

type options struct {
	in, out      string
	defaults     string
	axis         string
	start, end   float64
	incr         float64
	png, html    string
	units        string
	debug        bool
	showVersion  bool
	setOverrides map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("interp", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.StringVar(&o.in, "in", "-", "Input reading JSON (- for stdin)")
	fs.StringVar(&o.out, "out", "-", "Output reading JSON (- for stdout)")
	fs.StringVar(&o.defaults, "defaults", "", "Interpolation defaults JSON (default: search for "+config.DefaultConfigPath+")")
	fs.StringVar(&o.axis, "axis", "", "Target axis: wavelength or wavenumber (default from defaults file)")
	fs.Float64Var(&o.start, "start", 0, "First point of the target axis")
	fs.Float64Var(&o.end, "end", 0, "Upper bound of the target axis")
	fs.Float64Var(&o.incr, "incr", 0, "Spacing of the target axis")
	fs.StringVar(&o.png, "png", "", "Write a PNG plot of source vs interpolated")
	fs.StringVar(&o.html, "html", "", "Write an HTML chart of source vs interpolated")
	fs.StringVar(&o.units, "units", units.NM, "Wavelength units for output and plots: "+units.GetValidUnitsString())
	fs.BoolVar(&o.debug, "debug", false, "Log axis generation and trace output to stderr")
	fs.BoolVar(&o.showVersion, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !units.IsValid(o.units) {
		return nil, fmt.Errorf("invalid -units %q; must be one of: %s", o.units, units.GetValidUnitsString())
	}

	o.setOverrides = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.setOverrides[f.Name] = true })
	return o, nil
}

// interpolator builds an interpolator from the defaults file overlaid with
// any axis flags given on the command line. Interpolation is always enabled.
func (o *options) interpolator() (*interpolation.Interpolator, error) {
	var defaults *config.InterpolationConfig
	var err error
	if o.defaults != "" {
		defaults, err = config.LoadInterpolationConfig(o.defaults)
	} else {
		defaults, err = config.FindDefaultConfig()
	}
	if err != nil {
		return nil, err
	}

	kind := spectra.AxisUnset
	if o.setOverrides["axis"] {
		if kind, err = spectra.ParseAxisKind(o.axis); err != nil {
			return nil, err
		}
	}

	ip := interpolation.NewInterpolator(config.NewMemoryStore())
	if err := ip.LoadFromStore(defaults); err != nil {
		return nil, err
	}
	ip.Update(func(p *interpolation.Params) {
		p.Enabled = true
		if o.setOverrides["axis"] {
			p.Axis = kind
		}
		if o.setOverrides["start"] {
			p.Start = o.start
		}
		if o.setOverrides["end"] {
			p.End = o.end
		}
		if o.setOverrides["incr"] {
			p.Incr = o.incr
		}
	})
	return ip, nil
}

func readReading(path string, stdin io.Reader) (*spectra.Reading, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var reading spectra.Reading
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&reading); err != nil {
		return nil, fmt.Errorf("failed to decode reading: %w", err)
	}
	return &reading, nil
}

func writeReading(path string, stdout io.Writer, reading *spectra.Reading) error {
	var w io.Writer = stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reading)
}

func writeChart(path string, src, out *spectra.Reading, kind spectra.AxisKind, unit string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := api.SpectrumChart(src, out, kind, unit, "").Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if o.showVersion {
		_, err := fmt.Fprintln(stdout, version.String())
		return err
	}
	if o.debug {
		interpolation.SetLogWriters(stderr, stderr, stderr)
	} else {
		interpolation.SetLogWriters(stderr, nil, nil)
	}

	ip, err := o.interpolator()
	if err != nil {
		return err
	}
	p := ip.Params()
	if err := interpolation.CheckParams(p); err != nil {
		return fmt.Errorf("cannot build target axis (start %g, end %g, incr %g): %w", p.Start, p.End, p.Incr, err)
	}

	src, err := readReading(o.in, stdin)
	if err != nil {
		return err
	}
	out, err := ip.Process(src)
	if err != nil {
		return err
	}

	if o.png != "" {
		if err := plot.NewSpectrumPlotter(p.Axis).Render(o.png, src, out, o.units); err != nil {
			return err
		}
	}
	if o.html != "" {
		if err := writeChart(o.html, src, out, p.Axis, o.units); err != nil {
			return fmt.Errorf("failed to write chart: %w", err)
		}
	}

	result := out.Clone()
	result.Wavelengths = units.ConvertWavelengths(result.Wavelengths, o.units)
	return writeReading(o.out, stdout, result)
}

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("interp: %v", err)
	}
}
