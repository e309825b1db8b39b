package api

import (
	"net/http"

	"github.com/banshee-data/enlighten/internal/httputil"
	"github.com/banshee-data/enlighten/internal/interpolation"
	"github.com/banshee-data/enlighten/internal/spectra"
	"github.com/banshee-data/enlighten/internal/units"
)

// InterpolationStatus is the body of GET /api/interpolation.
type InterpolationStatus struct {
	Enabled        bool                   `json:"enabled"`
	Axis           interpolation.AxisKind `json:"axis"`
	UseWavelengths bool                   `json:"use_wavelengths"`
	UseWavenumbers bool                   `json:"use_wavenumbers"`
	Start          float64                `json:"start"`
	End            float64                `json:"end"`
	Incr           float64                `json:"incr"`
	State          string                 `json:"state"`
	TotalPixels    int                    `json:"total_pixels"`
	First          *float64               `json:"first,omitempty"`
	Last           *float64               `json:"last,omitempty"`
	// Problem explains why the interpolator is unconfigured.
	Problem string `json:"problem,omitempty"`
}

// InterpolationUpdate is a partial update; absent fields keep their value.
// Axis takes precedence over the two boolean flags.
type InterpolationUpdate struct {
	Enabled        *bool                   `json:"enabled,omitempty"`
	Axis           *interpolation.AxisKind `json:"axis,omitempty"`
	UseWavelengths *bool                   `json:"use_wavelengths,omitempty"`
	UseWavenumbers *bool                   `json:"use_wavenumbers,omitempty"`
	Start          *float64                `json:"start,omitempty"`
	End            *float64                `json:"end,omitempty"`
	Incr           *float64                `json:"incr,omitempty"`
}

func (u InterpolationUpdate) apply(p *interpolation.Params) {
	if u.Enabled != nil {
		p.Enabled = *u.Enabled
	}
	switch {
	case u.Axis != nil:
		p.Axis = *u.Axis
	case u.UseWavelengths != nil || u.UseWavenumbers != nil:
		wl, wn := p.UseWavelengths(), p.UseWavenumbers()
		if u.UseWavelengths != nil {
			wl = *u.UseWavelengths
			if wl {
				wn = false
			}
		}
		if u.UseWavenumbers != nil {
			wn = *u.UseWavenumbers
			if wn && u.UseWavelengths == nil {
				wl = false
			}
		}
		p.Axis = interpolation.AxisKindFromFlags(wl, wn)
	}
	if u.Start != nil {
		p.Start = *u.Start
	}
	if u.End != nil {
		p.End = *u.End
	}
	if u.Incr != nil {
		p.Incr = *u.Incr
	}
}

func (s *Server) status() InterpolationStatus {
	p := s.interp.Params()
	st := InterpolationStatus{
		Enabled:        p.Enabled,
		Axis:           p.Axis,
		UseWavelengths: p.UseWavelengths(),
		UseWavenumbers: p.UseWavenumbers(),
		Start:          p.Start,
		End:            p.End,
		Incr:           p.Incr,
		State:          s.interp.State().String(),
		TotalPixels:    s.interp.TotalPixels(),
	}
	if values, _ := s.interp.Axis(); len(values) > 0 {
		first, last := values[0], values[len(values)-1]
		st.First, st.Last = &first, &last
	} else if err := interpolation.CheckParams(p); err != nil {
		st.Problem = err.Error()
	}
	return st
}

func (s *Server) interpolationConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		httputil.WriteJSONOK(w, s.status())
	case http.MethodPost, http.MethodPut:
		var u InterpolationUpdate
		if err := httputil.DecodeJSON(w, r, &u); err != nil {
			httputil.BadRequest(w, err.Error())
			return
		}
		s.interp.Update(u.apply)
		httputil.WriteJSONOK(w, s.status())
	default:
		httputil.MethodNotAllowed(w)
	}
}

func (s *Server) toggleInterpolation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	s.interp.Toggle()
	httputil.WriteJSONOK(w, s.status())
}

func (s *Server) showAxis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	values, kind := s.interp.Axis()
	if values == nil {
		httputil.Conflict(w, interpolation.ErrNotConfigured.Error())
		return
	}
	httputil.WriteJSONOK(w, map[string]interface{}{
		"axis":   kind,
		"values": values,
	})
}

// readingUnits returns the validated ?units= parameter, defaulting to nm.
func readingUnits(r *http.Request) (string, bool) {
	u := r.URL.Query().Get("units")
	if u == "" {
		return units.NM, true
	}
	return u, units.IsValid(u)
}

// interpolate decodes a reading from the request and runs it through the
// interpolator. On failure the response has been written and ok is false.
func (s *Server) interpolate(w http.ResponseWriter, r *http.Request) (src, out *spectra.Reading, unit string, ok bool) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return nil, nil, "", false
	}
	unit, valid := readingUnits(r)
	if !valid {
		httputil.BadRequest(w, "invalid 'units' parameter; must be one of: "+units.GetValidUnitsString())
		return nil, nil, "", false
	}
	src = new(spectra.Reading)
	if err := httputil.DecodeJSON(w, r, src); err != nil {
		httputil.BadRequest(w, err.Error())
		return nil, nil, "", false
	}
	out, err := s.interp.Process(src)
	if err != nil {
		s.writeProcessError(w, err)
		return nil, nil, "", false
	}
	return src, out, unit, true
}

func (s *Server) processReading(w http.ResponseWriter, r *http.Request) {
	_, out, unit, ok := s.interpolate(w, r)
	if !ok {
		return
	}
	out.Wavelengths = units.ConvertWavelengths(out.Wavelengths, unit)
	httputil.WriteJSONOK(w, out)
}
