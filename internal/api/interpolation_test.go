package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/enlighten/internal/config"
	"github.com/banshee-data/enlighten/internal/interpolation"
	"github.com/banshee-data/enlighten/internal/spectra"
	"github.com/banshee-data/enlighten/internal/testutil"
)

func newTestServer(t *testing.T, p interpolation.Params) (*Server, *interpolation.Interpolator) {
	t.Helper()
	ip := interpolation.NewInterpolator(cloneAPITestDB(t))
	ip.Apply(p)
	return NewServer(ip), ip
}

var readyParams = interpolation.Params{
	Enabled: true,
	Axis:    interpolation.AxisWavelength,
	Start:   800,
	End:     900,
	Incr:    0.5,
}

func do(t *testing.T, s *Server, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(rec, req)
	return rec
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) InterpolationStatus {
	t.Helper()
	var st InterpolationStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&st))
	return st
}

func TestGetInterpolation(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t, readyParams)

	rec := do(t, s, http.MethodGet, "/api/interpolation", nil)
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	st := decodeStatus(t, rec)

	assert.True(t, st.Enabled)
	assert.Equal(t, interpolation.AxisWavelength, st.Axis)
	assert.True(t, st.UseWavelengths)
	assert.False(t, st.UseWavenumbers)
	assert.Equal(t, "ready", st.State)
	assert.Equal(t, 201, st.TotalPixels)
	require.NotNil(t, st.First)
	require.NotNil(t, st.Last)
	assert.Equal(t, 800.0, *st.First)
	assert.Equal(t, 900.0, *st.Last)
	assert.Empty(t, st.Problem)
}

func TestGetInterpolation_ReportsProblem(t *testing.T) {
	t.Parallel()
	p := readyParams
	p.End = 700
	s, _ := newTestServer(t, p)

	st := decodeStatus(t, do(t, s, http.MethodGet, "/api/interpolation", nil))
	assert.Equal(t, "unconfigured", st.State)
	assert.Zero(t, st.TotalPixels)
	assert.Nil(t, st.First)
	assert.True(t, strings.HasPrefix(st.Problem, interpolation.ErrInvalidEndpoints.Error()), st.Problem)
	assert.Contains(t, st.Problem, "start 800, end 700")
}

func TestUpdateInterpolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		method   string
		body     string
		wantAxis interpolation.AxisKind
		wantN    int
	}{
		{"increment", http.MethodPost, `{"incr": 1}`, interpolation.AxisWavelength, 101},
		{"axis by name", http.MethodPut, `{"axis": "wavenumbers", "start": 200, "end": 2000, "incr": 2}`, interpolation.AxisWavenumber, 901},
		{"axis by flag", http.MethodPost, `{"use_wavenumbers": true}`, interpolation.AxisWavenumber, 201},
		{"both flags", http.MethodPost, `{"use_wavelengths": true, "use_wavenumbers": true}`, interpolation.AxisWavelength, 201},
		{"neither flag", http.MethodPost, `{"use_wavelengths": false}`, interpolation.AxisUnset, 201},
		{"disable", http.MethodPost, `{"enabled": false}`, interpolation.AxisWavelength, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, ip := newTestServer(t, readyParams)

			rec := do(t, s, tt.method, "/api/interpolation", tt.body)
			testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
			st := decodeStatus(t, rec)
			assert.Equal(t, tt.wantAxis, st.Axis)
			assert.Equal(t, tt.wantN, st.TotalPixels)
			assert.Equal(t, tt.wantAxis, ip.Params().Axis)
		})
	}
}

func TestUpdateInterpolation_Persists(t *testing.T) {
	t.Parallel()
	database := cloneAPITestDB(t)
	ip := interpolation.NewInterpolator(database)
	s := NewServer(ip)

	rec := do(t, s, http.MethodPost, "/api/interpolation", `{"enabled": true, "start": 500, "end": 510, "incr": 0.25}`)
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	section, err := database.Settings(config.InterpolationSection)
	require.NoError(t, err)
	assert.Equal(t, "true", section[config.KeyEnabled])
	assert.Equal(t, "0.25", section[config.KeyIncr])
	assert.Len(t, section, len(config.InterpolationKeys))

	reloaded := interpolation.NewInterpolator(database)
	require.NoError(t, reloaded.LoadFromStore(nil))
	assert.Equal(t, ip.Params(), reloaded.Params())
}

func TestUpdateInterpolation_BadBody(t *testing.T) {
	t.Parallel()
	s, ip := newTestServer(t, readyParams)

	for _, body := range []string{``, `{"start": "x"}`, `{"axis": "furlongs"}`, `{"stop": 1}`} {
		rec := do(t, s, http.MethodPost, "/api/interpolation", body)
		testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)
	}
	assert.Equal(t, readyParams, ip.Params())
}

func TestInterpolation_MethodNotAllowed(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t, readyParams)

	for _, tc := range []struct{ method, path string }{
		{http.MethodDelete, "/api/interpolation"},
		{http.MethodGet, "/api/interpolation/toggle"},
		{http.MethodPost, "/api/interpolation/axis"},
		{http.MethodGet, "/api/interpolation/process"},
		{http.MethodGet, "/api/interpolation/chart"},
		{http.MethodGet, "/api/interpolation/plot"},
	} {
		rec := do(t, s, tc.method, tc.path, nil)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, tc.method+" "+tc.path)
	}
}

func TestToggle(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t, readyParams)

	st := decodeStatus(t, do(t, s, http.MethodPost, "/api/interpolation/toggle", nil))
	assert.False(t, st.Enabled)
	assert.Equal(t, "unconfigured", st.State)

	st = decodeStatus(t, do(t, s, http.MethodPost, "/api/interpolation/toggle", nil))
	assert.True(t, st.Enabled)
	assert.Equal(t, "ready", st.State)
}

func TestShowAxis(t *testing.T) {
	t.Parallel()
	s, ip := newTestServer(t, readyParams)

	rec := do(t, s, http.MethodGet, "/api/interpolation/axis", nil)
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	var body struct {
		Axis   interpolation.AxisKind `json:"axis"`
		Values []float64              `json:"values"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, interpolation.AxisWavelength, body.Axis)
	assert.Len(t, body.Values, ip.TotalPixels())

	ip.SetEnabled(false)
	rec = do(t, s, http.MethodGet, "/api/interpolation/axis", nil)
	testutil.AssertStatusCode(t, rec.Code, http.StatusConflict)
}

func TestProcessReading(t *testing.T) {
	t.Parallel()
	s, ip := newTestServer(t, readyParams)
	src := testutil.RamanReading(785, 790, 910, 256)

	rec := do(t, s, http.MethodPost, "/api/interpolation/process", src)
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var out spectra.Reading
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.True(t, out.Interpolated)
	require.NotNil(t, out.SourceID)
	assert.Equal(t, src.ID, *out.SourceID)
	assert.Len(t, out.Wavelengths, ip.TotalPixels())
	assert.Len(t, out.Wavenumbers, ip.TotalPixels())
	assert.Len(t, out.Processed, ip.TotalPixels())
	assert.Equal(t, 800.0, out.Wavelengths[0])
}

func TestProcessReading_Units(t *testing.T) {
	t.Parallel()
	s, _ := newTestServer(t, readyParams)
	src := testutil.RamanReading(785, 790, 910, 64)

	rec := do(t, s, http.MethodPost, "/api/interpolation/process?units=angstrom", src)
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	var out spectra.Reading
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, 8000.0, out.Wavelengths[0])

	rec = do(t, s, http.MethodPost, "/api/interpolation/process?units=furlong", src)
	testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)
	assert.Contains(t, rec.Body.String(), "nm, angstrom, um")
}

func TestProcessReading_Errors(t *testing.T) {
	t.Parallel()

	interpolated := testutil.RamanReading(785, 790, 910, 32)
	interpolated.Interpolated = true
	noAxis := testutil.RamanReading(785, 790, 910, 32)
	noAxis.Wavelengths, noAxis.Wavenumbers = nil, nil
	reversed := testutil.RamanReading(785, 790, 910, 3)
	reversed.Wavelengths = []float64{3, 2, 1}

	tests := []struct {
		name   string
		params interpolation.Params
		body   interface{}
		want   int
	}{
		{"not configured", interpolation.Params{}, testutil.RamanReading(785, 790, 910, 32), http.StatusConflict},
		{"no axis mode", interpolation.Params{Enabled: true, Start: 1, End: 2, Incr: 1}, testutil.RamanReading(785, 790, 910, 32), http.StatusConflict},
		{"already interpolated", readyParams, interpolated, http.StatusUnprocessableEntity},
		{"no native axis", readyParams, noAxis, http.StatusUnprocessableEntity},
		{"invalid native axis", readyParams, reversed, http.StatusUnprocessableEntity},
		{"malformed", readyParams, `{"wavelengths": [1,2,`, http.StatusBadRequest},
		{"null body", readyParams, `null`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, _ := newTestServer(t, tt.params)
			rec := do(t, s, http.MethodPost, "/api/interpolation/process", tt.body)
			testutil.AssertStatusCode(t, rec.Code, tt.want)
			assert.True(t, strings.Contains(rec.Body.String(), `"error"`))
		})
	}
}
