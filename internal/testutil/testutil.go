// Package testutil provides shared test utilities and fixtures.
//
// It centralises synthetic spectrometer readings and numeric comparison
// helpers used across the processing, API and CLI tests.
package testutil

import (
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/banshee-data/enlighten/internal/raman"
	"github.com/banshee-data/enlighten/internal/spectra"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode checks that the response status code matches expected.
func AssertStatusCode(t testing.TB, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d, want %d", got, want)
	}
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair differs by more than eps.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.InDeltaf(t, want[i], got[i], eps, "index %d", i)
	}
}

// SliceNearlyEqual is the error-returning form of RequireSliceNearlyEqual.
func SliceNearlyEqual(got, want []float64, eps float64) error {
	if len(got) != len(want) {
		return fmt.Errorf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps || math.IsNaN(diff) {
			return fmt.Errorf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
	return nil
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// RamanReading builds a reading whose wavelength axis spans [lo, hi] nm in
// the given number of pixels, with a wavenumber axis consistent with
// excitation and every channel populated. The processed channel is a single
// Gaussian peak centred mid-detector; raw = processed + dark; reference is
// flat.
func RamanReading(excitation, lo, hi float64, pixels int) *spectra.Reading {
	r := spectra.NewReading()
	r.Wavelengths = Linspace(lo, hi, pixels)
	r.Wavenumbers = raman.WavenumbersFromWavelengths(excitation, r.Wavelengths)
	r.Settings = &spectra.Settings{Serial: "WP-00001", ExcitationNM: excitation}

	centre := (lo + hi) / 2
	width := (hi - lo) / 20
	r.Processed = make([]float64, pixels)
	r.Dark = make([]float64, pixels)
	r.Raw = make([]float64, pixels)
	r.Reference = make([]float64, pixels)
	for i, nm := range r.Wavelengths {
		d := (nm - centre) / width
		r.Processed[i] = 1000 * math.Exp(-0.5*d*d)
		r.Dark[i] = 100 + float64(i%3)
		r.Raw[i] = r.Processed[i] + r.Dark[i]
		r.Reference[i] = 5000
	}
	return r
}

// NewTestRequest creates a test HTTP request.
func NewTestRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}
