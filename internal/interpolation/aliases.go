package interpolation

import "github.com/banshee-data/enlighten/internal/spectra"

// AxisKind aliases spectra.AxisKind so callers configuring an Interpolator
// need not import spectra.
type AxisKind = spectra.AxisKind

const (
	AxisUnset      = spectra.AxisUnset
	AxisWavelength = spectra.AxisWavelength
	AxisWavenumber = spectra.AxisWavenumber
)
