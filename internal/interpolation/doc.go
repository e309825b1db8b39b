// Package interpolation resamples spectrometer readings onto a user-defined
// uniform x-axis.
//
// An Interpolator owns the target-axis parameters (enabled, axis kind,
// start, end, increment). Any parameter change regenerates the target axis
// and writes the parameters back to a SettingsStore. Process then maps a
// reading's processed, raw, dark and reference channels from the detector's
// native wavelength or wavenumber calibration onto that axis, deriving the
// complementary axis when the laser excitation is known.
//
// Process may run on an acquisition goroutine while the parameters are being
// edited elsewhere; each call works on the axis snapshot that was current
// when it started.
package interpolation
