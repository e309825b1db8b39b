package interpolation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/banshee-data/enlighten/internal/raman"
	"github.com/banshee-data/enlighten/internal/spectra"
)

// DeriveExcitation returns the laser excitation wavelength for a reading:
// the instrument setting when it is positive, otherwise the value implied by
// the reading's own wavelength and wavenumber calibrations.
func DeriveExcitation(wavelengths, wavenumbers []float64, settings *spectra.Settings) (float64, bool) {
	if ex := settings.Excitation(); ex > 0 {
		return ex, true
	}
	return raman.GenerateExcitation(wavelengths, wavenumbers)
}

// Process returns a new reading whose channels have been resampled onto the
// current target axis. The source reading is not modified and the result
// shares no slices with it.
//
// A channel whose length does not match the native axis is dropped from the
// result and logged; the call still succeeds.
func (ip *Interpolator) Process(pr *spectra.Reading) (*spectra.Reading, error) {
	axis := ip.snapshot()
	if axis == nil {
		opsf("process: %v", ErrNotConfigured)
		return nil, ErrNotConfigured
	}
	if pr == nil {
		opsf("process: %v", ErrNilReading)
		return nil, ErrNilReading
	}
	if pr.Interpolated {
		opsf("process: reading %s: %v", pr.ID, ErrAlreadyInterpolated)
		return nil, ErrAlreadyInterpolated
	}

	wavelengths := pr.Wavelengths
	wavenumbers := pr.Wavenumbers
	if wavelengths == nil && wavenumbers == nil {
		opsf("process: reading %s: %v", pr.ID, ErrNoNativeAxis)
		return nil, ErrNoNativeAxis
	}

	kind := axis.Kind()
	if kind == AxisUnset {
		opsf("process: %v", ErrNoAxisModeSelected)
		return nil, ErrNoAxisModeSelected
	}

	oldAxis := pr.Axis(kind)
	if oldAxis == nil {
		return nil, fmt.Errorf("%w: reading %s has no %s calibration", ErrNoNativeAxis, pr.ID, kind)
	}
	resampler, err := spectra.NewResampler(oldAxis)
	if err != nil {
		return nil, fmt.Errorf("%w: %s axis of reading %s: %v", ErrInvalidNativeAxis, kind, pr.ID, err)
	}

	sourceID := pr.ID
	ipr := &spectra.Reading{
		ID:           uuid.New(),
		SourceID:     &sourceID,
		Settings:     pr.Settings.Clone(),
		Interpolated: true,
	}

	newAxis := axis.Values()
	ipr.SetAxis(kind, newAxis)

	if excitation, ok := DeriveExcitation(wavelengths, wavenumbers, pr.Settings); ok {
		switch kind {
		case AxisWavelength:
			ipr.Wavenumbers = raman.WavenumbersFromWavelengths(excitation, newAxis)
		case AxisWavenumber:
			ipr.Wavelengths = raman.WavelengthsFromWavenumbers(excitation, newAxis)
		}
	} else {
		diagf("reading %s: excitation unknown, not deriving complementary axis", pr.ID)
	}

	for _, ch := range spectra.Channels {
		values := pr.Channel(ch)
		if values == nil {
			continue
		}
		out, err := resampleChannel(resampler, oldAxis, newAxis, ch, values, pr.Settings)
		if err != nil {
			opsf("reading %s: dropping %s: %v", pr.ID, ch, err)
			continue
		}
		ipr.SetChannel(ch, out)
	}

	tracef("interpolated reading %s onto %d %s points", pr.ID, len(newAxis), kind)
	return ipr, nil
}

// resampleChannel maps one channel onto newAxis. A processed spectrum that
// has been cropped to the horizontal ROI is resampled against the matching
// slice of the native axis; beyond the crop it takes the boundary values.
func resampleChannel(r *spectra.Resampler, oldAxis, newAxis []float64, ch spectra.Channel, values []float64, settings *spectra.Settings) ([]float64, error) {
	if len(values) == r.Len() || ch != spectra.ChannelProcessed || settings == nil || settings.HorizontalROI == nil {
		return r.Resample(newAxis, values)
	}

	roi := *settings.HorizontalROI
	if !roi.Valid(len(oldAxis)) || roi.Width() != len(values) {
		return r.Resample(newAxis, values)
	}
	cropped, err := spectra.NewResampler(roi.Crop(oldAxis))
	if err != nil {
		return nil, err
	}
	diagf("resampling cropped %s (pixels %d-%d) onto %d points", ch, roi.Start, roi.End, len(newAxis))
	return cropped.Resample(newAxis, values)
}
