package interpolation

import "errors"

var (
	// ErrNotConfigured is returned by Process when no valid target axis has
	// been generated.
	ErrNotConfigured = errors.New("interpolation: target axis not configured")
	// ErrNilReading is returned by Process when given a nil reading.
	ErrNilReading = errors.New("interpolation: nil reading")
	// ErrAlreadyInterpolated is returned when a reading has already been
	// through Process. It indicates a pipeline-ordering bug upstream.
	ErrAlreadyInterpolated = errors.New("interpolation: reading already interpolated")
	// ErrNoNativeAxis is returned when a reading carries neither a
	// wavelength nor a wavenumber calibration, or lacks the one selected.
	ErrNoNativeAxis = errors.New("interpolation: reading has no native axis")
	// ErrNoAxisModeSelected is returned when neither wavelength nor
	// wavenumber interpolation has been selected.
	ErrNoAxisModeSelected = errors.New("interpolation: no axis mode selected")
	// ErrInvalidNativeAxis is returned when the selected native axis cannot
	// be interpolated from (empty, NaN, or not strictly increasing).
	ErrInvalidNativeAxis = errors.New("interpolation: native axis is not strictly increasing")
)

// Reasons an axis could not be generated. Regenerate only logs these; they
// are exported so callers validating user input can report them.
var (
	ErrDisabled         = errors.New("interpolation disabled")
	ErrInvalidEndpoints = errors.New("invalid interpolation endpoints")
	ErrInvalidIncrement = errors.New("invalid interpolation increment")
	ErrTooManyPoints    = errors.New("interpolated axis too large")
)

// IsReadingError reports whether err describes a problem with the reading
// passed to Process, as opposed to the interpolator's own configuration.
func IsReadingError(err error) bool {
	return errors.Is(err, ErrNilReading) ||
		errors.Is(err, ErrAlreadyInterpolated) ||
		errors.Is(err, ErrNoNativeAxis) ||
		errors.Is(err, ErrInvalidNativeAxis)
}
