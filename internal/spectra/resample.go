package spectra

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

var (
	// ErrEmptyAxis is returned when resampling from an axis with no points.
	ErrEmptyAxis = errors.New("spectra: empty axis")
	// ErrAxisNotIncreasing is returned when a source axis is not strictly
	// increasing or contains NaN.
	ErrAxisNotIncreasing = errors.New("spectra: axis is not strictly increasing")
	// ErrLengthMismatch is returned when a channel does not have one value
	// per axis point.
	ErrLengthMismatch = errors.New("spectra: channel length does not match axis")
)

// IsStrictlyIncreasing reports whether every element of xs is greater than
// the one before it. NaN never compares greater, so any NaN fails.
func IsStrictlyIncreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return false
		}
	}
	return true
}

// ValidateAxis checks that axis can be used as the x coordinates of a
// resample.
func ValidateAxis(axis []float64) error {
	if len(axis) == 0 {
		return ErrEmptyAxis
	}
	if floats.HasNaN(axis) || !IsStrictlyIncreasing(axis) {
		return ErrAxisNotIncreasing
	}
	return nil
}

// Resampler maps channels sampled on a fixed source axis onto other axes.
// It is safe for concurrent use; each call fits its own interpolant.
type Resampler struct {
	oldAxis []float64
}

// NewResampler validates oldAxis and returns a Resampler for it. The axis is
// retained, not copied, so callers must not modify it afterwards.
func NewResampler(oldAxis []float64) (*Resampler, error) {
	if err := ValidateAxis(oldAxis); err != nil {
		return nil, err
	}
	return &Resampler{oldAxis: oldAxis}, nil
}

// Len returns the number of points on the source axis.
func (r *Resampler) Len() int {
	return len(r.oldAxis)
}

// Resample evaluates values, sampled on the source axis, at each point of
// newAxis using piecewise linear interpolation. Points outside the source
// range take the nearest boundary value; nothing is extrapolated.
// The returned slice is always newly allocated.
func (r *Resampler) Resample(newAxis, values []float64) ([]float64, error) {
	if len(values) != len(r.oldAxis) {
		return nil, fmt.Errorf("%w: %d values for %d axis points", ErrLengthMismatch, len(values), len(r.oldAxis))
	}

	out := make([]float64, len(newAxis))
	if len(r.oldAxis) == 1 {
		for i := range out {
			out[i] = values[0]
		}
		return out, nil
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(r.oldAxis, values); err != nil {
		return nil, fmt.Errorf("fit interpolant: %w", err)
	}
	for i, x := range newAxis {
		out[i] = pl.Predict(x)
	}
	return out, nil
}

// Resample is a convenience wrapper for a single channel.
func Resample(newAxis, oldAxis, values []float64) ([]float64, error) {
	r, err := NewResampler(oldAxis)
	if err != nil {
		return nil, err
	}
	return r.Resample(newAxis, values)
}
