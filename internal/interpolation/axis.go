package interpolation

import (
	"fmt"
	"math"
)

// MaxAxisPoints bounds the size of a generated axis. Detectors have at most a
// few thousand pixels; anything near this limit is a typo in the increment.
const MaxAxisPoints = 1 << 20

// TargetAxis is an immutable, strictly increasing resample grid.
type TargetAxis struct {
	kind   AxisKind
	values []float64
}

// Kind returns the representation the axis is expressed in.
func (a *TargetAxis) Kind() AxisKind {
	return a.kind
}

// Len returns the number of points on the axis.
func (a *TargetAxis) Len() int {
	if a == nil {
		return 0
	}
	return len(a.values)
}

// Values returns a copy of the axis points.
func (a *TargetAxis) Values() []float64 {
	if a == nil {
		return nil
	}
	out := make([]float64, len(a.values))
	copy(out, a.values)
	return out
}

// Bounds returns the first and last points.
func (a *TargetAxis) Bounds() (first, last float64) {
	return a.values[0], a.values[len(a.values)-1]
}

// GenerateAxis returns start, start+incr, start+2·incr, … up to and
// including the last value that does not exceed end. Point k is computed as
// start + k·incr rather than by accumulation, so long axes do not drift.
func GenerateAxis(start, end, incr float64) ([]float64, error) {
	if !isFinite(start) || !isFinite(end) || end <= start {
		return nil, fmt.Errorf("%w: start %g, end %g", ErrInvalidEndpoints, start, end)
	}
	if !isFinite(incr) || incr <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidIncrement, incr)
	}
	if span := (end - start) / incr; span >= MaxAxisPoints {
		return nil, fmt.Errorf("%w: %.0f points (max %d)", ErrTooManyPoints, span+1, MaxAxisPoints)
	}

	values := make([]float64, 0, int((end-start)/incr)+2)
	for k := 0; ; k++ {
		v := start + float64(k)*incr
		if v > end {
			break
		}
		if n := len(values); n > 0 && v <= values[n-1] {
			return nil, fmt.Errorf("%w: %g is below the resolution of %g", ErrInvalidIncrement, incr, start)
		}
		values = append(values, v)
	}
	return values, nil
}

// AxisKindFromFlags maps the persisted use_wavelengths/use_wavenumbers pair
// onto a single axis kind. When both are set wavelengths win.
func AxisKindFromFlags(useWavelengths, useWavenumbers bool) AxisKind {
	switch {
	case useWavelengths && useWavenumbers:
		diagf("both wavelength and wavenumber axes selected; using wavelengths")
		return AxisWavelength
	case useWavelengths:
		return AxisWavelength
	case useWavenumbers:
		return AxisWavenumber
	default:
		return AxisUnset
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
