package interpolation

import (
	"fmt"
	"sync"
)

// Params is the user-editable interpolation configuration.
type Params struct {
	Enabled bool     `json:"enabled"`
	Axis    AxisKind `json:"axis"`
	Start   float64  `json:"start"`
	End     float64  `json:"end"`
	Incr    float64  `json:"incr"`
}

// UseWavelengths reports whether the target axis is in wavelengths.
func (p Params) UseWavelengths() bool { return p.Axis == AxisWavelength }

// UseWavenumbers reports whether the target axis is in wavenumbers.
func (p Params) UseWavenumbers() bool { return p.Axis == AxisWavenumber }

// State is the interpolator's readiness.
type State int

const (
	// Unconfigured means there is no valid target axis; Process fails.
	Unconfigured State = iota
	// Ready means a target axis has been generated.
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "unconfigured"
}

// Interpolator resamples readings onto a configurable target axis.
// The zero value is not usable; call NewInterpolator.
type Interpolator struct {
	// writeMu serialises parameter updates so the published axis always
	// matches the published params and store writes land in order.
	writeMu sync.Mutex

	mu     sync.Mutex
	params Params
	axis   *TargetAxis

	store SettingsStore
}

// NewInterpolator returns a disabled Interpolator. store may be nil, in
// which case parameter changes are not persisted.
func NewInterpolator(store SettingsStore) *Interpolator {
	return &Interpolator{store: store}
}

// Params returns the current configuration.
func (ip *Interpolator) Params() Params {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	return ip.params
}

func (ip *Interpolator) snapshot() *TargetAxis {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	return ip.axis
}

// State reports whether a target axis is available.
func (ip *Interpolator) State() State {
	if ip.snapshot() == nil {
		return Unconfigured
	}
	return Ready
}

// TotalPixels returns the length of the current target axis, or 0 when
// unconfigured.
func (ip *Interpolator) TotalPixels() int {
	return ip.snapshot().Len()
}

// Axis returns a copy of the current target axis values and its kind.
// The slice is nil when unconfigured.
func (ip *Interpolator) Axis() ([]float64, AxisKind) {
	a := ip.snapshot()
	if a == nil {
		return nil, AxisUnset
	}
	return a.Values(), a.Kind()
}

// Apply replaces the whole configuration.
func (ip *Interpolator) Apply(p Params) {
	ip.update(func(cur *Params) { *cur = p })
}

// SetEnabled turns interpolation on or off.
func (ip *Interpolator) SetEnabled(enabled bool) {
	ip.update(func(p *Params) { p.Enabled = enabled })
}

// Toggle flips Enabled and returns the new value.
func (ip *Interpolator) Toggle() bool {
	return ip.update(func(p *Params) { p.Enabled = !p.Enabled }).Enabled
}

// SetAxisKind selects wavelength or wavenumber interpolation.
func (ip *Interpolator) SetAxisKind(kind AxisKind) {
	ip.update(func(p *Params) { p.Axis = kind })
}

// SetStart sets the first point of the target axis.
func (ip *Interpolator) SetStart(start float64) {
	ip.update(func(p *Params) { p.Start = start })
}

// SetEnd sets the upper bound of the target axis.
func (ip *Interpolator) SetEnd(end float64) {
	ip.update(func(p *Params) { p.End = end })
}

// SetIncrement sets the spacing of the target axis.
func (ip *Interpolator) SetIncrement(incr float64) {
	ip.update(func(p *Params) { p.Incr = incr })
}

// Update applies fn to a copy of the current configuration and publishes
// the result atomically with respect to other updates. It returns the new
// configuration.
func (ip *Interpolator) Update(fn func(*Params)) Params {
	return ip.update(fn)
}

// Regenerate rebuilds the target axis from the current parameters.
// Setters call it implicitly.
func (ip *Interpolator) Regenerate() {
	ip.update(func(*Params) {})
}

func (ip *Interpolator) update(fn func(*Params)) Params {
	ip.writeMu.Lock()
	defer ip.writeMu.Unlock()

	p := ip.Params()
	fn(&p)
	axis := buildAxis(p)

	ip.mu.Lock()
	ip.params = p
	ip.axis = axis
	ip.mu.Unlock()

	ip.persist(p)
	return p
}

// buildAxis returns the axis for p, or nil when p does not describe one.
func buildAxis(p Params) *TargetAxis {
	if !p.Enabled {
		diagf("%v; clearing target axis", ErrDisabled)
		return nil
	}
	values, err := GenerateAxis(p.Start, p.End, p.Incr)
	if err != nil {
		diagf("%v; clearing target axis", err)
		return nil
	}
	diagf("generated %s axis from %.2f to %.2f (%d points)", p.Axis, p.Start, p.End, len(values))
	return &TargetAxis{kind: p.Axis, values: values}
}

// CheckParams returns why p would leave the interpolator unconfigured, or
// nil if it yields an axis.
func CheckParams(p Params) error {
	if !p.Enabled {
		return ErrDisabled
	}
	_, err := GenerateAxis(p.Start, p.End, p.Incr)
	return err
}

func (ip *Interpolator) String() string {
	p := ip.Params()
	axis := "none"
	if a := ip.snapshot(); a != nil {
		first, last := a.Bounds()
		axis = fmt.Sprintf("(%g, %g)", first, last)
	}
	use := "none"
	switch p.Axis {
	case AxisWavelength:
		use = "wavelengths"
	case AxisWavenumber:
		use = "wavenumbers"
	}
	return fmt.Sprintf("Interpolator<enabled %t, use %s, start %g, end %g, incr %g, axis %s>",
		p.Enabled, use, p.Start, p.End, p.Incr, axis)
}
