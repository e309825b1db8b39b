package interpolation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readyInterpolator(t *testing.T, kind AxisKind, start, end, incr float64) *Interpolator {
	t.Helper()
	ip := NewInterpolator(nil)
	ip.Apply(Params{Enabled: true, Axis: kind, Start: start, End: end, Incr: incr})
	require.Equal(t, Ready, ip.State())
	return ip
}

func TestNewInterpolator_Unconfigured(t *testing.T) {
	t.Parallel()

	ip := NewInterpolator(nil)
	assert.Equal(t, Unconfigured, ip.State())
	assert.Zero(t, ip.TotalPixels())
	values, kind := ip.Axis()
	assert.Nil(t, values)
	assert.Equal(t, AxisUnset, kind)
}

func TestSetters_RegenerateAxis(t *testing.T) {
	t.Parallel()

	ip := NewInterpolator(nil)
	ip.SetAxisKind(AxisWavenumber)
	ip.SetStart(100)
	ip.SetEnd(200)
	ip.SetIncrement(10)
	assert.Equal(t, Unconfigured, ip.State(), "still disabled")

	ip.SetEnabled(true)
	assert.Equal(t, Ready, ip.State())
	assert.Equal(t, 11, ip.TotalPixels())

	values, kind := ip.Axis()
	assert.Equal(t, AxisWavenumber, kind)
	assert.Equal(t, 100.0, values[0])
	assert.Equal(t, 200.0, values[10])

	// user is mid-edit: end below start
	ip.SetEnd(50)
	assert.Equal(t, Unconfigured, ip.State())
	assert.Zero(t, ip.TotalPixels())

	ip.SetEnd(150)
	assert.Equal(t, 6, ip.TotalPixels())

	ip.SetIncrement(0)
	assert.Equal(t, Unconfigured, ip.State())
}

func TestToggle(t *testing.T) {
	t.Parallel()

	ip := readyInterpolator(t, AxisWavelength, 500, 510, 1)
	assert.False(t, ip.Toggle())
	assert.Equal(t, Unconfigured, ip.State())
	assert.True(t, ip.Toggle())
	assert.Equal(t, Ready, ip.State())
}

func TestRegenerate_Idempotent(t *testing.T) {
	t.Parallel()

	ip := readyInterpolator(t, AxisWavelength, 532.25, 880.5, 0.33)
	before, _ := ip.Axis()
	ip.Regenerate()
	after, _ := ip.Axis()
	assert.Equal(t, before, after)
}

func TestAxis_ReturnsCopy(t *testing.T) {
	t.Parallel()

	ip := readyInterpolator(t, AxisWavelength, 1, 3, 1)
	values, _ := ip.Axis()
	values[0] = 42
	again, _ := ip.Axis()
	assert.Equal(t, 1.0, again[0])
}

func TestCheckParams(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, CheckParams(Params{}), ErrDisabled)
	assert.ErrorIs(t, CheckParams(Params{Enabled: true, Start: 2, End: 1, Incr: 1}), ErrInvalidEndpoints)
	assert.ErrorIs(t, CheckParams(Params{Enabled: true, Start: 1, End: 2, Incr: 0}), ErrInvalidIncrement)
	assert.NoError(t, CheckParams(Params{Enabled: true, Start: 1, End: 2, Incr: 1}))
}

func TestString(t *testing.T) {
	t.Parallel()

	ip := readyInterpolator(t, AxisWavelength, 400, 1000, 1)
	assert.Equal(t, "Interpolator<enabled true, use wavelengths, start 400, end 1000, incr 1, axis (400, 1000)>", ip.String())

	ip.SetEnabled(false)
	ip.SetAxisKind(AxisUnset)
	assert.Equal(t, "Interpolator<enabled false, use none, start 400, end 1000, incr 1, axis none>", ip.String())
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "unconfigured", Unconfigured.String())
}

func TestParams_Flags(t *testing.T) {
	t.Parallel()

	p := Params{Axis: AxisWavenumber}
	assert.False(t, p.UseWavelengths())
	assert.True(t, p.UseWavenumbers())
}

func TestUpdate_Atomic(t *testing.T) {
	t.Parallel()

	ip := NewInterpolator(nil)
	got := ip.Update(func(p *Params) {
		p.Enabled = true
		p.Axis = AxisWavelength
		p.Start, p.End, p.Incr = 10, 20, 5
	})
	assert.Equal(t, Params{Enabled: true, Axis: AxisWavelength, Start: 10, End: 20, Incr: 5}, got)
	assert.Equal(t, 3, ip.TotalPixels())
}
