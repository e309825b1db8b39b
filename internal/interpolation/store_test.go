package interpolation

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/enlighten/internal/config"
)

func TestLoadFromStore_EmptyStoreUsesDefaults(t *testing.T) {
	t.Parallel()

	ip := NewInterpolator(config.NewMemoryStore())
	require.NoError(t, ip.LoadFromStore(nil))

	p := ip.Params()
	assert.Equal(t, Params{Enabled: false, Axis: AxisWavelength, Start: 400, End: 1000, Incr: 1}, p)
	assert.Equal(t, Unconfigured, ip.State())
}

func TestLoadFromStore_StoredValuesWin(t *testing.T) {
	t.Parallel()

	store := config.NewMemoryStore()
	require.NoError(t, store.Set(config.InterpolationSection, config.KeyEnabled, true))
	require.NoError(t, store.Set(config.InterpolationSection, config.KeyUseWavelengths, false))
	require.NoError(t, store.Set(config.InterpolationSection, config.KeyUseWavenumbers, true))
	require.NoError(t, store.Set(config.InterpolationSection, config.KeyStart, 200.0))
	require.NoError(t, store.Set(config.InterpolationSection, config.KeyEnd, 2000.0))
	require.NoError(t, store.Set(config.InterpolationSection, config.KeyIncr, 4.0))

	ip := NewInterpolator(store)
	require.NoError(t, ip.LoadFromStore(config.DefaultInterpolationConfig()))
	assert.Equal(t, Params{Enabled: true, Axis: AxisWavenumber, Start: 200, End: 2000, Incr: 4}, ip.Params())
	assert.Equal(t, 451, ip.TotalPixels())
}

func TestLoadFromStore_BothFlagsPreferWavelengths(t *testing.T) {
	t.Parallel()

	store := config.NewMemoryStore()
	require.NoError(t, store.Set(config.InterpolationSection, config.KeyUseWavelengths, true))
	require.NoError(t, store.Set(config.InterpolationSection, config.KeyUseWavenumbers, true))

	ip := NewInterpolator(store)
	require.NoError(t, ip.LoadFromStore(nil))
	assert.Equal(t, AxisWavelength, ip.Params().Axis)

	// persisting normalises the flags
	v, ok, err := store.GetBool(config.InterpolationSection, config.KeyUseWavenumbers)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, v)
}

func TestLoadFromStore_UnreadableKeyFallsBack(t *testing.T) {
	t.Parallel()

	store := config.NewMemoryStore()
	require.NoError(t, store.Set(config.InterpolationSection, config.KeyEnabled, true))
	require.NoError(t, store.Set(config.InterpolationSection, config.KeyIncr, "every other"))

	defaults := &config.InterpolationConfig{Incr: func() *float64 { v := 2.0; return &v }()}
	ip := NewInterpolator(store)
	err := ip.LoadFromStore(defaults)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interpolation.incr")

	p := ip.Params()
	assert.True(t, p.Enabled)
	assert.Equal(t, 2.0, p.Incr)
	assert.Equal(t, Ready, ip.State())
}

func TestPersist_WritesEveryKey(t *testing.T) {
	t.Parallel()

	store := config.NewMemoryStore()
	ip := NewInterpolator(store)
	ip.Apply(Params{Enabled: true, Axis: AxisWavenumber, Start: 100, End: 3200.5, Incr: 0.25})

	assert.Equal(t, map[string]string{
		config.KeyEnabled:        "true",
		config.KeyUseWavelengths: "false",
		config.KeyUseWavenumbers: "true",
		config.KeyStart:          "100",
		config.KeyEnd:            "3200.5",
		config.KeyIncr:           "0.25",
	}, store.Section(config.InterpolationSection))
}

func TestPersist_RoundTrip(t *testing.T) {
	t.Parallel()

	store := config.NewMemoryStore()
	want := Params{Enabled: true, Axis: AxisWavelength, Start: 785.125, End: 1100, Incr: 0.1}
	NewInterpolator(store).Apply(want)

	ip := NewInterpolator(store)
	require.NoError(t, ip.LoadFromStore(nil))
	assert.Equal(t, want, ip.Params())
}

type failingStore struct {
	mu   sync.Mutex
	sets int
}

var errStoreDown = errors.New("store down")

func (s *failingStore) GetBool(string, string) (bool, bool, error) {
	return false, false, errStoreDown
}

func (s *failingStore) GetFloat(string, string) (float64, bool, error) {
	return 0, false, errStoreDown
}

func (s *failingStore) Set(string, string, any) error {
	s.mu.Lock()
	s.sets++
	s.mu.Unlock()
	return errStoreDown
}

func TestPersist_FailureIsLoggedNotFatal(t *testing.T) {
	var ops bytes.Buffer
	SetLogWriters(&ops, nil, nil)
	defer SetLogWriters(nil, nil, nil)

	store := &failingStore{}
	ip := NewInterpolator(store)
	ip.Apply(Params{Enabled: true, Axis: AxisWavelength, Start: 1, End: 2, Incr: 1})

	assert.Equal(t, Ready, ip.State())
	assert.Equal(t, len(config.InterpolationKeys), store.sets)
	assert.Contains(t, ops.String(), "failed to persist interpolation.enabled")

	err := ip.LoadFromStore(nil)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, AxisWavelength, ip.Params().Axis)
}
