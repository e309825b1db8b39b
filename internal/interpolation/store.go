package interpolation

import (
	"errors"
	"fmt"

	"github.com/banshee-data/enlighten/internal/config"
)

// SettingsStore is the key-value store the interpolation parameters are
// persisted to. ok is false when a key has never been written.
type SettingsStore interface {
	GetBool(section, name string) (value bool, ok bool, err error)
	GetFloat(section, name string) (value float64, ok bool, err error)
	Set(section, name string, value any) error
}

// LoadFromStore reads the interpolation section of the store and applies
// it. Missing or unreadable keys fall back to defaults (which may be nil for
// the built-in defaults). Unreadable keys are reported in the returned error
// after the remaining values have been applied.
func (ip *Interpolator) LoadFromStore(defaults *config.InterpolationConfig) error {
	var errs []error

	getBool := func(name string, def bool) bool {
		if ip.store == nil {
			return def
		}
		v, ok, err := ip.store.GetBool(config.InterpolationSection, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.%s: %w", config.InterpolationSection, name, err))
			return def
		}
		if !ok {
			return def
		}
		return v
	}
	getFloat := func(name string, def float64) float64 {
		if ip.store == nil {
			return def
		}
		v, ok, err := ip.store.GetFloat(config.InterpolationSection, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.%s: %w", config.InterpolationSection, name, err))
			return def
		}
		if !ok {
			return def
		}
		return v
	}

	p := Params{
		Enabled: getBool(config.KeyEnabled, defaults.GetEnabled()),
		Axis: AxisKindFromFlags(
			getBool(config.KeyUseWavelengths, defaults.GetUseWavelengths()),
			getBool(config.KeyUseWavenumbers, defaults.GetUseWavenumbers()),
		),
		Start: getFloat(config.KeyStart, defaults.GetStart()),
		End:   getFloat(config.KeyEnd, defaults.GetEnd()),
		Incr:  getFloat(config.KeyIncr, defaults.GetIncr()),
	}
	diagf("loaded settings: %+v", p)
	ip.Apply(p)

	return errors.Join(errs...)
}

// persist writes every parameter back to the store. Failures are logged
// rather than returned: a store outage must not block configuration edits.
func (ip *Interpolator) persist(p Params) {
	if ip.store == nil {
		return
	}
	values := []struct {
		name  string
		value any
	}{
		{config.KeyEnabled, p.Enabled},
		{config.KeyUseWavelengths, p.UseWavelengths()},
		{config.KeyUseWavenumbers, p.UseWavenumbers()},
		{config.KeyStart, p.Start},
		{config.KeyEnd, p.End},
		{config.KeyIncr, p.Incr},
	}
	for _, v := range values {
		if err := ip.store.Set(config.InterpolationSection, v.name, v.value); err != nil {
			opsf("failed to persist %s.%s: %v", config.InterpolationSection, v.name, err)
		}
	}
}
