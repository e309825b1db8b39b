package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical interpolation defaults file.
const DefaultConfigPath = "config/interpolation.defaults.json"

// InterpolationSection is the settings-store section holding the
// interpolation parameters.
const InterpolationSection = "interpolation"

// Keys persisted under InterpolationSection.
const (
	KeyEnabled        = "enabled"
	KeyUseWavelengths = "use_wavelengths"
	KeyUseWavenumbers = "use_wavenumbers"
	KeyStart          = "start"
	KeyEnd            = "end"
	KeyIncr           = "incr"
)

// InterpolationKeys lists every key persisted under InterpolationSection.
var InterpolationKeys = []string{KeyEnabled, KeyUseWavelengths, KeyUseWavenumbers, KeyStart, KeyEnd, KeyIncr}

// InterpolationConfig holds the start-up defaults for x-axis interpolation.
// The schema matches the keys written to the settings store so the same
// names appear in the defaults file, the database and the HTTP API.
type InterpolationConfig struct {
	Enabled        *bool    `json:"enabled,omitempty"`
	UseWavelengths *bool    `json:"use_wavelengths,omitempty"`
	UseWavenumbers *bool    `json:"use_wavenumbers,omitempty"`
	Start          *float64 `json:"start,omitempty"`
	End            *float64 `json:"end,omitempty"`
	Incr           *float64 `json:"incr,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }

// EmptyInterpolationConfig returns an InterpolationConfig with all fields
// set to nil, so every Get* accessor returns its built-in default.
func EmptyInterpolationConfig() *InterpolationConfig {
	return &InterpolationConfig{}
}

// DefaultInterpolationConfig returns the built-in defaults with every field
// populated.
func DefaultInterpolationConfig() *InterpolationConfig {
	c := EmptyInterpolationConfig()
	return &InterpolationConfig{
		Enabled:        ptrBool(c.GetEnabled()),
		UseWavelengths: ptrBool(c.GetUseWavelengths()),
		UseWavenumbers: ptrBool(c.GetUseWavenumbers()),
		Start:          ptrFloat64(c.GetStart()),
		End:            ptrFloat64(c.GetEnd()),
		Incr:           ptrFloat64(c.GetIncr()),
	}
}

// LoadInterpolationConfig loads an InterpolationConfig from a JSON file.
// Fields omitted from the file keep their built-in defaults.
func LoadInterpolationConfig(path string) (*InterpolationConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 64 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyInterpolationConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// FindDefaultConfig looks for DefaultConfigPath in the working directory and
// its parents, so binaries and tests work from anywhere inside the repo.
// It returns the built-in defaults if no file is found.
func FindDefaultConfig() (*InterpolationConfig, error) {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return LoadInterpolationConfig(path)
	}
	return DefaultInterpolationConfig(), nil
}

// Validate checks that the configuration values are usable.
//
// Ranges where end <= start or incr <= 0 are accepted: they are valid
// transient states and simply leave interpolation unconfigured. Only values
// that can never form an axis are rejected.
func (c *InterpolationConfig) Validate() error {
	for name, v := range map[string]*float64{KeyStart: c.Start, KeyEnd: c.End, KeyIncr: c.Incr} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return fmt.Errorf("%s must be finite, got %v", name, *v)
		}
	}
	return nil
}

// GetEnabled returns the enabled value or the default.
func (c *InterpolationConfig) GetEnabled() bool {
	if c == nil || c.Enabled == nil {
		return false
	}
	return *c.Enabled
}

// GetUseWavelengths returns the use_wavelengths value or the default.
func (c *InterpolationConfig) GetUseWavelengths() bool {
	if c == nil || c.UseWavelengths == nil {
		return true
	}
	return *c.UseWavelengths
}

// GetUseWavenumbers returns the use_wavenumbers value or the default.
func (c *InterpolationConfig) GetUseWavenumbers() bool {
	if c == nil || c.UseWavenumbers == nil {
		return false
	}
	return *c.UseWavenumbers
}

// GetStart returns the start value or the default.
func (c *InterpolationConfig) GetStart() float64 {
	if c == nil || c.Start == nil {
		return 400
	}
	return *c.Start
}

// GetEnd returns the end value or the default.
func (c *InterpolationConfig) GetEnd() float64 {
	if c == nil || c.End == nil {
		return 1000
	}
	return *c.End
}

// GetIncr returns the incr value or the default.
func (c *InterpolationConfig) GetIncr() float64 {
	if c == nil || c.Incr == nil {
		return 1
	}
	return *c.Incr
}
