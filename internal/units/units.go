// Package units provides shared constants and conversion for wavelength
// display units.
package units

import "strings"

// Unit constants
const (
	NM       = "nm"
	Angstrom = "angstrom"
	UM       = "um"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{NM, Angstrom, UM}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return strings.Join(ValidUnits, ", ")
}

// Label returns the axis label for unit.
func Label(unit string) string {
	switch unit {
	case Angstrom:
		return "Wavelength (Å)"
	case UM:
		return "Wavelength (µm)"
	default:
		return "Wavelength (nm)"
	}
}

// ConvertWavelength converts a wavelength from nanometres to the target units.
// Readings store wavelengths in nm.
func ConvertWavelength(nm float64, targetUnits string) float64 {
	switch targetUnits {
	case Angstrom:
		return nm * 10
	case UM:
		return nm / 1000
	default:
		return nm
	}
}

// ConvertWavelengths returns a new slice with every value converted from nm.
// A nil input yields nil.
func ConvertWavelengths(nm []float64, targetUnits string) []float64 {
	if nm == nil {
		return nil
	}
	out := make([]float64, len(nm))
	for i, v := range nm {
		out[i] = ConvertWavelength(v, targetUnits)
	}
	return out
}
