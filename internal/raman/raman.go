package raman

import (
	"math"
)

// NMPerCM is the number of nanometres in a centimetre.
const NMPerCM = 1e7

// WavenumbersFromWavelengths returns the Raman shift of each wavelength
// relative to the given excitation. It returns nil if excitation is not
// positive or wavelengths is nil.
func WavenumbersFromWavelengths(excitation float64, wavelengths []float64) []float64 {
	if excitation <= 0 || wavelengths == nil {
		return nil
	}
	base := 1 / excitation
	out := make([]float64, len(wavelengths))
	for i, nm := range wavelengths {
		out[i] = NMPerCM * (base - 1/nm)
	}
	return out
}

// WavelengthsFromWavenumbers is the inverse of WavenumbersFromWavelengths.
func WavelengthsFromWavenumbers(excitation float64, wavenumbers []float64) []float64 {
	if excitation <= 0 || wavenumbers == nil {
		return nil
	}
	base := 1 / excitation
	out := make([]float64, len(wavenumbers))
	for i, cm := range wavenumbers {
		out[i] = 1 / (base - cm/NMPerCM)
	}
	return out
}

// ExcitationAt solves the Raman relation for the excitation wavelength at a
// single (wavelength, wavenumber) pair.
func ExcitationAt(wavelength, wavenumber float64) float64 {
	return 1 / (1/wavelength + wavenumber/NMPerCM)
}

// GenerateExcitation recovers the excitation wavelength from a pair of
// matching wavelength and wavenumber axes.
//
// The middle pixel is tried first since calibrations are least reliable at
// the detector edges; if that pixel yields nothing usable the search walks
// outward. The bool is false when either axis is empty or no pixel gives a
// finite, positive excitation.
func GenerateExcitation(wavelengths, wavenumbers []float64) (float64, bool) {
	n := min(len(wavelengths), len(wavenumbers))
	if n == 0 {
		return 0, false
	}

	mid := n / 2
	for offset := 0; offset < n; offset++ {
		if i := mid - offset; i >= 0 {
			if ex, ok := usableExcitation(wavelengths[i], wavenumbers[i]); ok {
				return ex, true
			}
		}
		if i := mid + offset; offset > 0 && i < n {
			if ex, ok := usableExcitation(wavelengths[i], wavenumbers[i]); ok {
				return ex, true
			}
		}
	}
	return 0, false
}

func usableExcitation(wavelength, wavenumber float64) (float64, bool) {
	if wavelength <= 0 || math.IsNaN(wavenumber) || math.IsInf(wavenumber, 0) {
		return 0, false
	}
	ex := ExcitationAt(wavelength, wavenumber)
	if math.IsNaN(ex) || math.IsInf(ex, 0) || ex <= 0 {
		return 0, false
	}
	return ex, true
}

// AbsoluteWavenumbers converts wavelengths to absolute wavenumbers (1e7/λ).
// These are not Raman shifts.
func AbsoluteWavenumbers(wavelengths []float64) []float64 {
	if wavelengths == nil {
		return nil
	}
	out := make([]float64, len(wavelengths))
	for i, nm := range wavelengths {
		out[i] = NMPerCM / nm
	}
	return out
}
