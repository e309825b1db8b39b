// Package raman converts between absolute wavelength and Raman-shift
// wavenumber axes.
//
// All wavelengths are in nanometres and all wavenumbers are in inverse
// centimetres (cm⁻¹). The Raman shift of a pixel at wavelength λ under a laser
// of excitation wavelength λ₀ is
//
//	ν̃ = 1e7 · (1/λ₀ − 1/λ)
//
// and the functions in this package are that relation and its inverses.
package raman
