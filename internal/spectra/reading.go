package spectra

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// AxisKind selects which x-axis representation a reading is indexed by.
type AxisKind int

const (
	// AxisUnset means no axis has been chosen.
	AxisUnset AxisKind = iota
	// AxisWavelength is absolute wavelength in nm.
	AxisWavelength
	// AxisWavenumber is Raman shift in cm⁻¹.
	AxisWavenumber
)

// String returns the string representation of the axis kind.
func (k AxisKind) String() string {
	switch k {
	case AxisWavelength:
		return "wavelength"
	case AxisWavenumber:
		return "wavenumber"
	default:
		return "unset"
	}
}

// ParseAxisKind converts a string to AxisKind. Plural forms are accepted
// since that is how the persisted flags are named.
func ParseAxisKind(s string) (AxisKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wavelength", "wavelengths", "nm":
		return AxisWavelength, nil
	case "wavenumber", "wavenumbers", "cm-1", "raman":
		return AxisWavenumber, nil
	case "", "unset", "none":
		return AxisUnset, nil
	default:
		return AxisUnset, fmt.Errorf("invalid axis %q (must be 'wavelength' or 'wavenumber')", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k AxisKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *AxisKind) UnmarshalText(b []byte) error {
	parsed, err := ParseAxisKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Channel identifies one of the per-pixel data arrays carried by a Reading.
type Channel int

const (
	ChannelProcessed Channel = iota
	ChannelRaw
	ChannelDark
	ChannelReference
)

// Channels lists every channel in processing order.
var Channels = []Channel{ChannelProcessed, ChannelRaw, ChannelDark, ChannelReference}

func (c Channel) String() string {
	switch c {
	case ChannelProcessed:
		return "processed"
	case ChannelRaw:
		return "raw"
	case ChannelDark:
		return "dark"
	case ChannelReference:
		return "reference"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// ROI is a horizontal region of interest in detector pixels. End is inclusive.
type ROI struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Width returns the number of pixels covered by the ROI.
func (r ROI) Width() int {
	return r.End - r.Start + 1
}

// Valid reports whether the ROI fits inside a detector of n pixels.
func (r ROI) Valid(n int) bool {
	return r.Start >= 0 && r.End >= r.Start && r.End < n
}

// Crop returns a copy of the ROI's slice of values, or nil if the ROI does
// not fit.
func (r ROI) Crop(values []float64) []float64 {
	if !r.Valid(len(values)) {
		return nil
	}
	out := make([]float64, r.Width())
	copy(out, values[r.Start:r.End+1])
	return out
}

// Settings is the subset of instrument state a processing stage needs.
type Settings struct {
	Serial        string  `json:"serial,omitempty"`
	ExcitationNM  float64 `json:"excitation_nm,omitempty"`
	HorizontalROI *ROI    `json:"horizontal_roi,omitempty"`
}

// Excitation returns the laser excitation in nm, or 0 when unknown.
func (s *Settings) Excitation() float64 {
	if s == nil {
		return 0
	}
	return s.ExcitationNM
}

// Clone returns a deep copy of s.
func (s *Settings) Clone() *Settings {
	if s == nil {
		return nil
	}
	c := *s
	if s.HorizontalROI != nil {
		roi := *s.HorizontalROI
		c.HorizontalROI = &roi
	}
	return &c
}

// Reading is one acquired spectrum with its native axes and channels.
// Any slice may be nil when the stage that produces it has not run.
type Reading struct {
	ID       uuid.UUID  `json:"id"`
	SourceID *uuid.UUID `json:"source_id,omitempty"`

	Wavelengths []float64 `json:"wavelengths,omitempty"`
	Wavenumbers []float64 `json:"wavenumbers,omitempty"`

	Processed []float64 `json:"processed,omitempty"`
	Raw       []float64 `json:"raw,omitempty"`
	Dark      []float64 `json:"dark,omitempty"`
	Reference []float64 `json:"reference,omitempty"`

	Settings     *Settings `json:"settings,omitempty"`
	Interpolated bool      `json:"interpolated"`
}

// NewReading returns an empty reading with a fresh ID.
func NewReading() *Reading {
	return &Reading{ID: uuid.New()}
}

// Axis returns the native axis of the given kind.
func (r *Reading) Axis(kind AxisKind) []float64 {
	switch kind {
	case AxisWavelength:
		return r.Wavelengths
	case AxisWavenumber:
		return r.Wavenumbers
	default:
		return nil
	}
}

// SetAxis assigns the axis of the given kind. AxisUnset is ignored.
func (r *Reading) SetAxis(kind AxisKind, values []float64) {
	switch kind {
	case AxisWavelength:
		r.Wavelengths = values
	case AxisWavenumber:
		r.Wavenumbers = values
	}
}

// Channel returns the data for c.
func (r *Reading) Channel(c Channel) []float64 {
	switch c {
	case ChannelProcessed:
		return r.Processed
	case ChannelRaw:
		return r.Raw
	case ChannelDark:
		return r.Dark
	case ChannelReference:
		return r.Reference
	default:
		return nil
	}
}

// SetChannel assigns the data for c.
func (r *Reading) SetChannel(c Channel, values []float64) {
	switch c {
	case ChannelProcessed:
		r.Processed = values
	case ChannelRaw:
		r.Raw = values
	case ChannelDark:
		r.Dark = values
	case ChannelReference:
		r.Reference = values
	}
}

// Pixels returns the length of the native wavelength axis, falling back to
// the wavenumber axis.
func (r *Reading) Pixels() int {
	if r.Wavelengths != nil {
		return len(r.Wavelengths)
	}
	return len(r.Wavenumbers)
}

// Clone returns a deep copy of r that shares no slices with it.
func (r *Reading) Clone() *Reading {
	if r == nil {
		return nil
	}
	c := &Reading{
		ID:           r.ID,
		Wavelengths:  cloneFloats(r.Wavelengths),
		Wavenumbers:  cloneFloats(r.Wavenumbers),
		Settings:     r.Settings.Clone(),
		Interpolated: r.Interpolated,
	}
	if r.SourceID != nil {
		id := *r.SourceID
		c.SourceID = &id
	}
	for _, ch := range Channels {
		c.SetChannel(ch, cloneFloats(r.Channel(ch)))
	}
	return c
}

func cloneFloats(v []float64) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
