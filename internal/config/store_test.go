package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want string
	}{
		{in: true, want: "true"},
		{in: 400.0, want: "400"},
		{in: 0.25, want: "0.25"},
		{in: 7, want: "7"},
		{in: "x", want: "x"},
	}
	for _, tt := range tests {
		got, err := FormatValue(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := FormatValue([]int{1})
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()

	_, ok, err := s.GetBool(InterpolationSection, KeyEnabled)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(InterpolationSection, KeyEnabled, true))
	require.NoError(t, s.Set(InterpolationSection, KeyStart, 512.5))

	b, ok, err := s.GetBool(InterpolationSection, KeyEnabled)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, b)

	f, ok, err := s.GetFloat(InterpolationSection, KeyStart)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 512.5, f)

	_, _, err = s.GetFloat(InterpolationSection, KeyEnabled)
	assert.Error(t, err, "a boolean is not a number")

	raw, ok, err := s.GetString(InterpolationSection, KeyStart)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "512.5", raw)

	assert.Equal(t, map[string]string{KeyEnabled: "true", KeyStart: "512.5"}, s.Section(InterpolationSection))
}
