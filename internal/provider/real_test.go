package provider_test

import (
	"math"
	"testing"

	"github.com/XJIeI5/calculator/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseReal(t *testing.T) {
	cases := map[string]float64{
		"2":       2,
		"-2.5":    -2.5,
		"+3":      3,
		".5":      0.5,
		"1e3":     1000,
		"1.5E-2":  0.015,
		"666.666": 666.666,
	}
	for token, want := range cases {
		got, err := provider.ParseReal(token)
		require.NoError(t, err, token)
		assert.Equal(t, want, got, token)
	}

	v, err := provider.ParseReal("1e400")
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))
}

func TestParseRealErrors(t *testing.T) {
	for _, token := range []string{"", "anime", "2+3i", "1,5", "--1", "1e"} {
		_, err := provider.ParseReal(token)
		assert.ErrorIs(t, err, provider.ErrNumberFormat, token)
	}
}

func TestRealRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		x := rapid.Float64().Draw(rt, "x")
		token := provider.FormatReal(x)

		parsed, err := provider.ParseReal(token)
		if err != nil {
			rt.Fatalf("parse %q: %v", token, err)
		}
		if again := provider.FormatReal(parsed); again != token {
			rt.Fatalf("%q formatted back as %q", token, again)
		}
	})
}
