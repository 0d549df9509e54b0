package colors_test

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/timetags/internal/colors"
)

func channels(t *testing.T, hex string) [3]int64 {
	t.Helper()
	require.Len(t, hex, 7)
	var out [3]int64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseInt(hex[1+2*i:3+2*i], 16, 64)
		require.NoError(t, err)
		out[i] = v
	}
	return out
}

func TestHexToHSL(t *testing.T) {
	tests := []struct {
		hex  string
		want colors.HSL
	}{
		{"#000000", colors.HSL{H: 0, S: 0, L: 0}},
		{"#ffffff", colors.HSL{H: 0, S: 0, L: 100}},
		{"808080", colors.HSL{H: 0, S: 0, L: 50.196}},
		{"#FF0000", colors.HSL{H: 0, S: 100, L: 50}},
		{"#00ff00", colors.HSL{H: 120, S: 100, L: 50}},
		{"#0000ff", colors.HSL{H: 240, S: 100, L: 50}},
		{"#3B82F6", colors.HSL{H: 217.2, S: 91.2, L: 59.8}},
	}
	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			got, err := colors.HexToHSL(tt.hex)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.H, got.H, 0.1)
			assert.InDelta(t, tt.want.S, got.S, 0.1)
			assert.InDelta(t, tt.want.L, got.L, 0.1)
		})
	}
}

func TestHexToHSLRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "#", "#fff", "#12345", "#1234567", "#gg0000", "zzzzzz", "##123456", " #123456"} {
		_, err := colors.HexToHSL(in)
		assert.ErrorIs(t, err, colors.ErrInvalidColor, "input %q", in)
	}
}

func TestHSLToHex(t *testing.T) {
	tests := []struct {
		h, s, l float64
		want    string
	}{
		{0, 0, 0, "#000000"},
		{0, 0, 100, "#ffffff"},
		{0, 100, 50, "#ff0000"},
		{120, 100, 50, "#00ff00"},
		{240, 100, 50, "#0000ff"},
		{360, 100, 50, "#ff0000"},
		{0, 0, 50, "#808080"},
	}
	for _, tt := range tests {
		got := colors.HSLToHex(tt.h, tt.s, tt.l)
		assert.Equal(t, tt.want, got, "HSLToHex(%v, %v, %v)", tt.h, tt.s, tt.l)
	}
}

func TestRoundTripWithinOnePerChannel(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 15 {
				in := fmt.Sprintf("#%02x%02x%02x", r, g, b)
				hsl, err := colors.HexToHSL(in)
				require.NoError(t, err)
				out := colors.HSLToHex(hsl.H, hsl.S, hsl.L)

				want := channels(t, in)
				got := channels(t, out)
				for i := range want {
					assert.InDelta(t, want[i], got[i], 1, "%s -> %s", in, out)
				}
			}
		}
	}
}

func TestContrastingColor(t *testing.T) {
	t.Run("light background gets darker text", func(t *testing.T) {
		got, err := colors.ContrastingColor("#cbd5e1")
		require.NoError(t, err)
		in, _ := colors.HexToHSL("#cbd5e1")
		out, err := colors.HexToHSL(got)
		require.NoError(t, err)
		assert.InDelta(t, in.L-40, out.L, 1)
		assert.InDelta(t, in.H, out.H, 2)
	})

	t.Run("dark background gets lighter text", func(t *testing.T) {
		got, err := colors.ContrastingColor("#1e3a8a")
		require.NoError(t, err)
		in, _ := colors.HexToHSL("#1e3a8a")
		out, err := colors.HexToHSL(got)
		require.NoError(t, err)
		assert.InDelta(t, in.L+40, out.L, 1)
	})

	t.Run("clamps at white and black", func(t *testing.T) {
		got, err := colors.ContrastingColorDiff("#ffffff", 200)
		require.NoError(t, err)
		assert.Equal(t, "#000000", got)

		got, err = colors.ContrastingColorDiff("#000000", 200)
		require.NoError(t, err)
		assert.Equal(t, "#ffffff", got)
	})

	t.Run("grey stays grey", func(t *testing.T) {
		got, err := colors.ContrastingColor("#333333")
		require.NoError(t, err)
		out, _ := colors.HexToHSL(got)
		assert.Zero(t, out.S)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := colors.ContrastingColor("blue")
		assert.ErrorIs(t, err, colors.ErrInvalidColor)
	})
}

func TestContrastingColorMovesAwayFromThreshold(t *testing.T) {
	for r := 0; r < 256; r += 51 {
		for g := 0; g < 256; g += 51 {
			for b := 0; b < 256; b += 51 {
				in := fmt.Sprintf("#%02x%02x%02x", r, g, b)
				before, err := colors.HexToHSL(in)
				require.NoError(t, err)
				got, err := colors.ContrastingColor(in)
				require.NoError(t, err)
				after, err := colors.HexToHSL(got)
				require.NoError(t, err)

				if before.L > colors.LightnessThreshold {
					assert.Less(t, after.L, before.L, "%s should darken", in)
				} else if before.L < 99 {
					assert.Greater(t, after.L, before.L, "%s should lighten", in)
				}
			}
		}
	}
}
