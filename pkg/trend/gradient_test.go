package trend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGradientThreeStops(t *testing.T) {
	stops, err := Gradient{"red", "blue", "green"}.Stops()
	require.NoError(t, err)
	require.Equal(t, []Stop{
		{0, "red"}, {33, "red"},
		{33, "blue"}, {67, "blue"},
		{67, "green"}, {100, "green"},
	}, stops)
}

func TestGradientTwoStops(t *testing.T) {
	stops, err := Gradient{"#000000", "#ffffff"}.Stops()
	require.NoError(t, err)
	require.Len(t, stops, 3)
	require.Equal(t, Stop{0, "#000000"}, stops[0])
	require.Equal(t, 50.0, stops[1].Offset)
	require.Equal(t, Stop{100, "#ffffff"}, stops[2])

	mid, err := ParseColor(stops[1].Color)
	require.NoError(t, err)
	r, g, b := mid.RGB255()
	require.InDelta(t, float64(r), float64(g), 2)
	require.InDelta(t, float64(g), float64(b), 2)
	require.Greater(t, r, uint8(0))
	require.Less(t, r, uint8(255))
}

func TestGradientValidate(t *testing.T) {
	tests := []struct {
		gradient Gradient
		err      error
	}{
		{Gradient{"#222"}, ErrGradientStops},
		{Gradient{}, ErrGradientStops},
		{Gradient{"red", "blue", "green", "pink"}, ErrGradientStops},
		{Gradient{"red", "notacolor"}, ErrInvalidColor},
		{Gradient{"#12", "red"}, ErrInvalidColor},
		{Gradient{"purple", "violet"}, nil},
		{Gradient{"#00c6ff", "#F0F", "#FF0"}, nil},
		{Gradient{"#f72047", "#ffd200", "#1feaea"}, nil},
	}
	for _, tt := range tests {
		err := tt.gradient.Validate()
		if tt.err == nil {
			require.NoError(t, err, "%v", tt.gradient)
			continue
		}
		require.ErrorIs(t, err, tt.err, "%v", tt.gradient)
		var oe *OptionError
		require.ErrorAs(t, err, &oe)
		require.Equal(t, "gradient", oe.Option)
	}
}

func TestHexColor(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"red", "#ff0000"},
		{"Blue", "#0000ff"},
		{"#F0F", "#ff00ff"},
		{"#42b3f4", "#42b3f4"},
	}
	for _, tt := range tests {
		got, err := HexColor(tt.in)
		require.NoError(t, err)
		require.Equal(t, tt.expected, got)
	}
	_, err := HexColor("rgb(1,2,3)")
	require.ErrorIs(t, err, ErrInvalidColor)
}
