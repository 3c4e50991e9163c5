package trend

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Stop is one color stop of a linear gradient.
type Stop struct {
	// Offset is a percentage in [0, 100].
	Offset float64
	Color  string
}

// Gradient is the list of colors a trend line is painted with.
type Gradient []string

// Validate requires 2 or 3 valid colors.
func (g Gradient) Validate() error {
	if len(g) != 2 && len(g) != 3 {
		return NewOptionError("gradient", fmt.Errorf("%w, got %d", ErrGradientStops, len(g)))
	}
	for _, c := range g {
		if _, err := ParseColor(c); err != nil {
			return NewOptionError("gradient", err)
		}
	}
	return nil
}

// Stops expands the gradient. Three colors become three equal bands with
// hard edges at 33% and 67%; two colors become a single ramp through their
// HCL midpoint.
func (g Gradient) Stops() ([]Stop, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if len(g) == 3 {
		return []Stop{
			{0, g[0]}, {33, g[0]},
			{33, g[1]}, {67, g[1]},
			{67, g[2]}, {100, g[2]},
		}, nil
	}
	a, _ := ParseColor(g[0])
	b, _ := ParseColor(g[1])
	return []Stop{
		{0, g[0]},
		{50, a.BlendHcl(b, 0.5).Clamped().Hex()},
		{100, g[1]},
	}, nil
}

// ParseColor accepts #rgb, #rrggbb and W3C color names.
func ParseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(strings.ToLower(s))
		if err != nil {
			return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return c, nil
	}
	r, g, b := tcell.GetColor(strings.ToLower(s)).RGB()
	if r < 0 {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}, nil
}

// HexColor normalizes any accepted color to #rrggbb.
func HexColor(s string) (string, error) {
	c, err := ParseColor(s)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}
