package chart

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nexusriot/ducktrend/pkg/trend"
)

func score(v float64) *float64 { return &v }

func options(values ...float64) Options {
	o := DefaultOptions()
	o.Data = trend.Numbers(values...)
	o.ID = "t"
	return o
}

func TestRenderLinear(t *testing.T) {
	svg, err := mustChart(t, options(0, 1, 0)).SVG()
	require.NoError(t, err)
	require.Equal(t, `<svg xmlns="http://www.w3.org/2000/svg" width="100%" height="25%" viewBox="0 0 300 75" stroke="black" stroke-width="1">`+
		`<path id="ducktrend-t" d="M 8,67 L 150,8 L 292,67" fill="none"></path></svg>`, svg)
}

func TestRenderDimensions(t *testing.T) {
	o := options(1, 2)
	o.Width = 120
	o.Height = 40
	o.Padding = 0
	c := mustChart(t, o)
	svg, err := c.SVG()
	require.NoError(t, err)
	require.Contains(t, svg, `width="120" height="40" viewBox="0 0 120 40"`)
	require.Equal(t, []trend.Point{{X: 0, Y: 40}, {X: 120, Y: 0}}, c.Points())
}

func TestRenderEmpty(t *testing.T) {
	for _, values := range [][]float64{nil, {4}} {
		c := mustChart(t, options(values...))
		require.True(t, c.Empty())
		require.Nil(t, c.Node())
		svg, err := c.SVG()
		require.NoError(t, err)
		require.Empty(t, svg)
	}
}

func TestRenderSmooth(t *testing.T) {
	o := options(1, 5, 2, 8)
	o.Smooth = true
	c := mustChart(t, o)
	require.Equal(t, trend.CurveTo, c.Path().At(1).Verb)
	require.Equal(t, c.Points(), c.Path().Vertices())

	svg, err := c.SVG()
	require.NoError(t, err)
	require.Contains(t, svg, `d="M 8,67 C `)
}

func TestRenderGradient(t *testing.T) {
	o := options(1, 2, 3)
	o.Gradient = []string{"red", "blue", "green"}
	svg, err := mustChart(t, o).SVG()
	require.NoError(t, err)
	require.Contains(t, svg, `<defs><linearGradient id="ducktrend-gradient-t" x1="0%" y1="0%" x2="100%" y2="0%">`)
	require.Contains(t, svg, `<stop offset="0%" stop-color="red"></stop><stop offset="33%" stop-color="red"></stop>`)
	require.Contains(t, svg, `<stop offset="67%" stop-color="green"></stop><stop offset="100%" stop-color="green"></stop>`)
	require.Contains(t, svg, `fill="none" stroke="url(#ducktrend-gradient-t)"></path>`)
	require.Equal(t, 6, strings.Count(svg, "<stop "))
}

func TestRenderAttrs(t *testing.T) {
	o := options(1, 2)
	o.Attrs = map[string]string{
		"stroke-linecap": "round",
		"data-x":         "1",
		"width":          "999",
		"height":         "777",
		"viewBox":        "0 0 1 1",
		"xmlns":          "urn:x",
	}
	svg, err := mustChart(t, o).SVG()
	require.NoError(t, err)
	require.Contains(t, svg, `viewBox="0 0 300 75" data-x="1" stroke="black" stroke-linecap="round" stroke-width="1">`)
	require.NotContains(t, svg, "999")
	require.NotContains(t, svg, "777")
	require.NotContains(t, svg, "urn:x")
	require.Equal(t, 1, strings.Count(svg, "viewBox"))
	require.Equal(t, 1, strings.Count(svg, "xmlns"))
	require.Contains(t, svg, `<path id="ducktrend-t" d="M 8,67 L 292,8" fill="none">`)
}

func TestRenderMarker(t *testing.T) {
	o := options(0, 1)
	o.Score = score(0)
	o.Attrs["stroke-width"] = "2"
	c := mustChart(t, o)
	m, ok := c.Marker()
	require.True(t, ok)
	require.Equal(t, trend.BandMid, m.Band)

	svg, err := c.SVG()
	require.NoError(t, err)
	require.Contains(t, svg, `<g><circle id="ducktrend-t-score" class="ducktrend-score" cx="150" cy="37.5" r="5" stroke-width="2" fill="#fff" stroke="blue"></circle></g>`)

	o.Score = score(-4)
	svg, err = mustChart(t, o).SVG()
	require.NoError(t, err)
	require.Contains(t, svg, `cx="8" cy="67"`)
	require.Contains(t, svg, `stroke="red"></circle>`)
}

func TestRenderMarkerSuppressed(t *testing.T) {
	for _, s := range []*float64{nil, score(math.NaN()), score(math.Inf(1))} {
		o := options(1, 2, 3)
		o.Score = s
		c := mustChart(t, o)
		_, ok := c.Marker()
		require.False(t, ok)
		svg, err := c.SVG()
		require.NoError(t, err)
		require.NotContains(t, svg, "<circle")
	}
}

func TestRenderRankMarker(t *testing.T) {
	o := options(5, 1, 9)
	o.Score = score(4)
	o.MarkerPolicy = trend.RankPolicy{}
	c := mustChart(t, o)
	m, ok := c.Marker()
	require.True(t, ok)
	require.Equal(t, c.Points()[0], m.Point)
}

func TestAutoDrawEmbedded(t *testing.T) {
	o := options(1, 3, 2)
	o.AutoDraw = true
	o.AutoDrawDuration = 3 * time.Second
	o.AutoDrawEasing = "ease-out"
	c := mustChart(t, o)

	svg, err := c.SVG()
	require.NoError(t, err)
	require.Contains(t, svg, "<style>@keyframes ducktrend-autodraw-t {")
	require.Contains(t, svg, "3000ms ease-out")
	require.Equal(t, c.CSS(), trend.AutoDraw{LineLength: c.Length(), Duration: 3 * time.Second, Easing: "ease-out"}.CSS("t"))

	c.Close()
	c.Close()
	require.Empty(t, c.CSS())
}

func TestAutoDrawSharedSheet(t *testing.T) {
	sheet := trend.NewStyleSheet()
	a := options(1, 2)
	a.ID = "a"
	a.AutoDraw = true
	a.Styles = sheet
	b := a
	b.ID = "b"

	ca, cb := mustChart(t, a), mustChart(t, b)
	require.Equal(t, 2, sheet.Len())
	require.Contains(t, sheet.String(), "#ducktrend-a {")
	require.Contains(t, sheet.String(), "#ducktrend-b {")

	svg, err := ca.SVG()
	require.NoError(t, err)
	require.NotContains(t, svg, "<style>")

	ca.Close()
	require.Equal(t, 1, sheet.Len())
	require.NotContains(t, sheet.String(), "#ducktrend-a {")
	require.NotContains(t, sheet.String(), "ducktrend-autodraw-a ")
	require.Contains(t, sheet.String(), "#ducktrend-b {")
	cb.Close()
	require.Zero(t, sheet.Len())
}

func TestAutoDrawSameIDOnSheet(t *testing.T) {
	sheet := trend.NewStyleSheet()
	o := options(1, 2)
	o.ID = "dup"
	o.AutoDraw = true
	o.Styles = sheet

	first, second := mustChart(t, o), mustChart(t, o)
	require.Equal(t, 1, sheet.Len())

	first.Close()
	require.Contains(t, sheet.String(), "#ducktrend-dup {")
	require.Equal(t, second.CSS(), sheet.String())

	second.Close()
	require.Zero(t, sheet.Len())
}

func TestNoAutoDraw(t *testing.T) {
	c := mustChart(t, options(1, 2))
	require.Empty(t, c.CSS())
	c.Close()
}

func TestRandomID(t *testing.T) {
	o := options(1, 2)
	o.ID = ""
	a, b := mustChart(t, o), mustChart(t, o)
	require.NotEqual(t, a.ID(), b.ID())
	_, err := uuid.Parse(a.ID())
	require.NoError(t, err)
}

func TestRenderDeterministic(t *testing.T) {
	o := options(3, 1, 4, 1, 5)
	o.Smooth = true
	o.Gradient = []string{"#f72047", "#1feaea"}
	o.Score = score(1)
	o.AutoDraw = true
	first, err := mustChart(t, o).SVG()
	require.NoError(t, err)
	second, err := mustChart(t, o).SVG()
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRenderMinify(t *testing.T) {
	o := options(3, 1, 4, 1, 5)
	o.Score = score(0)
	o.AutoDraw = true
	plain, err := mustChart(t, o).SVG()
	require.NoError(t, err)

	o.Minify = true
	var b bytes.Buffer
	require.NoError(t, Render(&b, o))
	require.True(t, strings.HasPrefix(b.String(), "<svg"))
	require.Contains(t, b.String(), "<path")
	require.Contains(t, b.String(), "<circle")
	require.Less(t, b.Len(), len(plain))
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		option string
		err    error
	}{
		{"nan", func(o *Options) { o.Data = trend.Numbers(1, math.NaN()) }, "data", trend.ErrInvalidData},
		{"width", func(o *Options) { o.Width = -1 }, "width", trend.ErrInvalidDimension},
		{"padding", func(o *Options) { o.Padding = 40 }, "padding", trend.ErrInvalidDimension},
		{"radius", func(o *Options) { o.Radius = -1 }, "radius", trend.ErrInvalidRadius},
		{"marker radius", func(o *Options) { o.MarkerRadius = -2 }, "marker.radius", trend.ErrInvalidDimension},
		{"gradient stops", func(o *Options) { o.Gradient = []string{"#222"} }, "gradient", trend.ErrGradientStops},
		{"gradient color", func(o *Options) { o.Gradient = []string{"#222", "nope"} }, "gradient", trend.ErrInvalidColor},
		{"marker color", func(o *Options) { o.MarkerColors.High = "nope" }, "marker.colors", trend.ErrInvalidColor},
		{"duration", func(o *Options) { o.AutoDraw = true; o.AutoDrawDuration = 0 }, "auto_draw.duration", trend.ErrInvalidAnimation},
		{"easing", func(o *Options) { o.AutoDraw = true; o.AutoDrawEasing = "" }, "auto_draw.easing", trend.ErrInvalidAnimation},
		{"id", func(o *Options) { o.ID = "a b" }, "id", trend.ErrInvalidID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := options(1, 2)
			tt.modify(&o)
			_, err := New(o)
			require.ErrorIs(t, err, tt.err)
			var oe *trend.OptionError
			require.ErrorAs(t, err, &oe)
			require.Equal(t, tt.option, oe.Option)
		})
	}

	// an invalid duration only matters when auto-draw is on
	o := options(1, 2)
	o.AutoDrawDuration = 0
	_, err := New(o)
	require.NoError(t, err)
}

func mustChart(t *testing.T, o Options) *Chart {
	t.Helper()
	c, err := New(o)
	require.NoError(t, err)
	return c
}
