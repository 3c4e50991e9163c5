// Package chart renders trend lines as SVG documents.
package chart

import (
	"bytes"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/svg"
	"golang.org/x/net/html"

	"github.com/nexusriot/ducktrend/pkg/trend"
)

// MediaType is the content type of rendered charts.
const MediaType = "image/svg+xml"

// DefaultMarkerRadius is the radius of the score circle.
const DefaultMarkerRadius = 5

var minifier = func() *minify.M {
	m := minify.New()
	m.AddFunc(MediaType, svg.Minify)
	m.AddFunc("text/css", css.Minify)
	return m
}()

// Attributes of the <svg> element the renderer owns; delegated attributes
// never override them. Path and marker attributes are never delegated.
var reserved = map[string]bool{
	"xmlns":   true,
	"width":   true,
	"height":  true,
	"viewBox": true,
}

// Options configures a chart. Zero Width and Height fall back to the
// nominal 300x75 view box and a fluid 100% x 25% surface.
type Options struct {
	Data    []trend.DataPoint
	Smooth  bool
	Radius  float64
	Width   float64
	Height  float64
	Padding float64
	// Score places a marker; nil, NaN and infinities draw none.
	Score    *float64
	Gradient []string

	AutoDraw         bool
	AutoDrawDuration time.Duration
	AutoDrawEasing   string

	// MarkerPolicy defaults to trend.StatisticalPolicy.
	MarkerPolicy trend.MarkerPolicy
	MarkerColors trend.MarkerColors
	MarkerRadius float64
	// Metrics defaults to trend.FlattenMetrics.
	Metrics trend.Metrics

	// Attrs are passed through to the <svg> element. stroke and
	// stroke-width default to black and 1.
	Attrs map[string]string
	// ID namespaces element ids and animations. Empty means a random UUID.
	ID string
	// Styles collects auto-draw rules for a whole document. When nil the
	// chart embeds its own <style>.
	Styles *trend.StyleSheet
	Minify bool
}

// DefaultOptions returns the library defaults.
func DefaultOptions() Options {
	return Options{
		Radius:           trend.DefaultRadius,
		Padding:          trend.DefaultPadding,
		AutoDrawDuration: trend.DefaultAutoDrawDuration,
		AutoDrawEasing:   trend.DefaultAutoDrawEasing,
		MarkerColors:     trend.DefaultMarkerColors(),
		MarkerRadius:     DefaultMarkerRadius,
		Attrs: map[string]string{
			"stroke":       "black",
			"stroke-width": "1",
		},
	}
}

// ViewBox returns the drawing surface described by o.
func (o Options) ViewBox() trend.ViewBox {
	return trend.ViewBox{Width: o.Width, Height: o.Height, Padding: o.Padding}
}

// Validate fails fast on configuration errors.
func (o Options) Validate() error {
	if err := trend.ValidateData(o.Data); err != nil {
		return trend.NewOptionError("data", err)
	}
	if err := o.ViewBox().Validate(); err != nil {
		return err
	}
	if o.Radius < 0 {
		return trend.NewOptionError("radius", trend.ErrInvalidRadius)
	}
	if o.MarkerRadius < 0 {
		return trend.NewOptionError("marker.radius", trend.ErrInvalidDimension)
	}
	if len(o.Gradient) > 0 {
		if err := trend.Gradient(o.Gradient).Validate(); err != nil {
			return err
		}
	}
	for _, c := range []string{o.MarkerColors.Low, o.MarkerColors.Mid, o.MarkerColors.High} {
		if c == "" {
			continue
		}
		if _, err := trend.ParseColor(c); err != nil {
			return trend.NewOptionError("marker.colors", err)
		}
	}
	if o.AutoDraw {
		a := trend.AutoDraw{Duration: o.AutoDrawDuration, Easing: o.AutoDrawEasing}
		if err := a.Validate(); err != nil {
			return err
		}
	}
	if !validID(o.ID) {
		return trend.NewOptionError("id", trend.ErrInvalidID)
	}
	return nil
}

func validID(id string) bool {
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

func (o Options) builder() trend.Builder {
	if o.Smooth {
		return trend.Smooth{Radius: o.Radius}
	}
	return trend.Linear{}
}

func (o Options) metrics() trend.Metrics {
	if o.Metrics == nil {
		return trend.FlattenMetrics{}
	}
	return o.Metrics
}

func (o Options) policy() trend.MarkerPolicy {
	if o.MarkerPolicy == nil {
		return trend.StatisticalPolicy{}
	}
	return o.MarkerPolicy
}

// Chart is a trend line derived from one set of options.
type Chart struct {
	opts   Options
	id     string
	values []float64
	points []trend.Point
	path   trend.Path
	length float64
	stops  []trend.Stop
	marker *trend.Marker

	scope *trend.StyleScope
	embed bool
}

// New validates opts and derives the chart geometry. Fewer than two data
// points is not an error: the chart is empty and renders nothing.
func New(opts Options) (*Chart, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	c := &Chart{opts: opts, id: opts.ID}
	if c.id == "" {
		c.id = uuid.NewString()
	}
	if len(opts.Data) < 2 {
		return c, nil
	}

	c.values = trend.Values(opts.Data)
	c.points = trend.Normalize(c.values, opts.ViewBox().Box())
	c.path = opts.builder().Build(c.points)
	c.length = opts.metrics().Length(c.path)

	if len(opts.Gradient) > 0 {
		stops, err := trend.Gradient(opts.Gradient).Stops()
		if err != nil {
			return nil, err
		}
		c.stops = stops
	}

	if opts.Score != nil {
		m, ok := opts.policy().Locate(*opts.Score, trend.MarkerInput{
			Path:    c.path,
			Points:  c.points,
			Values:  c.values,
			Metrics: opts.metrics(),
			Colors:  opts.MarkerColors,
		})
		if ok {
			c.marker = &m
		}
	}

	if opts.AutoDraw {
		sheet := opts.Styles
		if sheet == nil {
			sheet = trend.NewStyleSheet()
			c.embed = true
		}
		c.scope = sheet.Scope(c.id)
		c.scope.Inject(trend.AutoDraw{
			LineLength: c.length,
			Duration:   opts.AutoDrawDuration,
			Easing:     opts.AutoDrawEasing,
		}.CSS(c.id))
	}
	return c, nil
}

func (c *Chart) ID() string { return c.id }

// Empty reports whether there is too little data to draw.
func (c *Chart) Empty() bool { return len(c.points) < 2 }

func (c *Chart) Points() []trend.Point { return append([]trend.Point(nil), c.points...) }

func (c *Chart) Path() trend.Path { return c.path }

// Length is the arc length of the trend line.
func (c *Chart) Length() float64 { return c.length }

func (c *Chart) Stops() []trend.Stop { return append([]trend.Stop(nil), c.stops...) }

func (c *Chart) Marker() (trend.Marker, bool) {
	if c.marker == nil {
		return trend.Marker{}, false
	}
	return *c.marker, true
}

// CSS returns the auto-draw rules of the chart, if any.
func (c *Chart) CSS() string {
	if c.scope == nil {
		return ""
	}
	return c.scope.CSS()
}

// Close releases the chart's style scope.
func (c *Chart) Close() {
	if c.scope != nil {
		c.scope.Release()
		c.scope = nil
	}
}

// Node builds the <svg> element, or returns nil for an empty chart.
func (c *Chart) Node() *html.Node {
	if c.Empty() {
		return nil
	}
	w, h := c.opts.ViewBox().Size()
	width, height := "100%", "25%"
	if c.opts.Width > 0 {
		width = trend.FormatFloat(c.opts.Width)
	}
	if c.opts.Height > 0 {
		height = trend.FormatFloat(c.opts.Height)
	}

	delegated := map[string]string{
		"stroke":       "black",
		"stroke-width": "1",
	}
	for k, v := range c.opts.Attrs {
		if reserved[k] {
			continue
		}
		delegated[k] = v
	}

	root := createSVG("svg", createOptions{
		attr: append([]html.Attribute{
			{Key: "xmlns", Val: svgNamespace},
			{Key: "width", Val: width},
			{Key: "height", Val: height},
			{Key: "viewBox", Val: "0 0 " + trend.FormatFloat(w) + " " + trend.FormatFloat(h)},
		}, attrs(delegated)...),
	})

	if c.embed && c.scope != nil {
		createSVG("style", createOptions{inside: root, text: c.scope.CSS()})
	}

	pathAttr := []html.Attribute{
		{Key: "id", Val: trend.ElementID(c.id)},
		{Key: "d", Val: c.path.String()},
		{Key: "fill", Val: "none"},
	}
	if len(c.stops) > 0 {
		gid := trend.GradientID(c.id)
		defs := createSVG("defs", createOptions{inside: root})
		grad := renderHorizontalGradient(defs, gid)
		for _, s := range c.stops {
			setGradientStop(grad, trend.FormatFloat(s.Offset)+"%", s.Color)
		}
		pathAttr = append(pathAttr, html.Attribute{Key: "stroke", Val: "url(#" + gid + ")"})
	}
	createSVG("path", createOptions{inside: root, attr: pathAttr})

	if c.marker != nil {
		g := createSVG("g", createOptions{inside: root})
		createSVG("circle", createOptions{
			inside: g,
			attr: []html.Attribute{
				{Key: "id", Val: trend.ElementID(c.id) + "-score"},
				{Key: "class", Val: trend.IDPrefix + "-score"},
				{Key: "cx", Val: trend.FormatFloat(c.marker.X)},
				{Key: "cy", Val: trend.FormatFloat(c.marker.Y)},
				{Key: "r", Val: trend.FormatFloat(c.opts.MarkerRadius)},
				{Key: "stroke-width", Val: delegated["stroke-width"]},
				{Key: "fill", Val: "#fff"},
				{Key: "stroke", Val: c.marker.Color},
			},
		})
	}
	return root
}

// Render writes the SVG document to w. Empty charts write nothing.
func (c *Chart) Render(w io.Writer) error {
	n := c.Node()
	if n == nil {
		return nil
	}
	if !c.opts.Minify {
		return html.Render(w, n)
	}
	var b bytes.Buffer
	if err := html.Render(&b, n); err != nil {
		return err
	}
	return minifier.Minify(MediaType, w, &b)
}

// SVG renders the chart into a string.
func (c *Chart) SVG() (string, error) {
	var b bytes.Buffer
	if err := c.Render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Render is a shortcut for New followed by Render and Close.
func Render(w io.Writer, opts Options) error {
	c, err := New(opts)
	if err != nil {
		return err
	}
	defer c.Close()
	return c.Render(w)
}
