// Package config holds the demo configuration: what to draw, how, and where
// the result goes. It is read from and written to YAML.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nexusriot/ducktrend/pkg/trend"
	"github.com/nexusriot/ducktrend/pkg/trend/chart"
)

var (
	ErrInvalidLinecap = errors.New("unknown stroke linecap")
	ErrUnknownSource  = errors.New("unknown data source")
)

// demoScore is the score the demo page has always shown.
const demoScore = (2.2 - 3) / 0.2

type AutoDraw struct {
	Enabled  bool          `yaml:"enabled" json:"enabled"`
	Duration time.Duration `yaml:"duration" json:"duration"`
	Easing   string        `yaml:"easing" json:"easing"`
}

type Marker struct {
	Policy string             `yaml:"policy" json:"policy"`
	Radius float64            `yaml:"radius" json:"radius"`
	Colors trend.MarkerColors `yaml:"colors" json:"colors"`
}

type Config struct {
	Data    []trend.DataPoint `yaml:"data" json:"data"`
	Smooth  bool              `yaml:"smooth" json:"smooth"`
	Radius  float64           `yaml:"radius" json:"radius"`
	Width   float64           `yaml:"width,omitempty" json:"width,omitempty"`
	Height  float64           `yaml:"height,omitempty" json:"height,omitempty"`
	Padding float64           `yaml:"padding" json:"padding"`
	// Score is in standard deviations from the mean; nil draws no marker.
	Score    *float64 `yaml:"score,omitempty" json:"score,omitempty"`
	Gradient []string `yaml:"gradient,omitempty" json:"gradient,omitempty"`

	Stroke        string  `yaml:"stroke" json:"stroke"`
	StrokeWidth   float64 `yaml:"stroke_width" json:"stroke_width"`
	StrokeLinecap string  `yaml:"stroke_linecap" json:"stroke_linecap"`

	AutoDraw AutoDraw `yaml:"auto_draw" json:"auto_draw"`
	Marker   Marker   `yaml:"marker" json:"marker"`
	Minify   bool     `yaml:"minify" json:"minify"`
	ID       string   `yaml:"id,omitempty" json:"id,omitempty"`

	// Output is where the demo shell saves the SVG.
	Output string `yaml:"output" json:"output"`
	// Source selects static data or a live probe.
	Source string `yaml:"source" json:"source"`
	Listen string `yaml:"listen" json:"listen"`
}

// Default returns the demo configuration.
func Default() Config {
	score := float64(demoScore)
	return Config{
		Data:          Placeholder(),
		Smooth:        true,
		Radius:        trend.DefaultRadius,
		Padding:       trend.DefaultPadding,
		Score:         &score,
		Gradient:      []string{"red", "blue", "green"},
		Stroke:        "black",
		StrokeWidth:   2,
		StrokeLinecap: Linecaps[0],
		AutoDraw: AutoDraw{
			Enabled:  true,
			Duration: 3 * time.Second,
			Easing:   "ease-out",
		},
		Marker: Marker{
			Policy: trend.Policies[0],
			Radius: chart.DefaultMarkerRadius,
			Colors: trend.DefaultMarkerColors(),
		},
		Output: "trend.svg",
		Source: SourceStatic,
		Listen: ":8080",
	}
}

// Placeholder is the symmetric eight point sample the demo starts with:
// narrow gaussian samples mirrored around the middle.
func Placeholder() []trend.DataPoint {
	var curve []float64
	for curr := 1; curr <= 4; curr++ {
		z := (3 - float64(curr)) / 0.2
		v := math.Exp(-0.5*z*z) / math.Sqrt(2*math.Pi)
		curve = append([]float64{v}, curve...)
		curve = append(curve, v)
	}
	return trend.Numbers(curve...)
}

// Load overlays the YAML file at path on the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays a YAML or JSON document on cfg.
func Decode(b []byte, cfg *Config) error {
	return yaml.Unmarshal(b, cfg)
}

func (c Config) Save(path string) error {
	b, err := c.YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c Config) YAML() ([]byte, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return b, nil
}

// Validate reports the first configuration error.
func (c Config) Validate() error {
	_, err := c.ChartOptions()
	return err
}

// ChartOptions converts the configuration into renderer options.
func (c Config) ChartOptions() (chart.Options, error) {
	if c.StrokeLinecap != "" && !slices.Contains(Linecaps, c.StrokeLinecap) {
		return chart.Options{}, trend.NewOptionError("stroke_linecap",
			fmt.Errorf("%w: %q", ErrInvalidLinecap, c.StrokeLinecap))
	}
	if c.Stroke != "" {
		if _, err := trend.ParseColor(c.Stroke); err != nil {
			return chart.Options{}, trend.NewOptionError("stroke", err)
		}
	}
	if c.StrokeWidth < 0 {
		return chart.Options{}, trend.NewOptionError("stroke_width", trend.ErrInvalidDimension)
	}
	if c.Source != "" && !slices.Contains(Sources, c.Source) {
		return chart.Options{}, trend.NewOptionError("source",
			fmt.Errorf("%w: %q", ErrUnknownSource, c.Source))
	}
	policy, err := trend.ParsePolicy(c.Marker.Policy)
	if err != nil {
		return chart.Options{}, trend.NewOptionError("marker.policy", err)
	}

	o := chart.DefaultOptions()
	o.Data = c.Data
	o.Smooth = c.Smooth
	o.Radius = c.Radius
	o.Width = c.Width
	o.Height = c.Height
	o.Padding = c.Padding
	if c.Score != nil {
		s := *c.Score
		o.Score = &s
	}
	o.Gradient = c.Gradient
	o.AutoDraw = c.AutoDraw.Enabled
	o.AutoDrawDuration = c.AutoDraw.Duration
	o.AutoDrawEasing = c.AutoDraw.Easing
	o.MarkerPolicy = policy
	o.MarkerColors = c.Marker.Colors
	o.MarkerRadius = c.Marker.Radius
	o.Minify = c.Minify
	o.ID = c.ID

	if c.Stroke != "" {
		o.Attrs["stroke"] = c.Stroke
	}
	if c.StrokeWidth > 0 {
		o.Attrs["stroke-width"] = trend.FormatFloat(c.StrokeWidth)
	}
	if c.StrokeLinecap != "" {
		o.Attrs["stroke-linecap"] = c.StrokeLinecap
	}
	if err := o.Validate(); err != nil {
		return o, err
	}
	return o, nil
}

// IsConfigError reports whether err is the caller's fault rather than a
// failure while rendering.
func IsConfigError(err error) bool {
	var oe *trend.OptionError
	return errors.As(err, &oe) || errors.Is(err, trend.ErrInvalidData)
}

// ChartBox is the padded drawing area of the rendered chart.
func (c Config) ChartBox() trend.Box {
	return trend.ViewBox{Width: c.Width, Height: c.Height, Padding: c.Padding}.Box()
}

// Values returns the data as plain numbers.
func (c Config) Values() []float64 {
	return trend.Values(c.Data)
}

func (c Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d points", len(c.Data))
	if c.Smooth {
		fmt.Fprintf(&b, ", smooth r=%s", trend.FormatFloat(c.Radius))
	}
	if len(c.Gradient) > 0 {
		fmt.Fprintf(&b, ", gradient %s", strings.Join(c.Gradient, "/"))
	}
	if c.Score != nil {
		fmt.Fprintf(&b, ", score %s", trend.FormatFloat(*c.Score))
	}
	return b.String()
}
