package trend

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Band is the color bucket of a marker.
type Band int

const (
	BandLow Band = iota
	BandMid
	BandHigh
)

func (b Band) String() string {
	switch b {
	case BandLow:
		return "low"
	case BandMid:
		return "mid"
	default:
		return "high"
	}
}

// MarkerColors paints each band.
type MarkerColors struct {
	Low  string `json:"low" yaml:"low"`
	Mid  string `json:"mid" yaml:"mid"`
	High string `json:"high" yaml:"high"`
}

// DefaultMarkerColors returns red, blue and green.
func DefaultMarkerColors() MarkerColors {
	return MarkerColors{Low: "red", Mid: "blue", High: "green"}
}

// Color returns the color of band b, falling back to the defaults for
// empty entries.
func (c MarkerColors) Color(b Band) string {
	d := DefaultMarkerColors()
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	switch b {
	case BandLow:
		return pick(c.Low, d.Low)
	case BandMid:
		return pick(c.Mid, d.Mid)
	default:
		return pick(c.High, d.High)
	}
}

// Marker is a located score marker.
type Marker struct {
	Point
	// Distance along the path, for arc-length policies.
	Distance float64
	Band     Band
	Color    string
}

// MarkerInput is everything a policy may look at.
type MarkerInput struct {
	Path    Path
	Points  []Point
	Values  []float64
	Metrics Metrics
	Colors  MarkerColors
}

// MarkerPolicy decides where a score marker goes.
type MarkerPolicy interface {
	// Name identifies the policy in configuration.
	Name() string
	// Locate returns the marker for score, or false when none should be drawn.
	Locate(score float64, in MarkerInput) (Marker, bool)
}

// IsScore reports whether s can place a marker.
func IsScore(s float64) bool {
	return !math.IsNaN(s) && !math.IsInf(s, 0)
}

// ScoreDistance puts the mean at mid-path and one standard deviation at
// an eighth of the length.
func ScoreDistance(length, score float64) float64 {
	return length/2 + score*(length/8)
}

// ScoreBand buckets a score using percent = (score+4)/8*100.
func ScoreBand(score float64) Band {
	percent := (4 + score) / 8 * 100
	switch {
	case percent < 33.3333:
		return BandLow
	case percent < 66.6666:
		return BandMid
	default:
		return BandHigh
	}
}

// StatisticalPolicy places the marker along the arc length of the path.
// Scores outside about [-4, 4] end up clamped to the path ends.
type StatisticalPolicy struct{}

func (StatisticalPolicy) Name() string { return "statistical" }

func (StatisticalPolicy) Locate(score float64, in MarkerInput) (Marker, bool) {
	if !IsScore(score) || in.Path.IsEmpty() {
		return Marker{}, false
	}
	m := in.Metrics
	if m == nil {
		m = FlattenMetrics{}
	}
	length := m.Length(in.Path)
	d := ScoreDistance(length, score)
	band := ScoreBand(score)
	return Marker{
		Point:    m.PointAtLength(in.Path, d),
		Distance: d,
		Band:     band,
		Color:    in.Colors.Color(band),
	}, true
}

// RankPolicy snaps the marker to the lowest-valued point exceeding the
// score, or to the highest point when none does. It ignores smoothing.
type RankPolicy struct{}

func (RankPolicy) Name() string { return "rank" }

func (RankPolicy) Locate(score float64, in MarkerInput) (Marker, bool) {
	n := min(len(in.Points), len(in.Values))
	if !IsScore(score) || n == 0 {
		return Marker{}, false
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return in.Values[idx[a]] < in.Values[idx[b]]
	})
	pick := idx[n-1]
	for _, i := range idx {
		if in.Values[i] > score {
			pick = i
			break
		}
	}
	return Marker{
		Point: in.Points[pick],
		Band:  BandMid,
		Color: in.Colors.Color(BandMid),
	}, true
}

// Policies lists the registered policy names.
var Policies = []string{"statistical", "rank"}

// ParsePolicy returns the policy registered under name. Empty means statistical.
func ParsePolicy(name string) (MarkerPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "statistical":
		return StatisticalPolicy{}, nil
	case "rank":
		return RankPolicy{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}
