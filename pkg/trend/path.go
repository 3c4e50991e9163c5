package trend

import (
	"math"
	"strconv"
	"strings"
)

// DefaultRadius bounds the smoothing handles when none is configured.
const DefaultRadius = 10

// Verb is a path drawing command.
type Verb byte

const (
	MoveTo  Verb = 'M'
	LineTo  Verb = 'L'
	CurveTo Verb = 'C'
)

// Command is one drawing step. C1 and C2 are only meaningful for CurveTo.
type Command struct {
	Verb   Verb
	C1, C2 Point
	To     Point
}

// Path is an immutable sequence of drawing commands.
type Path struct {
	cmds []Command
}

// NewPath copies cmds into a Path.
func NewPath(cmds []Command) Path {
	return Path{cmds: append([]Command(nil), cmds...)}
}

func (p Path) Len() int { return len(p.cmds) }

func (p Path) IsEmpty() bool { return len(p.cmds) == 0 }

// At returns the i-th command.
func (p Path) At(i int) Command { return p.cmds[i] }

// Commands returns a copy of the commands.
func (p Path) Commands() []Command {
	return append([]Command(nil), p.cmds...)
}

// Vertices returns the end point of every command, which for paths built
// here are exactly the input points.
func (p Path) Vertices() []Point {
	out := make([]Point, len(p.cmds))
	for i, c := range p.cmds {
		out[i] = c.To
	}
	return out
}

// String returns SVG path data.
func (p Path) String() string {
	var b strings.Builder
	for i, c := range p.cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(byte(c.Verb))
		b.WriteByte(' ')
		if c.Verb == CurveTo {
			writePoint(&b, c.C1)
			b.WriteByte(' ')
			writePoint(&b, c.C2)
			b.WriteByte(' ')
		}
		writePoint(&b, c.To)
	}
	return b.String()
}

func writePoint(b *strings.Builder, p Point) {
	b.WriteString(FormatFloat(p.X))
	b.WriteByte(',')
	b.WriteString(FormatFloat(p.Y))
}

// FormatFloat prints v with at most three decimals, as used in SVG attributes.
func FormatFloat(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		// avoid "-0"
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Builder turns normalized points into a path.
type Builder interface {
	Build(points []Point) Path
}

// Linear joins points with straight segments.
type Linear struct{}

func (Linear) Build(points []Point) Path { return LinearPath(points) }

// Smooth joins points with cubic curves whose handles are at most Radius long.
type Smooth struct {
	Radius float64
}

func (s Smooth) Build(points []Point) Path { return SmoothPath(points, s.Radius) }

// LinearPath emits a move to the first point and a line to every other one.
func LinearPath(points []Point) Path {
	if len(points) == 0 {
		return Path{}
	}
	cmds := make([]Command, 0, len(points))
	cmds = append(cmds, Command{Verb: MoveTo, To: points[0]})
	for _, p := range points[1:] {
		cmds = append(cmds, Command{Verb: LineTo, To: p})
	}
	return Path{cmds: cmds}
}

// SmoothPath emits a move to the first point and one cubic curve per
// consecutive pair. The tangent at a point follows the direction from its
// previous to its next neighbor; the first and last points only have one.
// Handles are min(radius, segment/2) long, so radius 0 draws straight
// segments.
func SmoothPath(points []Point, radius float64) Path {
	n := len(points)
	if n == 0 {
		return Path{}
	}
	if radius < 0 {
		radius = 0
	}

	tangents := make([]Point, n)
	for i := range points {
		prev := points[max(i-1, 0)]
		next := points[min(i+1, n-1)]
		tangents[i] = unit(sub(next, prev))
	}

	cmds := make([]Command, 0, n)
	cmds = append(cmds, Command{Verb: MoveTo, To: points[0]})
	for i := 1; i < n; i++ {
		a, b := points[i-1], points[i]
		h := math.Min(radius, dist(a, b)/2)
		cmds = append(cmds, Command{
			Verb: CurveTo,
			C1:   add(a, mul(tangents[i-1], h)),
			C2:   sub(b, mul(tangents[i], h)),
			To:   b,
		})
	}
	return Path{cmds: cmds}
}

func add(a, b Point) Point { return Point{a.X + b.X, a.Y + b.Y} }

func sub(a, b Point) Point { return Point{a.X - b.X, a.Y - b.Y} }

func mul(a Point, k float64) Point { return Point{a.X * k, a.Y * k} }

func dist(a, b Point) float64 { return math.Hypot(b.X-a.X, b.Y-a.Y) }

func unit(v Point) Point {
	l := math.Hypot(v.X, v.Y)
	if l == 0 {
		return Point{}
	}
	return Point{v.X / l, v.Y / l}
}
