package trend

// DefaultFlattenSteps is the number of chords used per cubic curve.
const DefaultFlattenSteps = 64

// Metrics measures a path. It stands in for the geometry queries a drawing
// surface would offer, so marker placement works without one.
type Metrics interface {
	// Length returns the total arc length of p.
	Length(p Path) float64
	// PointAtLength returns the point at distance d along p, clamped to its ends.
	PointAtLength(p Path, d float64) Point
}

// FlattenMetrics measures paths by flattening curves into Steps chords.
// Lines are measured exactly.
type FlattenMetrics struct {
	Steps int
}

type segment struct {
	a, b Point
	l    float64
}

func (m FlattenMetrics) steps() int {
	if m.Steps <= 0 {
		return DefaultFlattenSteps
	}
	return m.Steps
}

func (m FlattenMetrics) segments(p Path) (segs []segment, start Point) {
	if p.IsEmpty() {
		return nil, Point{}
	}
	start = p.cmds[0].To
	cur := start
	n := m.steps()
	for _, c := range p.cmds {
		switch c.Verb {
		case MoveTo:
			cur = c.To
		case LineTo:
			segs = append(segs, segment{a: cur, b: c.To, l: dist(cur, c.To)})
			cur = c.To
		case CurveTo:
			prev := cur
			for i := 1; i <= n; i++ {
				next := cubic(cur, c.C1, c.C2, c.To, float64(i)/float64(n))
				if i == n {
					next = c.To
				}
				segs = append(segs, segment{a: prev, b: next, l: dist(prev, next)})
				prev = next
			}
			cur = c.To
		}
	}
	return segs, start
}

func (m FlattenMetrics) Length(p Path) float64 {
	segs, _ := m.segments(p)
	var total float64
	for _, s := range segs {
		total += s.l
	}
	return total
}

func (m FlattenMetrics) PointAtLength(p Path, d float64) Point {
	segs, start := m.segments(p)
	if len(segs) == 0 || d <= 0 {
		return start
	}
	for _, s := range segs {
		if d <= s.l {
			if s.l == 0 {
				return s.b
			}
			t := d / s.l
			return Point{
				X: s.a.X + (s.b.X-s.a.X)*t,
				Y: s.a.Y + (s.b.Y-s.a.Y)*t,
			}
		}
		d -= s.l
	}
	return segs[len(segs)-1].b
}

func cubic(p0, p1, p2, p3 Point, t float64) Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}
