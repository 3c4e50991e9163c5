package trend

// Nominal view box size used when a chart has no explicit dimensions.
const (
	DefaultWidth   = 300
	DefaultHeight  = 75
	DefaultPadding = 8
)

// Point is a position in drawing coordinates (y grows downward).
type Point struct {
	X, Y float64
}

// Box bounds the normalized points.
type Box struct {
	MinX, MaxX, MinY, MaxY float64
}

// ViewBox describes the drawing surface.
type ViewBox struct {
	Width, Height float64
	// Padding insets the drawing area on all sides.
	Padding float64
}

// Size returns the effective width and height; zero means nominal.
func (v ViewBox) Size() (w, h float64) {
	w, h = v.Width, v.Height
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}
	return w, h
}

// Box returns the padded drawing area.
func (v ViewBox) Box() Box {
	w, h := v.Size()
	return Box{
		MinX: v.Padding,
		MaxX: w - v.Padding,
		MinY: v.Padding,
		MaxY: h - v.Padding,
	}
}

// Validate rejects negative sizes and paddings that leave no drawing area.
func (v ViewBox) Validate() error {
	if v.Width < 0 {
		return NewOptionError("width", ErrInvalidDimension)
	}
	if v.Height < 0 {
		return NewOptionError("height", ErrInvalidDimension)
	}
	b := v.Box()
	if v.Padding < 0 || b.MaxX < b.MinX || b.MaxY < b.MinY {
		return NewOptionError("padding", ErrInvalidDimension)
	}
	return nil
}

// Normalize maps values into box. The i-th value is spaced linearly between
// MinX and MaxX; the smallest value lands on MaxY and the largest on MinY.
// Flat data collapses onto the vertical midpoint. Empty input yields nil.
func Normalize(values []float64, box Box) []Point {
	n := len(values)
	if n == 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	out := make([]Point, n)
	for i, v := range values {
		out[i] = Point{
			X: box.MinX,
			Y: scale(v, lo, hi, box.MaxY, box.MinY),
		}
		if n > 1 {
			out[i].X = scale(float64(i), 0, float64(n-1), box.MinX, box.MaxX)
		}
	}
	// pin the last x so rounding never pulls it off the edge
	if n > 1 {
		out[n-1].X = box.MaxX
	}
	return out
}

// scale maps v from [min, max] onto [to0, to1]. A degenerate source range
// maps everything to the middle of the target.
func scale(v, min, max, to0, to1 float64) float64 {
	if min == max {
		return (to0 + to1) / 2
	}
	return to0 + (v-min)/(max-min)*(to1-to0)
}
