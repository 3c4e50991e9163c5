// Package trend holds the geometry behind sparkline trend charts: data
// normalization, path building, path metrics, marker placement, gradient
// stops and the auto-draw animation.
package trend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DataPoint is a single value of a trend, optionally labeled.
// It decodes from either a bare number or an object with a value.
type DataPoint struct {
	// Value is the numeric value plotted.
	Value float64 `json:"value" yaml:"value"`
	// Label is an optional name for the point.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Number returns an unlabeled data point.
func Number(v float64) DataPoint {
	return DataPoint{Value: v}
}

// Numbers converts plain values into data points.
func Numbers(vs ...float64) []DataPoint {
	out := make([]DataPoint, len(vs))
	for i, v := range vs {
		out[i] = Number(v)
	}
	return out
}

// Values returns the plain values of points, in input order.
func Values(points []DataPoint) []float64 {
	out := make([]float64, len(points))
	for i := range points {
		out[i] = points[i].Value
	}
	return out
}

// ValidateData rejects NaN and infinite values.
func ValidateData(points []DataPoint) error {
	for i, p := range points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return fmt.Errorf("%w: index %d is %v", ErrInvalidData, i, p.Value)
		}
	}
	return nil
}

// ParseData parses a comma separated list such as "1, 2.5, mon=3".
// An item of the form label=value produces a labeled point.
func ParseData(s string) ([]DataPoint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]DataPoint, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var p DataPoint
		raw := part
		if label, value, ok := strings.Cut(part, "="); ok {
			p.Label = strings.TrimSpace(label)
			raw = strings.TrimSpace(value)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidData, part)
		}
		p.Value = v
		out = append(out, p)
	}
	return out, nil
}

// FormatData is the inverse of ParseData.
func FormatData(points []DataPoint) string {
	parts := make([]string, len(points))
	for i, p := range points {
		v := strconv.FormatFloat(p.Value, 'g', -1, 64)
		if p.Label != "" {
			v = p.Label + "=" + v
		}
		parts[i] = v
	}
	return strings.Join(parts, ",")
}

func (p *DataPoint) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		type plain DataPoint
		var v plain
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*p = DataPoint(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidData, b)
	}
	*p = DataPoint{Value: v}
	return nil
}

func (p DataPoint) MarshalJSON() ([]byte, error) {
	if p.Label == "" {
		return json.Marshal(p.Value)
	}
	type plain DataPoint
	return json.Marshal(plain(p))
}

func (p *DataPoint) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.MappingNode {
		type plain DataPoint
		var v plain
		if err := n.Decode(&v); err != nil {
			return err
		}
		*p = DataPoint(v)
		return nil
	}
	var v float64
	if err := n.Decode(&v); err != nil {
		return fmt.Errorf("%w: line %d: %q", ErrInvalidData, n.Line, n.Value)
	}
	*p = DataPoint{Value: v}
	return nil
}

func (p DataPoint) MarshalYAML() (interface{}, error) {
	if p.Label == "" {
		return p.Value, nil
	}
	type plain DataPoint
	return plain(p), nil
}
