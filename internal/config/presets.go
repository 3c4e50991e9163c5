package config

import (
	"slices"

	"github.com/nexusriot/ducktrend/pkg/trend"
)

// GradientPreset is a named palette. A single color paints a solid stroke.
type GradientPreset struct {
	Name   string
	Colors []string
}

// Apply sets the palette on cfg.
func (p GradientPreset) Apply(cfg *Config) {
	if len(p.Colors) == 1 {
		cfg.Stroke = p.Colors[0]
		cfg.Gradient = nil
		return
	}
	cfg.Gradient = slices.Clone(p.Colors)
}

var Gradients = []GradientPreset{
	{"charcoal", []string{"#222"}},
	{"sky", []string{"#42b3f4"}},
	{"traffic", []string{"red", "blue", "green"}},
	{"plum", []string{"purple", "violet"}},
	{"neon", []string{"#00c6ff", "#F0F", "#FF0"}},
	{"sunset", []string{"#f72047", "#ffd200", "#1feaea"}},
}

var Linecaps = []string{"butt", "round", "square"}

// Easings are the auto-draw timing keywords the demo cycles through.
var Easings = trend.Easings

const (
	SourceStatic = "static"
	SourceCPU    = "cpu"
	SourceNet    = "net"
	SourceConns  = "conns"
)

var Sources = []string{SourceStatic, SourceCPU, SourceNet, SourceConns}

// Policies lists marker policy names.
var Policies = trend.Policies

// GradientIndex returns the preset matching cfg, or -1.
func GradientIndex(cfg Config) int {
	for i, p := range Gradients {
		if len(p.Colors) == 1 {
			if len(cfg.Gradient) == 0 && cfg.Stroke == p.Colors[0] {
				return i
			}
			continue
		}
		if slices.Equal(p.Colors, cfg.Gradient) {
			return i
		}
	}
	return -1
}

// Cycle steps through list by delta starting at cur, wrapping around.
// An unknown cur starts from the first entry.
func Cycle(list []string, cur string, delta int) string {
	if len(list) == 0 {
		return cur
	}
	i := slices.Index(list, cur)
	if i < 0 {
		return list[0]
	}
	n := len(list)
	return list[((i+delta)%n+n)%n]
}
