// Package probe samples live host metrics to feed a trend.
package probe

import (
	"context"
	"fmt"
)

// Source samples one live metric the demo shell can plot.
type Source interface {
	Name() string
	Sample(ctx context.Context) (float64, error)
	// Format renders a sampled value for display.
	Format(v float64) string
}

const (
	nameStatic = "static"
	nameCPU    = "cpu"
	nameNet    = "net"
	nameConns  = "conns"
)

// NewSource returns the sampler registered under name. The static source
// has no sampler and yields nil.
func NewSource(name string) (Source, error) {
	switch name {
	case "", nameStatic:
		return nil, nil
	case nameCPU:
		return CPUSource{}, nil
	case nameNet:
		return NewNetSource(), nil
	case nameConns:
		return ConnSource{Kind: "inet"}, nil
	default:
		return nil, fmt.Errorf("unknown source %q", name)
	}
}
