package probe

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
)

// CPUSource reports total CPU utilization in percent since the previous
// sample.
type CPUSource struct{}

func (CPUSource) Name() string { return nameCPU }

func (CPUSource) Sample(ctx context.Context) (float64, error) {
	pct, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, err
	}
	if len(pct) == 0 {
		return 0, fmt.Errorf("cpu: no samples")
	}
	return pct[0], nil
}

func (CPUSource) Format(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
