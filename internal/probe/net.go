package probe

import (
	"context"
	"sort"
	"time"

	"github.com/shirou/gopsutil/v4/host"
	gnet "github.com/shirou/gopsutil/v4/net"
)

// IfaceRate is the throughput of one interface between two samples.
type IfaceRate struct {
	Name  string
	Kind  IfaceKind
	RxBps float64
	TxBps float64
}

// NetSnapshot is one sample of every interface.
type NetSnapshot struct {
	Ifaces  []IfaceRate
	TakenAt time.Time
}

// Total sums receive and transmit rates over physical interfaces, falling
// back to every non-loopback interface when none is physical.
func (s NetSnapshot) Total() float64 {
	var phys, other float64
	seenPhys := false
	for _, i := range s.Ifaces {
		switch i.Kind {
		case IfacePhysical:
			seenPhys = true
			phys += i.RxBps + i.TxBps
		case IfaceLoopback:
		default:
			other += i.RxBps + i.TxBps
		}
	}
	if seenPhys {
		return phys
	}
	return other
}

// keep last totals to compute deltas
type NetSampler struct {
	counters func(ctx context.Context) ([]gnet.IOCountersStat, error)
	now      func() time.Time

	last   map[string]gnet.IOCountersStat
	lastAt time.Time
}

func NewNetSampler() *NetSampler {
	return &NetSampler{
		counters: func(ctx context.Context) ([]gnet.IOCountersStat, error) {
			return gnet.IOCountersWithContext(ctx, true)
		},
		now:  time.Now,
		last: map[string]gnet.IOCountersStat{},
	}
}

// Sample reads the byte counters. The first sample has no previous one to
// compare with and reports zero rates.
func (s *NetSampler) Sample(ctx context.Context) (NetSnapshot, error) {
	now := s.now()
	counters, err := s.counters(ctx)
	if err != nil {
		return NetSnapshot{}, err
	}

	dt := now.Sub(s.lastAt).Seconds()
	if dt <= 0 {
		dt = 1
	}

	cur := make(map[string]gnet.IOCountersStat, len(counters))
	out := make([]IfaceRate, 0, len(counters))
	for _, c := range counters {
		cur[c.Name] = c
		r := IfaceRate{Name: c.Name, Kind: ClassifyIface(c.Name)}
		// counters that went backwards were reset; skip that interval
		if prev, ok := s.last[c.Name]; ok && c.BytesRecv >= prev.BytesRecv && c.BytesSent >= prev.BytesSent {
			r.RxBps = float64(c.BytesRecv-prev.BytesRecv) / dt
			r.TxBps = float64(c.BytesSent-prev.BytesSent) / dt
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	s.last = cur
	s.lastAt = now

	return NetSnapshot{Ifaces: out, TakenAt: now}, nil
}

// NetSource reports total network throughput in bytes per second.
type NetSource struct {
	sampler *NetSampler
}

func NewNetSource() *NetSource {
	return &NetSource{sampler: NewNetSampler()}
}

func (*NetSource) Name() string { return nameNet }

func (n *NetSource) Sample(ctx context.Context) (float64, error) {
	snap, err := n.sampler.Sample(ctx)
	if err != nil {
		return 0, err
	}
	return snap.Total(), nil
}

func (*NetSource) Format(v float64) string {
	return HumanBytesPerSec(v)
}

// Hostname returns the host name, or "" when it cannot be read.
func Hostname(ctx context.Context) string {
	hi, err := host.InfoWithContext(ctx)
	if err != nil || hi == nil {
		return ""
	}
	return hi.Hostname
}
