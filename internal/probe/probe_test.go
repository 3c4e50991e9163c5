package probe

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	gnet "github.com/shirou/gopsutil/v4/net"
	"github.com/stretchr/testify/require"
)

func TestClassifyIface(t *testing.T) {
	tests := []struct {
		name     string
		expected IfaceKind
	}{
		{"lo", IfaceLoopback},
		{"docker0", IfaceDockerBridge},
		{"br-1a2b", IfaceLinuxBridge},
		{"virbr0", IfaceLinuxBridge},
		{"veth12", IfaceVeth},
		{"tun0", IfaceTunTap},
		{"wg0", IfaceVirt},
		{"eth0", IfacePhysical},
		{"enp3s0", IfacePhysical},
		{"wlan0", IfacePhysical},
		{"ppp0", IfaceUnknown},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, ClassifyIface(tt.name), tt.name)
	}
	require.Equal(t, "physical", IfacePhysical.String())
	require.Equal(t, "unknown", IfaceKind(99).String())
}

func TestHumanBytesPerSec(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{0, "0 B/s"},
		{1023, "1023 B/s"},
		{1024, "1.0 KiB/s"},
		{1536, "1.5 KiB/s"},
		{5 * 1024 * 1024, "5.0 MiB/s"},
		{20 * 1024, "20 KiB/s"},
		{-1, "0 B/s"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, HumanBytesPerSec(tt.in))
	}
}

func TestClampHistory(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}
	require.Equal(t, []int{3, 4, 5}, ClampHistory(s, 3))
	require.Equal(t, s, ClampHistory(s, 10))
	require.Empty(t, ClampHistory(s, 0))
}

type fakeCounters struct {
	at    time.Time
	stats [][]gnet.IOCountersStat
	err   error
}

func (f *fakeCounters) sampler() *NetSampler {
	s := NewNetSampler()
	s.now = func() time.Time {
		f.at = f.at.Add(2 * time.Second)
		return f.at
	}
	s.counters = func(context.Context) ([]gnet.IOCountersStat, error) {
		if f.err != nil {
			return nil, f.err
		}
		next := f.stats[0]
		f.stats = f.stats[1:]
		return next, nil
	}
	return s
}

func TestNetSampler(t *testing.T) {
	f := &fakeCounters{
		at: time.Unix(0, 0),
		stats: [][]gnet.IOCountersStat{
			{
				{Name: "lo", BytesRecv: 100, BytesSent: 100},
				{Name: "eth0", BytesRecv: 1000, BytesSent: 500},
			},
			{
				{Name: "lo", BytesRecv: 900, BytesSent: 900},
				{Name: "eth0", BytesRecv: 3000, BytesSent: 1500},
			},
			{
				{Name: "lo", BytesRecv: 900, BytesSent: 900},
				{Name: "eth0", BytesRecv: 10, BytesSent: 10},
			},
		},
	}
	s := f.sampler()
	ctx := context.Background()

	first, err := s.Sample(ctx)
	require.NoError(t, err)
	require.Zero(t, first.Total())
	require.Equal(t, "eth0", first.Ifaces[0].Name)

	second, err := s.Sample(ctx)
	require.NoError(t, err)
	require.Equal(t, IfaceRate{Name: "eth0", Kind: IfacePhysical, RxBps: 1000, TxBps: 500}, second.Ifaces[0])
	require.Equal(t, 1500.0, second.Total())

	// a counter reset reports zero instead of wrapping around
	third, err := s.Sample(ctx)
	require.NoError(t, err)
	require.Zero(t, third.Total())

	f.err = errors.New("no counters")
	_, err = s.Sample(ctx)
	require.Error(t, err)
}

func TestNetSnapshotTotalFallback(t *testing.T) {
	snap := NetSnapshot{Ifaces: []IfaceRate{
		{Name: "lo", Kind: IfaceLoopback, RxBps: 50},
		{Name: "ppp0", Kind: IfaceUnknown, RxBps: 10, TxBps: 5},
		{Name: "wg0", Kind: IfaceVirt, TxBps: 1},
	}}
	require.Equal(t, 16.0, snap.Total())
}

func TestCountConns(t *testing.T) {
	conns := []gnet.ConnectionStat{
		{Type: syscall.SOCK_STREAM, Status: "LISTEN", Laddr: gnet.Addr{Port: 22}},
		{Type: syscall.SOCK_STREAM, Status: "ESTABLISHED", Laddr: gnet.Addr{Port: 51000}},
		{Type: syscall.SOCK_DGRAM, Laddr: gnet.Addr{Port: 53}},
		{Type: syscall.SOCK_DGRAM},
	}
	require.Equal(t, 4, countConns(conns, false))
	require.Equal(t, 2, countConns(conns, true))
	require.Equal(t, "tcp", connProto(conns[0]))
	require.Equal(t, "udp", connProto(conns[2]))
}

func TestNewSource(t *testing.T) {
	for _, name := range []string{"", "static"} {
		s, err := NewSource(name)
		require.NoError(t, err)
		require.Nil(t, s)
	}
	for _, name := range []string{"cpu", "net", "conns"} {
		s, err := NewSource(name)
		require.NoError(t, err)
		require.Equal(t, name, s.Name())
	}
	_, err := NewSource("disk")
	require.Error(t, err)

	require.Equal(t, "12.5%", CPUSource{}.Format(12.5))
	require.Equal(t, "3 conns", ConnSource{}.Format(3))
	require.Equal(t, "2.0 KiB/s", NewNetSource().Format(2048))
}
