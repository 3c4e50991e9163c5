package probe

import (
	"context"
	"strconv"
	"syscall"

	gnet "github.com/shirou/gopsutil/v4/net"
)

// ConnSource counts open sockets of Kind ("inet", "tcp", "udp", "all").
// With Listening set it only counts listening ones.
type ConnSource struct {
	Kind      string
	Listening bool
}

func (ConnSource) Name() string { return nameConns }

func (s ConnSource) Sample(ctx context.Context) (float64, error) {
	kind := s.Kind
	if kind == "" {
		kind = "inet"
	}
	conns, err := gnet.ConnectionsWithContext(ctx, kind)
	if err != nil {
		return 0, err
	}
	return float64(countConns(conns, s.Listening)), nil
}

func (ConnSource) Format(v float64) string {
	return strconv.Itoa(int(v)) + " conns"
}

func countConns(conns []gnet.ConnectionStat, listening bool) int {
	if !listening {
		return len(conns)
	}
	n := 0
	for _, c := range conns {
		if isListening(c) {
			n++
		}
	}
	return n
}

func connProto(c gnet.ConnectionStat) string {
	switch c.Type {
	case syscall.SOCK_STREAM:
		return "tcp"
	case syscall.SOCK_DGRAM:
		return "udp"
	default:
		return "net"
	}
}

func isListening(c gnet.ConnectionStat) bool {
	switch connProto(c) {
	case "tcp":
		return c.Status == "LISTEN"
	case "udp":
		// UDP has no LISTEN state; a bound local port is close enough.
		return c.Laddr.Port != 0
	}
	return false
}
