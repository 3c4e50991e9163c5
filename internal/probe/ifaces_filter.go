package probe

import "strings"

// IfaceKind groups interfaces so the net source can count real traffic once
// instead of again on every bridge and veth it crosses.
type IfaceKind int

const (
	IfaceUnknown IfaceKind = iota
	IfaceLoopback
	IfaceDockerBridge
	IfaceLinuxBridge
	IfaceVeth
	IfaceTunTap
	IfaceVirt
	IfacePhysical
)

var ifaceKindNames = [...]string{
	IfaceUnknown:      "unknown",
	IfaceLoopback:     "loopback",
	IfaceDockerBridge: "docker",
	IfaceLinuxBridge:  "bridge",
	IfaceVeth:         "veth",
	IfaceTunTap:       "tun/tap",
	IfaceVirt:         "virtual",
	IfacePhysical:     "physical",
}

// first match wins
var ifacePrefixes = []struct {
	prefix string
	kind   IfaceKind
}{
	{"lo", IfaceLoopback},
	{"docker", IfaceDockerBridge},
	{"br-", IfaceLinuxBridge},
	{"virbr", IfaceLinuxBridge},
	{"veth", IfaceVeth},
	{"tun", IfaceTunTap},
	{"tap", IfaceTunTap},
	{"wg", IfaceVirt},
	{"en", IfacePhysical},
	{"eth", IfacePhysical},
	{"wl", IfacePhysical},
}

func ClassifyIface(name string) IfaceKind {
	for _, p := range ifacePrefixes {
		if strings.HasPrefix(name, p.prefix) {
			return p.kind
		}
	}
	return IfaceUnknown
}

func (k IfaceKind) String() string {
	if k < 0 || int(k) >= len(ifaceKindNames) {
		return ifaceKindNames[IfaceUnknown]
	}
	return ifaceKindNames[k]
}
