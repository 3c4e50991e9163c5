package probe

import (
	"math"

	"github.com/dustin/go-humanize"
)

// HumanBytesPerSec formats a throughput in IEC units, e.g. "1.5 KiB/s".
func HumanBytesPerSec(bps float64) string {
	if bps < 0 || math.IsNaN(bps) {
		bps = 0
	}
	return humanize.IBytes(uint64(bps)) + "/s"
}

// ClampHistory keeps the newest max entries of s.
func ClampHistory[T any](s []T, max int) []T {
	if max <= 0 {
		return s[:0]
	}
	return s[len(s)-min(len(s), max):]
}
