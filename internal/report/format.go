package report

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rawwerks/sysreport/internal/model"
)

const gigabyte = 1 << 30

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// HumanBytes rescales n to the largest binary (1024-based) unit that keeps
// the value below 1024, with one decimal place.
func HumanBytes(n uint64) string {
	v := float64(n)
	unit := 0
	for v >= 1024 && unit < len(byteUnits)-1 {
		v /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", v, byteUnits[unit])
}

// BytesToGB converts n to gigabytes rounded to one decimal place, half away
// from zero.
func BytesToGB(n uint64) float64 {
	return math.Round(float64(n)/gigabyte*10) / 10
}

// SecondsToClock renders a duration as H:MM:SS. Hours are unbounded,
// minutes and seconds always two digits.
func SecondsToClock(total int64) string {
	mm, ss := total/60, total%60
	hh, mm := mm/60, mm%60
	return fmt.Sprintf("%d:%02d:%02d", hh, mm, ss)
}

var familyLabels = map[model.Family]string{
	model.FamilyIPv4: "IPv4",
	model.FamilyIPv6: "IPv6",
	model.FamilyLink: "MAC",
}

// FamilyLabel names an address family. Unrecognized codes pass through as
// their numeric form rather than failing.
func FamilyLabel(f model.Family) string {
	if label, ok := familyLabels[f]; ok {
		return label
	}
	return strconv.Itoa(int(f))
}

var duplexLabels = map[model.Duplex]string{
	model.DuplexFull: "full",
	model.DuplexHalf: "half",
}

// DuplexLabel names a duplex mode, "?" when unknown.
func DuplexLabel(d model.Duplex) string {
	if label, ok := duplexLabels[d]; ok {
		return label
	}
	return "?"
}
