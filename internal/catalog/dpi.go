package catalog

import (
	"path"
	"strconv"
	"strings"
)

// DefaultDPIScale is the scale assumed when a filename carries no suffix.
// Scales are 100-based so fractional densities (150 = 1.5x) stay integral.
const DefaultDPIScale = 100

// SplitDPISuffix parses an "@2x"-style suffix from the file stem of a
// slash-separated path. It returns the path with the suffix removed and the
// 100-based scale. Paths without a well-formed suffix come back unchanged
// with DefaultDPIScale.
func SplitDPISuffix(p string) (canonical string, scale int) {
	ext := path.Ext(p)
	stem := strings.TrimSuffix(p, ext)

	at := strings.LastIndex(stem, "@")
	if at < 0 || !strings.HasSuffix(stem, "x") {
		return p, DefaultDPIScale
	}

	raw := stem[at+1 : len(stem)-1]
	if raw == "" {
		return p, DefaultDPIScale
	}
	multiplier, err := strconv.ParseFloat(raw, 64)
	if err != nil || multiplier <= 0 {
		return p, DefaultDPIScale
	}

	return stem[:at] + ext, int(multiplier * DefaultDPIScale)
}
