package adaptor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Default native bounds for continuous FUSE parameters. Values in the
// range 0x0300-0xFF00 map by linear interpolation onto 0.0-1.0; 0x8100
// lands exactly on 0.5, which is the most frequent value in the known
// preset corpus.
const (
	DefaultNativeMin = 0x0300
	DefaultNativeMax = 0xFF00
)

// Sentinel native values observed in the corpus outside the nominal
// range. They clamp to the nearest bound instead of failing.
const (
	sentinelZero    = 0
	sentinelLow     = 256
	sentinelMissing = 65535
)

// DisplayRange maps an interchange value onto one UI scale, for example
// a 1.0-10.0 knob position or a 0-100 percentage.
type DisplayRange struct {
	Min       float64
	Max       float64
	Precision int    // decimal places in the formatted value
	Unit      string // suffix appended to the formatted value
}

// Continuous adapts ranged parameters by linear interpolation between
// native and interchange bounds. The zero value is not usable; construct
// with NewContinuous.
type Continuous struct {
	NativeMin uint16
	NativeMax uint16
	Min       float64
	Max       float64
	Displays  []DisplayRange
}

// NewContinuous creates a continuous adaptor with the default FUSE
// native range mapping onto interchange 0.0-1.0 and a single 1-10 knob
// display scale.
func NewContinuous() *Continuous {
	return &Continuous{
		NativeMin: DefaultNativeMin,
		NativeMax: DefaultNativeMax,
		Min:       0.0,
		Max:       1.0,
		Displays:  []DisplayRange{{Min: 1.0, Max: 10.0, Precision: 1}},
	}
}

// NewContinuousRange creates a continuous adaptor with explicit bounds
// and display scales.
func NewContinuousRange(nativeMin, nativeMax uint16, min, max float64, displays ...DisplayRange) *Continuous {
	return &Continuous{
		NativeMin: nativeMin,
		NativeMax: nativeMax,
		Min:       min,
		Max:       max,
		Displays:  displays,
	}
}

// ToInterchange interpolates a native value into the interchange range
// and rounds to 3 decimal places. The rounding makes imperceptibly
// different float encodings collapse to the same token when presets are
// later fingerprinted for deduplication.
func (c *Continuous) ToInterchange(native uint16) (interface{}, error) {
	if c.NativeMin >= c.NativeMax {
		return nil, fmt.Errorf("continuous adaptor misconfigured: native range [%d,%d]", c.NativeMin, c.NativeMax)
	}
	if c.Min == c.Max {
		return nil, fmt.Errorf("continuous adaptor misconfigured: interchange range [%g,%g]", c.Min, c.Max)
	}

	if native < c.NativeMin || native > c.NativeMax {
		switch native {
		case sentinelZero, sentinelLow:
			return round3(c.Min), nil
		case sentinelMissing:
			return round3(c.Max), nil
		}
		return nil, fmt.Errorf("native value %d outside [%d,%d]: %w", native, c.NativeMin, c.NativeMax, ErrOutOfDomain)
	}

	span := float64(c.NativeMax) - float64(c.NativeMin)
	out := c.Min + (float64(native)-float64(c.NativeMin))*(c.Max-c.Min)/span
	return round3(out), nil
}

// ToDisplay applies every configured display range to the interchange
// value and joins the results, so a single value can render as both a
// knob position and a percentage.
func (c *Continuous) ToDisplay(interchange interface{}) (string, error) {
	v, ok := toFloat(interchange)
	if !ok {
		return "", fmt.Errorf("continuous adaptor: expected number, got %T: %w", interchange, ErrOutOfDomain)
	}
	if c.Min == c.Max {
		return "", fmt.Errorf("continuous adaptor misconfigured: interchange range [%g,%g]", c.Min, c.Max)
	}

	if len(c.Displays) == 0 {
		return strconv.FormatFloat(v, 'f', 3, 64), nil
	}

	parts := make([]string, 0, len(c.Displays))
	for _, d := range c.Displays {
		out := d.Min + (v-c.Min)*(d.Max-d.Min)/(c.Max-c.Min)
		parts = append(parts, strconv.FormatFloat(out, 'f', d.Precision, 64)+d.Unit)
	}
	return strings.Join(parts, " / "), nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
