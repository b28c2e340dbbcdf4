package adaptor

import (
	"errors"
	"testing"
)

func TestContinuousBounds(t *testing.T) {
	c := NewContinuous()

	tests := []struct {
		name     string
		native   uint16
		expected float64
	}{
		{"native min", 0x0300, 0.0},
		{"native mid", 0x8100, 0.5},
		{"native max", 0xFF00, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := c.ToInterchange(tt.native)
			if err != nil {
				t.Fatalf("ToInterchange(%#04x) error = %v", tt.native, err)
			}
			if v != tt.expected {
				t.Errorf("ToInterchange(%#04x) = %v, want %v", tt.native, v, tt.expected)
			}
		})
	}
}

func TestContinuousSentinels(t *testing.T) {
	c := NewContinuous()

	tests := []struct {
		name     string
		native   uint16
		expected float64
	}{
		{"zero clamps to min", 0, 0.0},
		{"256 clamps to min", 256, 0.0},
		{"65535 clamps to max", 65535, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := c.ToInterchange(tt.native)
			if err != nil {
				t.Fatalf("ToInterchange(%d) error = %v", tt.native, err)
			}
			if v != tt.expected {
				t.Errorf("ToInterchange(%d) = %v, want %v", tt.native, v, tt.expected)
			}
		})
	}
}

func TestContinuousOutOfDomain(t *testing.T) {
	c := NewContinuous()

	for _, native := range []uint16{1, 255, 0x0200, 0xFF01, 65300} {
		_, err := c.ToInterchange(native)
		if !errors.Is(err, ErrOutOfDomain) {
			t.Errorf("ToInterchange(%d) error = %v, want ErrOutOfDomain", native, err)
		}
	}
}

func TestContinuousHighInRangeInterpolates(t *testing.T) {
	c := NewContinuous()

	// 65000 sits inside the nominal range, just below 0xFF00; it must
	// interpolate, not fail.
	v, err := c.ToInterchange(65000)
	if err != nil {
		t.Fatalf("ToInterchange(65000) error = %v", err)
	}
	if v != 0.996 {
		t.Errorf("ToInterchange(65000) = %v, want 0.996", v)
	}
}

func TestContinuousRounding(t *testing.T) {
	c := NewContinuous()

	// 0x0301 does not divide evenly; the result must carry exactly
	// 3 decimal places so equivalent encodings fingerprint identically.
	v, err := c.ToInterchange(0x0301)
	if err != nil {
		t.Fatalf("ToInterchange(0x0301) error = %v", err)
	}
	f, ok := v.(float64)
	if !ok {
		t.Fatalf("ToInterchange(0x0301) = %T, want float64", v)
	}
	if f != 0.0 {
		t.Errorf("ToInterchange(0x0301) = %v, want 0.0 after rounding", f)
	}
}

func TestContinuousDisplay(t *testing.T) {
	c := NewContinuous()

	display, err := c.ToDisplay(0.5)
	if err != nil {
		t.Fatalf("ToDisplay(0.5) error = %v", err)
	}
	if display != "5.5" {
		t.Errorf("ToDisplay(0.5) = %q, want %q", display, "5.5")
	}
}

func TestContinuousMultipleDisplayRanges(t *testing.T) {
	c := NewContinuousRange(0x0300, 0xFF00, 0.0, 1.0,
		DisplayRange{Min: 1.0, Max: 10.0, Precision: 1},
		DisplayRange{Min: 0.0, Max: 100.0, Precision: 0, Unit: "%"},
	)

	display, err := c.ToDisplay(0.5)
	if err != nil {
		t.Fatalf("ToDisplay(0.5) error = %v", err)
	}
	if display != "5.5 / 50%" {
		t.Errorf("ToDisplay(0.5) = %q, want %q", display, "5.5 / 50%")
	}
}

func TestContinuousDisplayRejectsCollapsedRange(t *testing.T) {
	c := NewContinuousRange(0x0300, 0xFF00, 1.0, 1.0,
		DisplayRange{Min: 1.0, Max: 10.0, Precision: 1},
	)

	if _, err := c.ToDisplay(1.0); err == nil {
		t.Error("ToDisplay with collapsed interchange range error = nil, want misconfiguration error")
	}
}

func TestContinuousDisplayRejectsNonNumber(t *testing.T) {
	c := NewContinuous()

	_, err := c.ToDisplay("loud")
	if !errors.Is(err, ErrOutOfDomain) {
		t.Errorf("ToDisplay(string) error = %v, want ErrOutOfDomain", err)
	}
}

func TestEnumerated(t *testing.T) {
	e := NewEnumerated(
		[]string{"low", "medium", "high", "super"},
		map[string]string{"low": "LOW", "medium": "MID", "high": "HIGH", "super": "MAX"},
	)

	v, err := e.ToInterchange(0)
	if err != nil {
		t.Fatalf("ToInterchange(0) error = %v", err)
	}
	if v != "low" {
		t.Errorf("ToInterchange(0) = %v, want %q", v, "low")
	}

	display, err := e.ToDisplay("medium")
	if err != nil {
		t.Fatalf("ToDisplay(medium) error = %v", err)
	}
	if display != "MID" {
		t.Errorf("ToDisplay(medium) = %q, want %q", display, "MID")
	}
}

func TestEnumeratedOutOfDomain(t *testing.T) {
	e := NewEnumerated([]string{"a", "b"}, map[string]string{"a": "A", "b": "B"})

	if _, err := e.ToInterchange(2); !errors.Is(err, ErrOutOfDomain) {
		t.Errorf("ToInterchange(2) error = %v, want ErrOutOfDomain", err)
	}
	if _, err := e.ToDisplay("c"); !errors.Is(err, ErrOutOfDomain) {
		t.Errorf("ToDisplay(c) error = %v, want ErrOutOfDomain", err)
	}
}

func TestBoolean(t *testing.T) {
	b := NewBoolean()

	tests := []struct {
		native   uint16
		expected bool
		display  string
	}{
		{0, false, "FALSE"},
		{256, true, "TRUE"},
		{257, true, "TRUE"},
	}

	for _, tt := range tests {
		v, err := b.ToInterchange(tt.native)
		if err != nil {
			t.Fatalf("ToInterchange(%d) error = %v", tt.native, err)
		}
		if v != tt.expected {
			t.Errorf("ToInterchange(%d) = %v, want %v", tt.native, v, tt.expected)
		}

		display, err := b.ToDisplay(v)
		if err != nil {
			t.Fatalf("ToDisplay(%v) error = %v", v, err)
		}
		if display != tt.display {
			t.Errorf("ToDisplay(%v) = %q, want %q", v, display, tt.display)
		}
	}
}
