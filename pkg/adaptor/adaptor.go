// Package adaptor converts single parameter values between the FUSE
// native representation (packed u16), the Tone interchange representation
// (normalized float, enum string or bool) and the display representation
// shown on a control surface.
package adaptor

import (
	"errors"
	"fmt"
)

// ErrOutOfDomain is returned when a native value falls outside the
// adaptor's tolerated range and is not one of the known sentinel values.
var ErrOutOfDomain = errors.New("value out of domain")

// Adaptor converts one raw parameter value between representations.
type Adaptor interface {
	// ToInterchange converts a native u16 value to its interchange form.
	ToInterchange(native uint16) (interface{}, error)
	// ToDisplay formats an already-computed interchange value for a UI.
	ToDisplay(interchange interface{}) (string, error)
}

// Boolean adapts on/off switch parameters. Native zero is false, any
// nonzero value is true.
type Boolean struct{}

// NewBoolean creates a boolean adaptor.
func NewBoolean() *Boolean {
	return &Boolean{}
}

// ToInterchange converts a native switch value to a bool.
func (b *Boolean) ToInterchange(native uint16) (interface{}, error) {
	return native != 0, nil
}

// ToDisplay renders the switch state as a fixed uppercase literal.
func (b *Boolean) ToDisplay(interchange interface{}) (string, error) {
	v, ok := interchange.(bool)
	if !ok {
		return "", fmt.Errorf("boolean adaptor: expected bool, got %T: %w", interchange, ErrOutOfDomain)
	}
	if v {
		return "TRUE", nil
	}
	return "FALSE", nil
}
