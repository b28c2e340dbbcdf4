package adaptor

import "fmt"

// Enumerated adapts string-choice parameters. The native value indexes
// into the ordered list of interchange tokens; the display map renders
// an interchange token as the text shown on the device UI.
type Enumerated struct {
	Tokens  []string
	Display map[string]string
}

// NewEnumerated creates an enumerated adaptor from an ordered token
// list and an interchange-to-display mapping.
func NewEnumerated(tokens []string, display map[string]string) *Enumerated {
	return &Enumerated{Tokens: tokens, Display: display}
}

// ToInterchange converts a native index to its interchange token.
func (e *Enumerated) ToInterchange(native uint16) (interface{}, error) {
	if int(native) >= len(e.Tokens) {
		return nil, fmt.Errorf("enum index %d outside 0-%d: %w", native, len(e.Tokens)-1, ErrOutOfDomain)
	}
	return e.Tokens[native], nil
}

// ToDisplay converts an interchange token to its display token.
func (e *Enumerated) ToDisplay(interchange interface{}) (string, error) {
	token, ok := interchange.(string)
	if !ok {
		return "", fmt.Errorf("enum adaptor: expected string, got %T: %w", interchange, ErrOutOfDomain)
	}
	display, ok := e.Display[token]
	if !ok {
		return "", fmt.Errorf("enum token %q has no display form: %w", token, ErrOutOfDomain)
	}
	return display, nil
}
