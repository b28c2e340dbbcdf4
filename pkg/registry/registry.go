// Package registry maps FUSE module identities to descriptors carrying
// the per-parameter adaptors needed to convert a module's raw value
// block into the Tone interchange form.
package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mustangtools/fuse2tone/pkg/adaptor"
)

// ErrNotFound is returned when no descriptor matches a lookup.
var ErrNotFound = errors.New("module not found")

// Category identifies one of the five DSP module classes a preset holds.
type Category string

const (
	Stomp      Category = "stomp"
	Modulation Category = "modulation"
	Amplifier  Category = "amplifier"
	Delay      Category = "delay"
	Reverb     Category = "reverb"
)

// SlotOrder is the fixed processing order of the five module slots in a
// FUSE preset document.
var SlotOrder = [5]Category{Stomp, Modulation, Amplifier, Delay, Reverb}

// NodeID returns the Tone audio-graph node id for the category.
func (c Category) NodeID() string {
	switch c {
	case Modulation:
		return "mod"
	case Amplifier:
		return "amp"
	default:
		return string(c)
	}
}

// ParamSlot binds one native parameter position to its interchange
// field name, optional display name, and value adaptor. A slot with an
// empty DisplayName is an internal parameter: it is carried through to
// the interchange form but never shown to a user.
type ParamSlot struct {
	Name        string
	DisplayName string
	Adaptor     adaptor.Adaptor
}

// Descriptor identifies one simulated amp or effect module and maps its
// native parameter positions to slots. The position map is sparse;
// positions with no slot are preserved verbatim by the converter.
type Descriptor struct {
	Category    Category
	NativeID    int
	FenderID    string
	DisplayName string
	Slots       map[int]ParamSlot
}

// PassthroughID is the native id of the empty module. It matches any
// requested category.
const PassthroughID = 0

type lookupKey struct {
	category Category
	id       int
}

// Registry resolves (category, native id) pairs to descriptors. It is
// immutable after construction and safe for concurrent lookups.
type Registry struct {
	byKey       map[lookupKey]*Descriptor
	passthrough *Descriptor
}

// New builds a registry from descriptors. A descriptor with native id 0
// becomes the category-independent passthrough entry.
func New(descriptors ...*Descriptor) (*Registry, error) {
	r := &Registry{byKey: make(map[lookupKey]*Descriptor)}
	for _, d := range descriptors {
		if d.NativeID == PassthroughID {
			if r.passthrough != nil {
				return nil, errors.New("duplicate passthrough descriptor")
			}
			r.passthrough = d
			continue
		}
		key := lookupKey{category: d.Category, id: d.NativeID}
		if _, exists := r.byKey[key]; exists {
			return nil, fmt.Errorf("duplicate descriptor for %s module %d", d.Category, d.NativeID)
		}
		r.byKey[key] = d
	}
	return r, nil
}

// Lookup returns the descriptor for a category and native module id.
// The passthrough entry matches regardless of category. A failed lookup
// reports both the category and the id, since a silent fallback would
// corrupt downstream comparisons.
func (r *Registry) Lookup(category Category, nativeID int) (*Descriptor, error) {
	if nativeID == PassthroughID && r.passthrough != nil {
		return r.passthrough, nil
	}
	d, ok := r.byKey[lookupKey{category: category, id: nativeID}]
	if !ok {
		return nil, fmt.Errorf("%s module %d: %w", category, nativeID, ErrNotFound)
	}
	return d, nil
}

// All returns every descriptor ordered by slot category then native id,
// passthrough last.
func (r *Registry) All() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.byKey)+1)
	for _, c := range SlotOrder {
		var group []*Descriptor
		for _, d := range r.byKey {
			if d.Category == c {
				group = append(group, d)
			}
		}
		sort.Slice(group, func(i, j int) bool { return group[i].NativeID < group[j].NativeID })
		out = append(out, group...)
	}
	if r.passthrough != nil {
		out = append(out, r.passthrough)
	}
	return out
}
