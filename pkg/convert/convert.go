// Package convert transforms FUSE preset data into the Tone interchange
// form, one module at a time, using the descriptor registry to resolve
// per-parameter adaptors.
package convert

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/mustangtools/fuse2tone/pkg/registry"
)

// ModuleResult holds the converted parameter maps for one module.
type ModuleResult struct {
	Descriptor  *registry.Descriptor
	Interchange map[string]interface{}
	Display     map[string]string
}

// Converter converts raw FUSE module parameter blocks. The registry and
// gap table are injected at construction; the converter holds no other
// state.
type Converter struct {
	registry *registry.Registry
	gaps     *GapTable
}

// New creates a converter over a registry. The gap table collects
// unmapped-parameter sightings across all conversions done through this
// converter.
func New(reg *registry.Registry, gaps *GapTable) *Converter {
	if gaps == nil {
		gaps = NewGapTable()
	}
	return &Converter{registry: reg, gaps: gaps}
}

// Gaps returns the shared unmapped-parameter table.
func (c *Converter) Gaps() *GapTable {
	return c.gaps
}

// Registry returns the descriptor registry in use.
func (c *Converter) Registry() *registry.Registry {
	return c.registry
}

// ConvertModule converts one module's raw parameter block into its
// interchange and display maps. Parameters with a mapped slot are
// adapted; unmapped positions are preserved verbatim under a synthetic
// "__<pos>" field and counted in the gap table. A single malformed
// parameter aborts the whole module.
func (c *Converter) ConvertModule(category registry.Category, nativeID int, raw map[int]uint16) (*ModuleResult, error) {
	desc, err := c.registry.Lookup(category, nativeID)
	if err != nil {
		return nil, err
	}

	result := &ModuleResult{
		Descriptor:  desc,
		Interchange: make(map[string]interface{}, len(raw)),
		Display:     make(map[string]string),
	}

	// Walk positions in order so conversion failures are reported
	// deterministically.
	positions := make([]int, 0, len(raw))
	for p := range raw {
		positions = append(positions, p)
	}
	sort.Ints(positions)

	for _, pos := range positions {
		value := raw[pos]
		slot, mapped := desc.Slots[pos]
		if !mapped {
			result.Interchange["__"+strconv.Itoa(pos)] = int(value)
			c.gaps.Record(category, pos, value)
			continue
		}

		interchange, err := slot.Adaptor.ToInterchange(value)
		if err != nil {
			return nil, fmt.Errorf("%s module %d: parameter %d: %w", category, nativeID, pos, err)
		}
		result.Interchange[slot.Name] = interchange

		if slot.DisplayName == "" {
			continue
		}
		display, err := slot.Adaptor.ToDisplay(interchange)
		if err != nil {
			return nil, fmt.Errorf("%s module %d: parameter %d: %w", category, nativeID, pos, err)
		}
		result.Display[slot.DisplayName] = display
	}

	return result, nil
}
