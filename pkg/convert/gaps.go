package convert

import (
	"sort"
	"sync"

	"github.com/mustangtools/fuse2tone/pkg/registry"
)

// GapKey identifies one occurrence pattern of an unmapped parameter:
// the module category, the native parameter position, and the raw value
// seen there.
type GapKey struct {
	Category registry.Category
	Position int
	Raw      uint16
}

// GapTable counts unmapped parameter occurrences across conversions.
// It exists purely for schema discovery (finding parameters not yet
// mapped) and has no effect on conversion correctness. Guarded by a
// mutex because API handlers may convert concurrently.
type GapTable struct {
	mu     sync.Mutex
	counts map[GapKey]int
}

// NewGapTable creates an empty gap table.
func NewGapTable() *GapTable {
	return &GapTable{counts: make(map[GapKey]int)}
}

// Record increments the occurrence count for an unmapped parameter.
func (g *GapTable) Record(category registry.Category, position int, raw uint16) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counts[GapKey{Category: category, Position: position, Raw: raw}]++
}

// Count returns the occurrence count for one key.
func (g *GapTable) Count(category registry.Category, position int, raw uint16) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counts[GapKey{Category: category, Position: position, Raw: raw}]
}

// Keys returns every recorded key sorted by category, position, value.
func (g *GapTable) Keys() []GapKey {
	g.mu.Lock()
	defer g.mu.Unlock()
	keys := make([]GapKey, 0, len(g.counts))
	for k := range g.counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.Raw < b.Raw
	})
	return keys
}
