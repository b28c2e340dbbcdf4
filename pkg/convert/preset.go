package convert

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mustangtools/fuse2tone/pkg/registry"
)

// ErrStructural is returned when a preset document is missing a
// required element or carries one in the wrong position.
var ErrStructural = errors.New("structural error")

// fuseDocument mirrors the FUSE preset XML: a root element holding the
// five module-category elements in fixed positional order, each with
// exactly one selected <Module>.
type fuseDocument struct {
	XMLName xml.Name
	Name    string     `xml:"Name,attr"`
	Slots   []fuseSlot `xml:",any"`
}

type fuseSlot struct {
	XMLName xml.Name
	Module  *fuseModule `xml:"Module"`
}

type fuseModule struct {
	ID     int         `xml:"ID,attr"`
	Params []fuseParam `xml:"Param"`
}

type fuseParam struct {
	Index int    `xml:"ControlIndex,attr"`
	Value string `xml:",chardata"`
}

// slotTags are the expected XML element names, position for position
// matching registry.SlotOrder.
var slotTags = [5]string{"Stomp", "Modulation", "Amplifier", "Delay", "Reverb"}

// PresetResult holds the outcome of converting one FUSE preset: one
// module result per slot (nil where the slot failed), plus the
// diagnostics collected along the way.
type PresetResult struct {
	Name        string
	Slots       [5]*ModuleResult
	Diagnostics []string
}

// Complete reports whether every slot converted.
func (p *PresetResult) Complete() bool {
	for _, s := range p.Slots {
		if s == nil {
			return false
		}
	}
	return true
}

// ConvertPreset decodes a FUSE preset document and converts each of the
// five module slots. A failed slot is recorded as a diagnostic and
// skipped so callers get partial results rather than an all-or-nothing
// failure; only an unparseable document aborts entirely.
func (c *Converter) ConvertPreset(data []byte) (*PresetResult, error) {
	var doc fuseDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse preset XML: %w", err)
	}

	result := &PresetResult{Name: doc.Name}
	seen := make(map[string]bool)
	diag := func(msg string) {
		if !seen[msg] {
			seen[msg] = true
			result.Diagnostics = append(result.Diagnostics, msg)
		}
	}

	for i, category := range registry.SlotOrder {
		if i >= len(doc.Slots) {
			diag(fmt.Sprintf("missing <%s> element at slot %d", slotTags[i], i))
			continue
		}
		slot := doc.Slots[i]
		if slot.XMLName.Local != slotTags[i] {
			diag(fmt.Sprintf("slot %d: expected <%s>, found <%s>", i, slotTags[i], slot.XMLName.Local))
			continue
		}
		if slot.Module == nil {
			diag(fmt.Sprintf("slot %d: <%s> has no selected module", i, slotTags[i]))
			continue
		}

		raw, err := decodeParams(slot.Module.Params)
		if err != nil {
			diag(fmt.Sprintf("slot %d: %v", i, err))
			continue
		}

		converted, err := c.ConvertModule(category, slot.Module.ID, raw)
		if err != nil {
			diag(err.Error())
			continue
		}
		result.Slots[i] = converted
	}

	return result, nil
}

func decodeParams(params []fuseParam) (map[int]uint16, error) {
	raw := make(map[int]uint16, len(params))
	for _, p := range params {
		text := strings.TrimSpace(p.Value)
		v, err := strconv.ParseUint(text, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: invalid value %q", p.Index, text)
		}
		raw[p.Index] = uint16(v)
	}
	return raw, nil
}

// ToneDocument assembles a Tone preset document from a fully converted
// preset. The node sequence follows the fixed Mustang processing order.
// An incomplete preset is a structural error naming the first missing
// slot; a partially built document is never returned.
func (p *PresetResult) ToneDocument(productID string) (map[string]interface{}, error) {
	nodes := make([]interface{}, 0, len(p.Slots))
	for i, slot := range p.Slots {
		if slot == nil {
			return nil, fmt.Errorf("slot %d (%s) not converted: %w", i, registry.SlotOrder[i], ErrStructural)
		}
		nodes = append(nodes, map[string]interface{}{
			"nodeId":            registry.SlotOrder[i].NodeID(),
			"FenderId":          slot.Descriptor.FenderID,
			"dspUnitParameters": slot.Interchange,
		})
	}

	return map[string]interface{}{
		"nodeType": "preset",
		"info": map[string]interface{}{
			"displayName": p.Name,
			"product_id":  productID,
		},
		"audioGraph": map[string]interface{}{
			"nodes": nodes,
		},
	}, nil
}
