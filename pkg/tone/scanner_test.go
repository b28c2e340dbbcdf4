package tone

import (
	"encoding/json"
	"strings"
	"testing"
)

const moduleListLine = `{"productFamily": "mustang", "modules": ["Twin57", "DUBS_MonoDelay", "DUBS_Passthru"]}`

func presetLine(t *testing.T, name string, nodeIDs []string) string {
	t.Helper()

	byID := map[string]string{
		"stomp":  "DUBS_Passthru",
		"mod":    "DUBS_Passthru",
		"amp":    "Twin57",
		"delay":  "DUBS_MonoDelay",
		"reverb": "DUBS_Passthru",
	}
	nodes := make([]interface{}, 0, len(nodeIDs))
	for _, id := range nodeIDs {
		nodes = append(nodes, map[string]interface{}{
			"nodeId":            id,
			"FenderId":          byID[id],
			"dspUnitParameters": map[string]interface{}{"level": 0.5},
		})
	}
	doc := map[string]interface{}{
		"nodeType": "preset",
		"info":     map[string]interface{}{"displayName": name, "product_id": "mustang-lt"},
		"audioGraph": map[string]interface{}{
			"nodes":       nodes,
			"connections": []interface{}{},
		},
	}
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal preset: %v", err)
	}
	return string(b)
}

func TestScanDeduplicatesReorderedPresets(t *testing.T) {
	forward := presetLine(t, "Crunchy", []string{"stomp", "mod", "amp", "delay", "reverb"})
	backward := presetLine(t, "Crunchy", []string{"reverb", "delay", "amp", "mod", "stomp"})

	lines := []string{
		"some binary noise",
		forward,
		moduleListLine,
		"42",
		backward,
	}

	result := Scan(lines, "mustang")

	var preset *Snippet
	for _, s := range result.Snippets {
		if s.Role == NodeTypePreset {
			if preset != nil {
				t.Fatal("reordered preset variants should collapse to one snippet")
			}
			preset = s
		}
	}
	if preset == nil {
		t.Fatal("no preset snippet found")
	}

	// The forward variant is at line 2, the backward at line 5; both
	// must be tracked under the single fingerprint.
	if len(preset.Lines) != 2 || preset.Lines[0] != 2 || preset.Lines[1] != 5 {
		t.Errorf("preset lines = %v, want [2 5]", preset.Lines)
	}
	if preset.Name != "Crunchy" {
		t.Errorf("preset name = %q, want Crunchy", preset.Name)
	}
	if !strings.HasPrefix(preset.Filename, "preset-Crunchy-") || !strings.HasSuffix(preset.Filename, ".json") {
		t.Errorf("preset filename = %q", preset.Filename)
	}
}

func TestScanAcceptsPresetBeforeModuleList(t *testing.T) {
	// The preset precedes the module list in the stream; the two-pass
	// scan must still pick it up.
	lines := []string{
		presetLine(t, "Early", []string{"stomp", "mod", "amp", "delay", "reverb"}),
		moduleListLine,
	}

	result := Scan(lines, "mustang")

	found := false
	for _, s := range result.Snippets {
		if s.Role == NodeTypePreset && s.Name == "Early" {
			found = true
			if s.Lines[0] != 1 {
				t.Errorf("preset line = %d, want 1", s.Lines[0])
			}
		}
	}
	if !found {
		t.Error("preset appearing before the module list was not collected")
	}
}

func TestScanWithoutModuleList(t *testing.T) {
	lines := []string{
		presetLine(t, "Orphan", []string{"stomp", "mod", "amp", "delay", "reverb"}),
	}

	result := Scan(lines, "mustang")

	if len(result.Snippets) != 0 {
		t.Errorf("Scan() collected %d snippets without a module list, want 0", len(result.Snippets))
	}
	if len(result.Diagnostics) == 0 {
		t.Error("missing module list should be diagnosed")
	}
}

func TestScanFiltersForeignDSPUnits(t *testing.T) {
	known := `{"nodeType": "dspUnit", "FenderId": "DUBS_MonoDelay", "info": {"subcategory": "delay", "displayName": "Mono Delay"}, "ui": {"uiParameters": [{}, {}]}, "dspUnitParameters": {}}`
	foreign := `{"nodeType": "dspUnit", "FenderId": "RUMB_Vintage", "info": {"subcategory": "amp", "displayName": "Vintage"}, "ui": {"uiParameters": []}, "dspUnitParameters": {}}`

	lines := []string{moduleListLine, known, foreign}

	result := Scan(lines, "mustang")

	var names []string
	for _, s := range result.Snippets {
		if s.Role != RoleModuleList {
			names = append(names, s.Name)
		}
	}
	if len(names) != 1 {
		t.Fatalf("got %d dsp snippets %v, want 1", len(names), names)
	}
	// FenderId is filtered and the UI parameter count appended.
	if names[0] != "MonoDelay.02params" {
		t.Errorf("dsp unit name = %q, want MonoDelay.02params", names[0])
	}
}

func TestScanRejectsIncompletePreset(t *testing.T) {
	// Five nodes but no amp node: excluded with a diagnostic, never
	// silently substituted.
	broken := presetLine(t, "NoAmp", []string{"stomp", "mod", "delay", "reverb", "stomp"})

	result := Scan([]string{moduleListLine, broken}, "mustang")

	for _, s := range result.Snippets {
		if s.Role == NodeTypePreset {
			t.Error("incomplete preset should be excluded from output")
		}
	}

	found := false
	for _, d := range result.Diagnostics {
		if strings.Contains(d, "NoAmp") {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics %v should name the rejected preset", result.Diagnostics)
	}
}

func TestScanDiagnosesGraphlessPreset(t *testing.T) {
	// A preset with no audioGraph at all is malformed, not a truncated
	// fragment, and must be diagnosed rather than dropped quietly.
	graphless := `{"nodeType": "preset", "info": {"displayName": "Hollow", "product_id": "mustang-lt"}}`

	result := Scan([]string{moduleListLine, graphless}, "mustang")

	for _, s := range result.Snippets {
		if s.Role == NodeTypePreset {
			t.Error("graphless preset should be excluded from output")
		}
	}

	found := false
	for _, d := range result.Diagnostics {
		if strings.Contains(d, "Hollow") {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics %v should name the graphless preset", result.Diagnostics)
	}
}

func TestScanIgnoresEmptySlotPresets(t *testing.T) {
	// Placeholder name is EMPTY padded to 14 characters with spaces;
	// the graph is incomplete (no amp), which would otherwise diagnose.
	empty := presetLine(t, "EMPTY"+strings.Repeat(" ", 9), []string{"stomp", "mod", "delay", "reverb", "stomp"})

	result := Scan([]string{moduleListLine, empty}, "mustang")

	// Placeholder presets are dropped quietly: no snippet, and no
	// canonicalization diagnostic either.
	for _, d := range result.Diagnostics {
		if strings.Contains(d, "EMPTY") {
			t.Errorf("placeholder preset should not be diagnosed: %q", d)
		}
	}
}

func TestScanReport(t *testing.T) {
	p := presetLine(t, "Crunchy", []string{"stomp", "mod", "amp", "delay", "reverb"})
	result := Scan([]string{moduleListLine, p, p}, "mustang")

	report := result.Report()
	if len(report) != 2 {
		t.Fatalf("Report() returned %d lines, want 2 (module list + preset)", len(report))
	}

	found := false
	for _, line := range report {
		if strings.HasPrefix(line, "preset-Crunchy-") && strings.HasSuffix(line, "found at line(s): 2, 3") {
			found = true
		}
	}
	if !found {
		t.Errorf("Report() = %v, want a preset line listing lines 2, 3", report)
	}
}

func TestScanDiagnosesUnclassifiable(t *testing.T) {
	weird := `{"nodeType": "wiring", "stuff": 1}`

	result := Scan([]string{moduleListLine, weird}, "mustang")

	found := false
	for _, d := range result.Diagnostics {
		if strings.Contains(d, "wiring") {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics %v should report the unclassifiable node type", result.Diagnostics)
	}
}
