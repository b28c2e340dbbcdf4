package tone

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Role tags for classified candidates. Presets and module lists keep
// their node type; DSP units are tagged with their subcategory.
const (
	RoleModuleList = "module_list"

	unknownDSPRole = "unknown_dsp_unit_type"
)

// Factory slot presets are stored under this placeholder name; they
// carry no graph and are not worth a diagnostic.
const emptyPresetName = "EMPTY_________"

// Snippet is one unique canonical document found in a scan, with every
// 1-based line number where an equivalent fragment occurred.
type Snippet struct {
	Role        string
	Name        string
	Filename    string
	Canonical   string
	Fingerprint string
	Lines       []int
}

// ScanResult aggregates the unique snippets and diagnostics of one scan.
type ScanResult struct {
	Family      string
	Snippets    map[string]*Snippet // keyed by fingerprint
	Diagnostics []string

	moduleListText string
	seenDiag       map[string]bool
}

// Scan classifies, canonicalizes and deduplicates the JSON documents
// embedded in an ordered sequence of printable-text lines extracted
// from an application binary.
//
// The scan runs in two explicit passes: the first locates the module
// list for the requested product family, the second classifies every
// line. Module and preset classification depends on family membership,
// so nothing can be accepted before the module list is known.
func Scan(lines []string, family string) *ScanResult {
	result := &ScanResult{
		Family:   family,
		Snippets: make(map[string]*Snippet),
		seenDiag: make(map[string]bool),
	}

	// Pass 1: locate the module-list line.
	for _, line := range lines {
		dict, ok := ParseCandidate(line)
		if !ok {
			continue
		}
		if pf, ok := dict["productFamily"].(string); ok && pf == family {
			result.moduleListText = line
			break
		}
	}
	if result.moduleListText == "" {
		result.diag(fmt.Sprintf("module list for product family %q not found", family))
		return result
	}

	// Pass 2: classify, canonicalize, deduplicate.
	for i, line := range lines {
		lineno := i + 1
		dict, ok := ParseCandidate(line)
		if !ok {
			continue
		}

		role, name, err := classify(dict)
		if err != nil {
			result.diag(err.Error())
			continue
		}

		switch role {
		case NodeTypePreset:
			if err := CanonicalizePreset(dict); err != nil {
				if errors.Is(err, ErrNodeCount) || name == emptyPresetName {
					continue
				}
				result.diag(fmt.Sprintf("preset %q cannot be made canonical: %v", name, err))
				continue
			}
			// Family filter: Tone binaries carry presets for several
			// product lines; keep only the requested one.
			if !strings.Contains(line, family) {
				continue
			}
		case RoleModuleList:
			// Kept regardless of family; a scan may legitimately
			// record the sibling family's list.
		default:
			// DSP units must belong to the family's module list.
			if fenderID, ok := dict["FenderId"].(string); ok {
				if !strings.Contains(result.moduleListText, fenderID) {
					continue
				}
			}
		}

		canonical, err := CanonicalJSON(dict)
		if err != nil {
			result.diag(fmt.Sprintf("line %d: cannot serialize candidate: %v", lineno, err))
			continue
		}

		fp := Fingerprint(canonical)
		if existing, ok := result.Snippets[fp]; ok {
			existing.Lines = append(existing.Lines, lineno)
			continue
		}
		result.Snippets[fp] = &Snippet{
			Role:        role,
			Name:        name,
			Filename:    fmt.Sprintf("%s-%s-%s.json", role, name, fp),
			Canonical:   canonical,
			Fingerprint: fp,
			Lines:       []int{lineno},
		}
	}

	return result
}

// classify determines a candidate's structural role and a usable name
// for it. A dictionary naming a product family is a module list; a
// nodeType of "preset" is a preset; a dspUnit is named by its filtered
// FenderId plus its UI parameter count.
func classify(dict map[string]interface{}) (role, name string, err error) {
	nodeType, _ := dict["nodeType"].(string)

	switch nodeType {
	case NodeTypePreset:
		info, _ := dict["info"].(map[string]interface{})
		displayName, ok := info["displayName"].(string)
		if !ok {
			return "", "", fmt.Errorf("unable to derive name for preset with keys [%s]", keyList(dict))
		}
		return NodeTypePreset, FilterName(displayName), nil

	case NodeTypeDSPUnit:
		role := unknownDSPRole
		if info, ok := dict["info"].(map[string]interface{}); ok {
			if sub, ok := info["subcategory"].(string); ok {
				role = sub
			}
		}
		fenderID, ok := dict["FenderId"].(string)
		if !ok {
			return "", "", fmt.Errorf("unable to derive name for dspUnit with keys [%s]", keyList(dict))
		}
		name := FilterFenderID(fenderID)
		if n := uiParamCount(dict); n > 0 {
			name += fmt.Sprintf(".%02dparams", n)
		}
		return role, name, nil

	case "":
		if pf, ok := dict["productFamily"].(string); ok {
			return RoleModuleList, pf, nil
		}
		return "", "", fmt.Errorf("unable to derive name for node with keys [%s]", keyList(dict))

	default:
		return "", "", fmt.Errorf("unable to classify node of type %q", nodeType)
	}
}

func uiParamCount(dict map[string]interface{}) int {
	ui, _ := dict["ui"].(map[string]interface{})
	params, _ := ui["uiParameters"].([]interface{})
	return len(params)
}

func keyList(dict map[string]interface{}) string {
	keys := make([]string, 0, len(dict))
	for k := range dict {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

func (r *ScanResult) diag(msg string) {
	if r.seenDiag[msg] {
		return
	}
	r.seenDiag[msg] = true
	r.Diagnostics = append(r.Diagnostics, msg)
}

// Sorted returns the snippets ordered by filename.
func (r *ScanResult) Sorted() []*Snippet {
	out := make([]*Snippet, 0, len(r.Snippets))
	for _, s := range r.Snippets {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out
}
