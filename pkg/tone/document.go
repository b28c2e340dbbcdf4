// Package tone models the Tone JSON metadata documents (module lists,
// DSP units, presets), canonicalizes preset documents so semantically
// equivalent variants serialize identically, and scans embedded text
// streams for such documents, deduplicating them by fingerprint.
package tone

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Node type tags used by Tone documents.
const (
	NodeTypePreset  = "preset"
	NodeTypeDSPUnit = "dspUnit"
)

// PassthruFenderID marks the empty module occupying an unused slot.
const PassthruFenderID = "DUBS_Passthru"

// ParseCandidate speculatively parses one text line as a JSON object.
// Lines that are valid JSON but not objects (numbers, strings, bools)
// and empty objects are expected noise, reported as not-a-candidate
// rather than errors.
func ParseCandidate(line string) (map[string]interface{}, bool) {
	var v interface{}
	if err := json.Unmarshal([]byte(line), &v); err != nil {
		return nil, false
	}
	dict, ok := v.(map[string]interface{})
	if !ok || len(dict) == 0 {
		return nil, false
	}
	return dict, true
}

// CanonicalJSON deterministically serializes a document: sorted keys,
// 4-space indent, shortest float form, no HTML escaping. Two documents
// that differ only in key order or float formatting produce identical
// output.
func CanonicalJSON(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// Fingerprint computes the 7-hex-character dedup key of a canonical
// serialization.
func Fingerprint(canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])[:7]
}

// FilterName makes a display name filesystem safe: spaces become
// underscores and every other non-alphanumeric rune is dropped.
func FilterName(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	var b strings.Builder
	for _, r := range s {
		if r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// fenderIDStrips is the fixed ordered list of substrings removed from
// FenderId values; the prefixes and suffixes differ between the LT and
// Micro Plus product ranges but name the same module.
var fenderIDStrips = []string{"DUBS_", "MMP2_", "_MMP", "_LT"}

// FilterFenderID strips range-specific prefixes and suffixes from a
// manufacturer module id.
func FilterFenderID(s string) string {
	for _, strip := range fenderIDStrips {
		s = strings.ReplaceAll(s, strip, "")
	}
	return s
}
