package convert

import (
	"fmt"
	"regexp"
	"strings"
)

// The FUSE companion application embeds its module metadata as an XML
// stream with root <FXDataBase>, containing one <Product> element per
// supported amplifier family. CarveFXDatabase reconstructs that stream
// from the ordered printable-text lines of the executable.

var productStartRegex = regexp.MustCompile(`<Product Name="([^"]+)" ID="(\d+)">`)

// FXDatabase is a carved module-metadata document.
type FXDatabase struct {
	// Full is the complete document including the XML declaration.
	Full string
	// Products maps a generated filename (product<ID>-<name>.xml) to
	// the corresponding single-product document.
	Products map[string]string
}

// CarveFXDatabase scans text lines for the embedded FXDataBase XML
// document and splits out per-product documents. The line preceding the
// root element must be the XML declaration.
func CarveFXDatabase(lines []string) (*FXDatabase, error) {
	db := &FXDatabase{Products: make(map[string]string)}

	var full []string
	var product []string
	var productName string
	inDocument := false

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "<FXDataBase "):
			if i == 0 || !strings.Contains(lines[i-1], `<?xml version="1.0" encoding="utf-8"?>`) {
				return nil, fmt.Errorf("FXDataBase element at line %d not preceded by XML declaration: %w", i+1, ErrStructural)
			}
			full = append(full, lines[i-1])
			inDocument = true

		case strings.Contains(line, "</FXDataBase>"):
			if !inDocument {
				return nil, fmt.Errorf("closing FXDataBase without opening: %w", ErrStructural)
			}
			full = append(full, line)
			db.Full = strings.Join(full, "\n") + "\n"
			return db, nil

		case strings.Contains(line, "</Product>"):
			if productName != "" {
				product = append(product, line)
				db.Products[productName] = strings.Join(product, "\n") + "\n"
				product = nil
				productName = ""
			}

		default:
			if m := productStartRegex.FindStringSubmatch(line); m != nil {
				name := strings.NewReplacer(" ", "_", "/", "+").Replace(m[1])
				productName = fmt.Sprintf("product%s-%s.xml", m[2], name)
				product = nil
			}
		}

		if inDocument {
			full = append(full, line)
		}
		if productName != "" {
			product = append(product, line)
		}
	}

	if inDocument {
		return nil, fmt.Errorf("FXDataBase never closed: %w", ErrStructural)
	}
	return nil, fmt.Errorf("no FXDataBase found in %d lines: %w", len(lines), ErrStructural)
}
