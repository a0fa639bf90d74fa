package classify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rnatools/rfamtype/vocabulary/insdc"
)

// NamePattern is one ordered entry of the name rule: a substring marker
// and the label it implies.
type NamePattern struct {
	Marker string
	Type   insdc.RNAType
}

// Curation holds the four lookup tables that drive the rule cascade.
// Tables are built once from the curation file and read-only afterward.
type Curation struct {
	// Manual maps family accessions to curated label overrides.
	Manual map[string][]insdc.RNAType

	// NamePatterns holds the name rule markers in file order. Order is
	// part of the curated data: earlier markers take precedence.
	NamePatterns []NamePattern

	// SOTerms maps SO term ids to labels. Shared by the so-term rule
	// and the ancestor search.
	SOTerms map[string]insdc.RNAType

	// RNATypes maps normalized Rfam type strings to labels. Keys are in
	// NormalizeRNAType form.
	RNATypes map[string]insdc.RNAType
}

// curationDoc is the JSON shape of the curation file. All four sections
// are required.
type curationDoc struct {
	Hardcoded        map[string]json.RawMessage `json:"hardcoded"`
	InformativeNames json.RawMessage            `json:"informative_names"`
	RNATypeMapping   json.RawMessage            `json:"rna_type_mapping"`
	Assignments      map[string]string          `json:"assignments"`
}

// ParseCuration decodes a JSON curation document. Every label value is
// validated against the INSDC vocabulary; an unknown label anywhere is
// an error. Duplicate keys resolve last write wins in file order,
// including rna_type_mapping keys that only collide after
// normalization.
func ParseCuration(r io.Reader) (*Curation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading curation data: %w", err)
	}

	var doc curationDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding curation data: %w", err)
	}
	if doc.Hardcoded == nil {
		return nil, fmt.Errorf("curation data missing %q section", "hardcoded")
	}
	if len(doc.InformativeNames) == 0 {
		return nil, fmt.Errorf("curation data missing %q section", "informative_names")
	}
	if len(doc.RNATypeMapping) == 0 {
		return nil, fmt.Errorf("curation data missing %q section", "rna_type_mapping")
	}
	if doc.Assignments == nil {
		return nil, fmt.Errorf("curation data missing %q section", "assignments")
	}

	c := &Curation{
		Manual:  make(map[string][]insdc.RNAType, len(doc.Hardcoded)),
		SOTerms: make(map[string]insdc.RNAType, len(doc.Assignments)),
	}

	for accession, raw := range doc.Hardcoded {
		labels, err := decodeLabelValue(raw)
		if err != nil {
			return nil, fmt.Errorf("hardcoded %s: %w", accession, err)
		}
		types := make([]insdc.RNAType, 0, len(labels))
		for _, label := range labels {
			t, err := insdc.Parse(label)
			if err != nil {
				return nil, fmt.Errorf("hardcoded %s: %w", accession, err)
			}
			types = append(types, t)
		}
		c.Manual[accession] = types
	}

	patterns, err := decodeOrderedPatterns(doc.InformativeNames)
	if err != nil {
		return nil, fmt.Errorf("informative_names: %w", err)
	}
	c.NamePatterns = patterns

	// Distinct file keys can normalize to the same lookup key, so the
	// section is decoded in file order rather than ranged as a map.
	mappings, err := decodeOrderedEntries(doc.RNATypeMapping)
	if err != nil {
		return nil, fmt.Errorf("rna_type_mapping: %w", err)
	}
	c.RNATypes = make(map[string]insdc.RNAType, len(mappings))
	for _, e := range mappings {
		t, err := insdc.Parse(e.Value)
		if err != nil {
			return nil, fmt.Errorf("rna_type_mapping %q: %w", e.Key, err)
		}
		c.RNATypes[NormalizeRNAType(e.Key)] = t
	}

	for id, label := range doc.Assignments {
		t, err := insdc.Parse(label)
		if err != nil {
			return nil, fmt.Errorf("assignments %s: %w", id, err)
		}
		c.SOTerms[id] = t
	}

	return c, nil
}

// LoadCuration reads and parses the curation file at path.
func LoadCuration(path string) (*Curation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening curation file: %w", err)
	}
	defer f.Close()

	c, err := ParseCuration(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return c, nil
}

// decodeLabelValue accepts the two value shapes the hardcoded section
// allows: a single label string or an array of labels. A JSON null
// decodes to no labels.
func decodeLabelValue(raw json.RawMessage) ([]string, error) {
	var single *string
	if err := json.Unmarshal(raw, &single); err == nil {
		if single == nil {
			return nil, nil
		}
		return []string{*single}, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	return nil, fmt.Errorf("value %s must be a label or an array of labels", raw)
}

// curationEntry is one key/value pair of a curation section, in file
// order.
type curationEntry struct {
	Key   string
	Value string
}

// decodeOrderedEntries walks a JSON object token by token so the entry
// order of the file survives decoding.
func decodeOrderedEntries(raw json.RawMessage) ([]curationEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decoding section: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("section must be an object, got %v", tok)
	}

	var entries []curationEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("key must be a string, got %v", keyTok)
		}

		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%q: decoding value: %w", key, err)
		}
		entries = append(entries, curationEntry{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decoding section: %w", err)
	}

	return entries, nil
}

// decodeOrderedPatterns decodes the informative_names section. Marker
// order is part of the curated data; a duplicate marker keeps its
// original position but takes the later label.
func decodeOrderedPatterns(raw json.RawMessage) ([]NamePattern, error) {
	entries, err := decodeOrderedEntries(raw)
	if err != nil {
		return nil, err
	}

	var (
		patterns []NamePattern
		index    = make(map[string]int)
	)
	for _, e := range entries {
		t, err := insdc.Parse(e.Value)
		if err != nil {
			return nil, fmt.Errorf("marker %q: %w", e.Key, err)
		}
		if i, seen := index[e.Key]; seen {
			patterns[i].Type = t
			continue
		}
		index[e.Key] = len(patterns)
		patterns = append(patterns, NamePattern{Marker: e.Key, Type: t})
	}
	return patterns, nil
}

// NormalizeRNAType canonicalizes a raw Rfam type string into lookup key
// form: components split on semicolons, trimmed, and re-joined as
// "a; b; c" with no trailing separator. Cosmetic spacing differences
// between the dump and the curation file must not break matching.
func NormalizeRNAType(raw string) string {
	parts := strings.Split(raw, ";")
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, "; ")
}
