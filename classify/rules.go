package classify

import (
	"sort"
	"strings"

	"github.com/rnatools/rfamtype/rfam"
	"github.com/rnatools/rfamtype/vocabulary/insdc"
)

// Method identifies which cascade rule produced a result.
type Method string

const (
	// MethodManual is the curated per-family override.
	MethodManual Method = "manual"

	// MethodName matches substring markers against the family name.
	MethodName Method = "name"

	// MethodSOTerm looks the family's SO terms up directly.
	MethodSOTerm Method = "so-term"

	// MethodRNAType looks the family's Rfam type string up.
	MethodRNAType Method = "rna-type"

	// MethodSOSearch walks the ontology to the nearest labeled ancestors.
	MethodSOSearch Method = "so-search"

	// MethodFallback is the terminal rule; it always succeeds with no
	// labels.
	MethodFallback Method = "fallback"
)

// Methods lists the cascade methods in priority order, the fallback
// last.
func Methods() []Method {
	return []Method{MethodManual, MethodName, MethodSOTerm, MethodRNAType, MethodSOSearch, MethodFallback}
}

// rule is one step of the cascade: the labels it found, or none when it
// has no opinion, and an error only for data-integrity faults.
type rule struct {
	method Method
	apply  func(rfam.Family) ([]insdc.RNAType, error)
}

func (c *Classifier) manualRule(f rfam.Family) ([]insdc.RNAType, error) {
	return c.curation.Manual[f.Accession], nil
}

// nameRule scans the family name for each marker in curated order.
// Matching is case-sensitive: "mir" does not match "MIR".
func (c *Classifier) nameRule(f rfam.Family) ([]insdc.RNAType, error) {
	for _, p := range c.curation.NamePatterns {
		if strings.Contains(f.Name, p.Marker) {
			return []insdc.RNAType{p.Type}, nil
		}
	}
	return nil, nil
}

// soTermRule scans the family's SO terms in sorted order and returns
// the label of the first one present in the table.
func (c *Classifier) soTermRule(f rfam.Family) ([]insdc.RNAType, error) {
	ids := append([]string(nil), f.SOTerms...)
	sort.Strings(ids)
	for _, id := range ids {
		if label, ok := c.curation.SOTerms[id]; ok {
			return []insdc.RNAType{label}, nil
		}
	}
	return nil, nil
}

func (c *Classifier) rnaTypeRule(f rfam.Family) ([]insdc.RNAType, error) {
	if label, ok := c.curation.RNATypes[NormalizeRNAType(f.RNAType)]; ok {
		return []insdc.RNAType{label}, nil
	}
	return nil, nil
}

// soSearchRule runs the ancestor search over all attached terms. A
// result consisting of nothing but the catch-all label is discarded
// and the cascade falls through.
func (c *Classifier) soSearchRule(f rfam.Family) ([]insdc.RNAType, error) {
	if len(f.SOTerms) == 0 {
		return nil, nil
	}

	found, err := nearestLabeled(c.graph, c.curation.SOTerms, f.SOTerms)
	if err != nil {
		return nil, err
	}
	if onlyOther(found) {
		return nil, nil
	}
	return found, nil
}

// onlyOther reports whether found is non-empty and contains nothing but
// the catch-all label.
func onlyOther(found []insdc.RNAType) bool {
	if len(found) == 0 {
		return false
	}
	for _, t := range found {
		if t != insdc.Other {
			return false
		}
	}
	return true
}
