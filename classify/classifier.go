package classify

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rnatools/rfamtype/ontology"
	"github.com/rnatools/rfamtype/rfam"
	"github.com/rnatools/rfamtype/vocabulary/insdc"
)

// Result is the classification outcome for one family.
type Result struct {
	// Accession is the family the result belongs to.
	Accession string

	// Method is the cascade rule that produced the labels.
	Method Method

	// Types holds the assigned labels, deduplicated and sorted. Empty
	// for fallback results.
	Types []insdc.RNAType
}

// Fault records a family the cascade could not classify because of a
// data-integrity problem in its inputs.
type Fault struct {
	Accession string
	Err       error
}

// Classifier runs the rule cascade. It is read-only after construction
// and safe to reuse across families.
type Classifier struct {
	curation *Curation
	graph    *ontology.Graph
	rules    []rule
}

// New builds a Classifier over the curation tables and ontology graph.
func New(curation *Curation, graph *ontology.Graph) (*Classifier, error) {
	if curation == nil {
		return nil, errors.New("curation tables are required")
	}
	if graph == nil {
		return nil, errors.New("ontology graph is required")
	}

	c := &Classifier{curation: curation, graph: graph}
	c.rules = []rule{
		{MethodManual, c.manualRule},
		{MethodName, c.nameRule},
		{MethodSOTerm, c.soTermRule},
		{MethodRNAType, c.rnaTypeRule},
		{MethodSOSearch, c.soSearchRule},
	}
	return c, nil
}

// Classify runs the cascade for one family. The first rule returning
// any label wins; when none does, the result carries the fallback
// method and no labels. An error means a data-integrity fault, not an
// unclassified family.
func (c *Classifier) Classify(f rfam.Family) (Result, error) {
	for _, r := range c.rules {
		found, err := r.apply(f)
		if err != nil {
			return Result{}, fmt.Errorf("%s rule for %s: %w", r.method, f.Accession, err)
		}
		if len(found) > 0 {
			return Result{
				Accession: f.Accession,
				Method:    r.method,
				Types:     canonicalize(found),
			}, nil
		}
	}

	return Result{Accession: f.Accession, Method: MethodFallback}, nil
}

// ClassifyAll classifies every family independently. Faulted families
// are collected and skipped; they never abort the batch. Results keep
// the input family order.
func (c *Classifier) ClassifyAll(families []rfam.Family) ([]Result, []Fault) {
	results := make([]Result, 0, len(families))
	var faults []Fault

	for _, f := range families {
		res, err := c.Classify(f)
		if err != nil {
			faults = append(faults, Fault{Accession: f.Accession, Err: err})
			continue
		}
		results = append(results, res)
	}
	return results, faults
}

// canonicalize deduplicates a winning rule's labels, drops the vague
// members when another label coexists (misc_RNA first, then other, so
// exactly {misc_RNA, other} resolves to other), and sorts.
func canonicalize(found []insdc.RNAType) []insdc.RNAType {
	set := make(map[insdc.RNAType]bool, len(found))
	for _, t := range found {
		set[t] = true
	}

	if len(set) > 1 && set[insdc.MiscRNA] {
		delete(set, insdc.MiscRNA)
	}
	if len(set) > 1 && set[insdc.Other] {
		delete(set, insdc.Other)
	}

	types := make([]insdc.RNAType, 0, len(set))
	for t := range set {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
