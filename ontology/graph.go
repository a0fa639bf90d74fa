// Package ontology holds the Sequence Ontology term graph and the OBO
// parser that builds it.
package ontology

import "fmt"

// Term is a single ontology term.
type Term struct {
	// ID is the term accession, e.g. "SO:0000655".
	ID string

	// Name is the human-readable term name.
	Name string

	// Parents holds the term ids this term points to upward, in file
	// order: one per is_a or typed relationship line. Empty for roots.
	// Diamond inheritance is legal.
	Parents []string
}

// Graph is a read-only directed graph of ontology terms. Edges point
// upward from a term to its parents. Construction does not reject
// cycles; traversals must carry a visited set.
type Graph struct {
	terms map[string]Term
}

// NewGraph builds a graph from parsed terms. A later term with a
// duplicate id replaces the earlier one.
func NewGraph(terms []Term) *Graph {
	g := &Graph{terms: make(map[string]Term, len(terms))}
	for _, t := range terms {
		g.terms[t.ID] = t
	}
	return g
}

// Term looks up a term by id.
func (g *Graph) Term(id string) (Term, error) {
	t, ok := g.terms[id]
	if !ok {
		return Term{}, fmt.Errorf("%w: %s", ErrUnknownTerm, id)
	}
	return t, nil
}

// Has reports whether id is in the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.terms[id]
	return ok
}

// Parents returns the direct parent ids of id. It returns nil for root
// terms and for ids not in the graph; callers that must distinguish the
// two use Has or Term.
func (g *Graph) Parents(id string) []string {
	return g.terms[id].Parents
}

// Len returns the number of terms in the graph.
func (g *Graph) Len() int {
	return len(g.terms)
}
