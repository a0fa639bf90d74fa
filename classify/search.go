package classify

import (
	"fmt"

	"github.com/rnatools/rfamtype/ontology"
	"github.com/rnatools/rfamtype/vocabulary/insdc"
)

// nearestLabeled walks upward from the start terms level by level and
// returns the labels of the nearest ancestors present in the table.
// All hits at the winning distance are included; a hit at distance N
// preempts everything at distance N+1. The walk is unbounded and the
// visited set keeps it terminating on diamonds and cycles.
//
// Start terms sit at distance zero, so a start term with a table entry
// wins immediately. A start term missing from the graph is a
// data-integrity fault. A parent reference pointing outside the graph
// is treated as an edge out of the loaded ontology and skipped.
func nearestLabeled(g *ontology.Graph, table map[string]insdc.RNAType, start []string) ([]insdc.RNAType, error) {
	for _, id := range start {
		if !g.Has(id) {
			return nil, fmt.Errorf("%w: %s", ontology.ErrUnknownTerm, id)
		}
	}

	visited := make(map[string]bool, len(start))
	level := make([]string, 0, len(start))
	for _, id := range start {
		if visited[id] {
			continue
		}
		visited[id] = true
		level = append(level, id)
	}

	for len(level) > 0 {
		var found []insdc.RNAType
		for _, id := range level {
			if label, ok := table[id]; ok {
				found = append(found, label)
			}
		}
		if len(found) > 0 {
			return found, nil
		}

		var next []string
		for _, id := range level {
			for _, parent := range g.Parents(id) {
				if visited[parent] || !g.Has(parent) {
					continue
				}
				visited[parent] = true
				next = append(next, parent)
			}
		}
		level = next
	}

	return nil, nil
}
