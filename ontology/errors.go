package ontology

import "errors"

// Common ontology errors.
var (
	// ErrUnknownTerm is returned when a term id is not in the graph.
	ErrUnknownTerm = errors.New("unknown ontology term")
)
