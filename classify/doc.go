// Package classify assigns INSDC RNA types to Rfam families.
//
// The classifier is a rule cascade. Rules run in a fixed priority order
// and the first rule returning any label wins:
//
//	manual    curated per-family override by accession
//	name      ordered substring markers matched against the family name
//	so-term   direct lookup of the family's SO terms in the curation table
//	rna-type  lookup of the family's normalized Rfam type string
//	so-search breadth-first walk up the ontology to the nearest labeled
//	          ancestors of the family's SO terms
//	fallback  terminal; succeeds with an empty label set
//
// Classification is a pure function of the family, the curation tables,
// and the ontology graph. Rules perform no I/O and share no mutable
// state, so identical inputs always produce identical results.
//
// A family whose attached SO terms are missing from the ontology is a
// data-integrity fault: Classify reports it as an error and ClassifyAll
// collects it and moves on. An unmatched family is not a fault; it gets
// the fallback method and no labels.
package classify
