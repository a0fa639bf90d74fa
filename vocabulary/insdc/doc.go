// Package insdc defines the INSDC ncRNA_class controlled vocabulary.
//
// The International Nucleotide Sequence Database Collaboration feature
// table restricts the ncRNA_class qualifier to a closed set of values.
// Every label the annotation pipeline emits must be a member of this set,
// so curation data is validated against it at load time and classification
// results carry RNAType values rather than raw strings.
//
// The vocabulary is flat. Relationships between RNA classes come from the
// Sequence Ontology graph, not from this package.
//
// # Catch-all members
//
// Two members are deliberately vague: misc_RNA and other. They are legal
// outputs, but downstream canonicalization prefers dropping them when a
// more specific label is also present (see the classify package).
//
// # Aliases
//
// Curation files written against older feature-table releases use
// "antisense" for what is now "antisense_RNA". Parse accepts the alias and
// normalizes it; no other spelling variation is tolerated.
package insdc
