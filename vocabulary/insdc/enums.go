package insdc

import (
	"fmt"
	"sort"
)

// RNAType is a single label from the INSDC ncRNA_class vocabulary.
type RNAType string

const (
	// RNaseMRPRNA is the RNA component of ribonuclease MRP.
	RNaseMRPRNA RNAType = "RNase_MRP_RNA"

	// RNasePRNA is the catalytic RNA component of ribonuclease P.
	RNasePRNA RNAType = "RNase_P_RNA"

	// SRPRNA is the RNA component of the signal recognition particle.
	SRPRNA RNAType = "SRP_RNA"

	// YRNA is a component of the Ro ribonucleoprotein particle.
	YRNA RNAType = "Y_RNA"

	// AntisenseRNA regulates gene expression by base pairing with a
	// complementary transcript.
	AntisenseRNA RNAType = "antisense_RNA"

	// AutocatalyticallySplicedIntron is a self-splicing intron.
	AutocatalyticallySplicedIntron RNAType = "autocatalytically_spliced_intron"

	// GuideRNA directs enzymatic modification or editing of other RNAs.
	GuideRNA RNAType = "guide_RNA"

	// HammerheadRibozyme is a small self-cleaving ribozyme.
	HammerheadRibozyme RNAType = "hammerhead_ribozyme"

	// LncRNA is a long non-coding RNA.
	LncRNA RNAType = "lncRNA"

	// MiRNA is a microRNA.
	MiRNA RNAType = "miRNA"

	// NcRNA is a generic non-coding RNA with no more specific class.
	NcRNA RNAType = "ncRNA"

	// MiscRNA is a transcript of unknown or unclassified function.
	// Canonicalization drops it when a more specific label coexists.
	MiscRNA RNAType = "misc_RNA"

	// Other is the feature-table catch-all for classes the vocabulary
	// does not name. Canonicalization drops it after MiscRNA.
	Other RNAType = "other"

	// PrecursorRNA is an unprocessed primary transcript.
	PrecursorRNA RNAType = "precursor_RNA"

	// PiRNA is a Piwi-interacting RNA.
	PiRNA RNAType = "piRNA"

	// RasiRNA is a repeat-associated small interfering RNA.
	RasiRNA RNAType = "rasiRNA"

	// Ribozyme is a catalytic RNA outside the named ribozyme classes.
	Ribozyme RNAType = "ribozyme"

	// ScRNA is a small cytoplasmic RNA.
	ScRNA RNAType = "scRNA"

	// SiRNA is a small interfering RNA.
	SiRNA RNAType = "siRNA"

	// SnRNA is a small nuclear RNA, typically spliceosomal.
	SnRNA RNAType = "snRNA"

	// SnoRNA is a small nucleolar RNA guiding rRNA modification.
	SnoRNA RNAType = "snoRNA"

	// TelomeraseRNA is the template RNA component of telomerase.
	TelomeraseRNA RNAType = "telomerase_RNA"

	// VaultRNA is a component of the vault ribonucleoprotein particle.
	VaultRNA RNAType = "vault_RNA"

	// RRNA is a ribosomal RNA.
	RRNA RNAType = "rRNA"

	// TRNA is a transfer RNA.
	TRNA RNAType = "tRNA"

	// TmRNA is a transfer-messenger RNA rescuing stalled ribosomes.
	TmRNA RNAType = "tmRNA"
)

// members holds every vocabulary member for O(1) validation.
var members = map[RNAType]bool{
	RNaseMRPRNA:                    true,
	RNasePRNA:                      true,
	SRPRNA:                         true,
	YRNA:                           true,
	AntisenseRNA:                   true,
	AutocatalyticallySplicedIntron: true,
	GuideRNA:                       true,
	HammerheadRibozyme:             true,
	LncRNA:                         true,
	MiRNA:                          true,
	NcRNA:                          true,
	MiscRNA:                        true,
	Other:                          true,
	PrecursorRNA:                   true,
	PiRNA:                          true,
	RasiRNA:                        true,
	Ribozyme:                       true,
	ScRNA:                          true,
	SiRNA:                          true,
	SnRNA:                          true,
	SnoRNA:                         true,
	TelomeraseRNA:                  true,
	VaultRNA:                       true,
	RRNA:                           true,
	TRNA:                           true,
	TmRNA:                          true,
}

// aliases maps retired feature-table spellings to current members.
var aliases = map[string]RNAType{
	"antisense": AntisenseRNA,
}

// Parse validates a raw label string against the vocabulary, normalizing
// known aliases. It returns an error for any string that is not a member.
func Parse(s string) (RNAType, error) {
	if t, ok := aliases[s]; ok {
		return t, nil
	}
	t := RNAType(s)
	if !members[t] {
		return "", fmt.Errorf("unknown insdc rna type %q", s)
	}
	return t, nil
}

// Valid reports whether t is a member of the vocabulary. Aliases are not
// valid; they must go through Parse.
func (t RNAType) Valid() bool {
	return members[t]
}

// String returns the label as it appears in the feature table.
func (t RNAType) String() string {
	return string(t)
}

// All returns every vocabulary member in lexical order.
func All() []RNAType {
	all := make([]RNAType, 0, len(members))
	for t := range members {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	return all
}
