package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rnatools/rfamtype/vocabulary/insdc"
)

func TestLoadCuration(t *testing.T) {
	c, err := LoadCuration("testdata/curation.json")
	require.NoError(t, err)

	assert.Len(t, c.Manual, 5)
	assert.Len(t, c.NamePatterns, 10)
	assert.Len(t, c.RNATypes, 10)
	assert.Len(t, c.SOTerms, 14)

	// Single label and label list both decode.
	assert.Equal(t, []insdc.RNAType{insdc.VaultRNA}, c.Manual["RF00006"])
	assert.Equal(t, []insdc.RNAType{insdc.LncRNA, insdc.MiscRNA}, c.Manual["RF02144"])

	// Retired spellings normalize on load.
	assert.Equal(t, []insdc.RNAType{insdc.AntisenseRNA}, c.Manual["RF00039"])
	assert.Equal(t, insdc.AntisenseRNA, c.RNATypes["Gene; antisense"])

	// Mapping keys are stored in normalized form.
	assert.Equal(t, insdc.RRNA, c.RNATypes["Gene; rRNA"])
	assert.NotContains(t, c.RNATypes, "Gene; rRNA;")

	assert.Equal(t, insdc.YRNA, c.SOTerms["SO:0000405"])
}

func TestParseCurationMarkerOrder(t *testing.T) {
	doc := `{
		"hardcoded": {},
		"informative_names": {
			"snoRNA": "snoRNA",
			"sno": "snoRNA",
			"mir-": "miRNA"
		},
		"rna_type_mapping": {},
		"assignments": {}
	}`

	c, err := ParseCuration(strings.NewReader(doc))
	require.NoError(t, err)

	markers := make([]string, len(c.NamePatterns))
	for i, p := range c.NamePatterns {
		markers[i] = p.Marker
	}
	assert.Equal(t, []string{"snoRNA", "sno", "mir-"}, markers)
}

func TestParseCurationDuplicateMarker(t *testing.T) {
	doc := `{
		"hardcoded": {},
		"informative_names": {
			"sno": "snoRNA",
			"mir-": "miRNA",
			"sno": "scRNA"
		},
		"rna_type_mapping": {},
		"assignments": {}
	}`

	c, err := ParseCuration(strings.NewReader(doc))
	require.NoError(t, err)

	// The later value wins but the marker keeps its position.
	require.Len(t, c.NamePatterns, 2)
	assert.Equal(t, NamePattern{Marker: "sno", Type: insdc.ScRNA}, c.NamePatterns[0])
	assert.Equal(t, NamePattern{Marker: "mir-", Type: insdc.MiRNA}, c.NamePatterns[1])
}

func TestParseCurationRNATypeKeyCollision(t *testing.T) {
	doc := `{
		"hardcoded": {},
		"informative_names": {"x": "rRNA"},
		"rna_type_mapping": {
			"Gene; rRNA;": "tRNA",
			"Gene ; rRNA": "rRNA"
		},
		"assignments": {}
	}`

	// Both keys normalize to "Gene; rRNA". The later file entry must win
	// on every load.
	for i := 0; i < 50; i++ {
		c, err := ParseCuration(strings.NewReader(doc))
		require.NoError(t, err)
		require.Len(t, c.RNATypes, 1)
		require.Equal(t, insdc.RRNA, c.RNATypes["Gene; rRNA"])
	}
}

func TestParseCurationUnknownLabel(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name: "hardcoded",
			doc: `{"hardcoded": {"RF00001": "mRNA"}, "informative_names": {"x": "rRNA"},
				"rna_type_mapping": {}, "assignments": {}}`,
			wantErr: "hardcoded RF00001",
		},
		{
			name: "informative_names",
			doc: `{"hardcoded": {}, "informative_names": {"x": "not_a_type"},
				"rna_type_mapping": {}, "assignments": {}}`,
			wantErr: `marker "x"`,
		},
		{
			name: "rna_type_mapping",
			doc: `{"hardcoded": {}, "informative_names": {"x": "rRNA"},
				"rna_type_mapping": {"Gene;": "RNA"}, "assignments": {}}`,
			wantErr: "rna_type_mapping",
		},
		{
			name: "assignments",
			doc: `{"hardcoded": {}, "informative_names": {"x": "rRNA"},
				"rna_type_mapping": {}, "assignments": {"SO:1": "bogus"}}`,
			wantErr: "assignments SO:1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCuration(strings.NewReader(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParseCurationMissingSection(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"hardcoded", `{"informative_names": {"x": "rRNA"}, "rna_type_mapping": {}, "assignments": {}}`},
		{"informative_names", `{"hardcoded": {}, "rna_type_mapping": {}, "assignments": {}}`},
		{"rna_type_mapping", `{"hardcoded": {}, "informative_names": {"x": "rRNA"}, "assignments": {}}`},
		{"assignments", `{"hardcoded": {}, "informative_names": {"x": "rRNA"}, "rna_type_mapping": {}}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCuration(strings.NewReader(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.name)
		})
	}
}

func TestParseCurationManualValueShapes(t *testing.T) {
	doc := `{
		"hardcoded": {
			"RF00001": "rRNA",
			"RF00002": ["snoRNA", "snRNA"],
			"RF00003": null,
			"RF00004": 42
		},
		"informative_names": {"x": "rRNA"},
		"rna_type_mapping": {},
		"assignments": {}
	}`

	_, err := ParseCuration(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RF00004")

	doc = strings.Replace(doc, `"RF00004": 42`, `"RF00004": "tRNA"`, 1)
	c, err := ParseCuration(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, []insdc.RNAType{insdc.RRNA}, c.Manual["RF00001"])
	assert.Equal(t, []insdc.RNAType{insdc.SnoRNA, insdc.SnRNA}, c.Manual["RF00002"])
	assert.Empty(t, c.Manual["RF00003"])
}

func TestParseCurationBadJSON(t *testing.T) {
	_, err := ParseCuration(strings.NewReader("{not json"))
	require.Error(t, err)
}

func TestNormalizeRNAType(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Gene; rRNA;", "Gene; rRNA"},
		{"Gene; rRNA", "Gene; rRNA"},
		{"Gene;rRNA;", "Gene; rRNA"},
		{" Gene ; rRNA ; ", "Gene; rRNA"},
		{"Gene; snRNA; snoRNA; CD-box;", "Gene; snRNA; snoRNA; CD-box"},
		{"Gene;", "Gene"},
		{";;", ""},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			if got := NormalizeRNAType(tc.raw); got != tc.want {
				t.Errorf("NormalizeRNAType(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}
