// Package rfam loads sequence families from Rfam database dump files.
//
// Two dumps feed the pipeline: family.txt, the tab-delimited family
// table (ISO-8859-1 encoded, one row per family), and database_link.txt,
// the whitespace-delimited cross-reference table from which Sequence
// Ontology links are taken. Everything else in the dumps is ignored.
package rfam

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
)

// family.txt column offsets. The dump carries many more columns; only
// these three matter here.
const (
	colAccession = 0
	colName      = 1
	colRNAType   = 18
)

// minFamilyColumns is the narrowest row ParseFamilies accepts.
const minFamilyColumns = 19

// Family is one Rfam sequence family as read from the database dumps.
// Families are immutable for the duration of a run.
type Family struct {
	// Accession is the stable family id, e.g. "RF00001".
	Accession string

	// Name is the short family name, e.g. "5S_rRNA".
	Name string

	// RNAType is the raw semicolon-separated Rfam type string,
	// e.g. "Gene; snRNA; snoRNA; CD-box;". May be empty.
	RNAType string

	// SOTerms holds the Sequence Ontology ids linked to the family,
	// sorted for stable iteration. May be empty.
	SOTerms []string
}

// ParseFamilies reads the family table from r, attaching SO term links
// from the links map. Rows keep their file order. The reader must
// already be decoded to UTF-8; LoadFamilies handles the ISO-8859-1
// transcoding of the raw dump.
func ParseFamilies(r io.Reader, links map[string][]string) ([]Family, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var families []Family
	lineNo := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading family table: %w", err)
		}
		lineNo++

		if len(row) < minFamilyColumns {
			return nil, fmt.Errorf("family row %d: expected at least %d columns, got %d", lineNo, minFamilyColumns, len(row))
		}

		accession := row[colAccession]
		families = append(families, Family{
			Accession: accession,
			Name:      row[colName],
			RNAType:   row[colRNAType],
			SOTerms:   links[accession],
		})
	}
	return families, nil
}

// LoadFamilies reads both dumps and assembles the family list: the link
// table first, then the family table with links attached.
func LoadFamilies(familyPath, linkPath string) ([]Family, error) {
	links, err := LoadLinks(linkPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(familyPath)
	if err != nil {
		return nil, fmt.Errorf("opening family file: %w", err)
	}
	defer f.Close()

	decoded := charmap.ISO8859_1.NewDecoder().Reader(f)
	families, err := ParseFamilies(decoded, links)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", familyPath, err)
	}
	return families, nil
}
