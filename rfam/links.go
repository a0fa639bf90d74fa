package rfam

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// soDatabase is the database column value marking a Sequence Ontology
// cross-reference in the link dump.
const soDatabase = "SO"

// ParseLinks reads the database_link dump and returns the SO term ids
// attached to each family accession, sorted and deduplicated. Rows
// referencing other databases are ignored.
func ParseLinks(r io.Reader) (map[string][]string, error) {
	seen := make(map[string]map[string]bool)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("link line %d: expected at least 2 columns, got %d", lineNo, len(fields))
		}
		if fields[1] != soDatabase {
			continue
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("link line %d: SO row missing term id", lineNo)
		}

		accession := fields[0]
		if seen[accession] == nil {
			seen[accession] = make(map[string]bool)
		}
		seen[accession]["SO:"+fields[2]] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading link file: %w", err)
	}

	links := make(map[string][]string, len(seen))
	for accession, ids := range seen {
		terms := make([]string, 0, len(ids))
		for id := range ids {
			terms = append(terms, id)
		}
		sort.Strings(terms)
		links[accession] = terms
	}
	return links, nil
}

// LoadLinks parses the link dump at path.
func LoadLinks(path string) (map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening link file: %w", err)
	}
	defer f.Close()

	links, err := ParseLinks(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return links, nil
}
