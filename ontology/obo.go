package ontology

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseOBO reads an OBO 1.2 ontology and builds a Graph from its [Term]
// stanzas. Only the id, name, is_a, relationship, and is_obsolete tags
// are consumed; obsolete terms are dropped. Both is_a targets and typed
// relationship targets become parents, since the ancestor search treats
// every upward edge the same way.
func ParseOBO(r io.Reader) (*Graph, error) {
	var (
		terms    []Term
		current  Term
		inTerm   bool
		obsolete bool
	)

	flush := func() {
		if inTerm && !obsolete && current.ID != "" {
			terms = append(terms, current)
		}
		current = Term{}
		obsolete = false
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "[") {
			flush()
			inTerm = line == "[Term]"
			continue
		}
		if !inTerm {
			// Header lines and non-term stanza bodies.
			continue
		}

		tag, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: malformed tag-value pair %q", lineNo, line)
		}
		value = strings.TrimSpace(value)

		switch tag {
		case "id":
			current.ID = value
		case "name":
			current.Name = value
		case "is_a":
			if target := firstToken(value); target != "" {
				current.Parents = append(current.Parents, target)
			}
		case "relationship":
			// relationship: part_of SO:0000673 ! transcript
			fields := strings.Fields(stripTrailingComment(value))
			if len(fields) >= 2 {
				current.Parents = append(current.Parents, fields[1])
			}
		case "is_obsolete":
			obsolete = strings.HasPrefix(value, "true")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ontology: %w", err)
	}
	flush()

	return NewGraph(terms), nil
}

// LoadGraph parses the OBO file at path into a Graph.
func LoadGraph(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ontology file: %w", err)
	}
	defer f.Close()

	g, err := ParseOBO(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return g, nil
}

// stripTrailingComment drops the " ! human readable" suffix OBO allows
// after identifier values.
func stripTrailingComment(s string) string {
	if i := strings.Index(s, "!"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// firstToken returns the first whitespace-delimited token of an
// identifier value, with any trailing comment removed.
func firstToken(s string) string {
	fields := strings.Fields(stripTrailingComment(s))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
