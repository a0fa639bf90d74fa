package rfam

import (
	"strings"
	"testing"
)

func TestParseLinks(t *testing.T) {
	doc := strings.Join([]string{
		"RF00001\tSO\t0000652\thttp://song.sourceforge.net",
		"RF00001\tGO\t0005840\tribosome",
		"RF00001\tSO\t0000652",
		"RF00005\tSO\t0000253",
		"RF00005\tSO\t0000036",
		"",
	}, "\n")

	links, err := ParseLinks(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseLinks unexpected error: %v", err)
	}

	if len(links) != 2 {
		t.Fatalf("got %d accessions, want 2", len(links))
	}

	// Duplicate SO rows collapse, GO rows are ignored.
	got := links["RF00001"]
	if len(got) != 1 || got[0] != "SO:0000652" {
		t.Errorf("RF00001: got %v, want [SO:0000652]", got)
	}

	// Term ids come back sorted.
	got = links["RF00005"]
	want := []string{"SO:0000036", "SO:0000253"}
	if len(got) != len(want) {
		t.Fatalf("RF00005: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("RF00005[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseLinksMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"single column", "RF00001\n"},
		{"so row without id", "RF00001 SO\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseLinks(strings.NewReader(tc.doc)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestLoadLinksMissingFile(t *testing.T) {
	if _, err := LoadLinks("testdata/no-such-file.txt"); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}
