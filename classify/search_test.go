package classify

import (
	"errors"
	"sort"
	"testing"

	"github.com/rnatools/rfamtype/ontology"
	"github.com/rnatools/rfamtype/vocabulary/insdc"
)

func sortedTypes(ts []insdc.RNAType) []insdc.RNAType {
	out := append([]insdc.RNAType(nil), ts...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestNearestLabeledDirectHit(t *testing.T) {
	g := ontology.NewGraph([]ontology.Term{
		{ID: "SO:2", Name: "parent"},
		{ID: "SO:1", Name: "leaf", Parents: []string{"SO:2"}},
	})
	table := map[string]insdc.RNAType{
		"SO:1": insdc.SnoRNA,
		"SO:2": insdc.RRNA,
	}

	got, err := nearestLabeled(g, table, []string{"SO:1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The start term itself is the nearest hit; the labeled parent is
	// never reached.
	if len(got) != 1 || got[0] != insdc.SnoRNA {
		t.Errorf("got %v, want [snoRNA]", got)
	}
}

func TestNearestLabeledParentHit(t *testing.T) {
	g := ontology.NewGraph([]ontology.Term{
		{ID: "SO:3", Name: "grandparent"},
		{ID: "SO:2", Name: "parent", Parents: []string{"SO:3"}},
		{ID: "SO:1", Name: "leaf", Parents: []string{"SO:2"}},
	})
	table := map[string]insdc.RNAType{"SO:2": insdc.RRNA}

	got, err := nearestLabeled(g, table, []string{"SO:1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != insdc.RRNA {
		t.Errorf("got %v, want [rRNA]", got)
	}
}

func TestNearestLabeledNearerPreemptsFarther(t *testing.T) {
	g := ontology.NewGraph([]ontology.Term{
		{ID: "SO:3", Name: "grandparent"},
		{ID: "SO:2", Name: "parent", Parents: []string{"SO:3"}},
		{ID: "SO:1", Name: "leaf", Parents: []string{"SO:2"}},
	})
	table := map[string]insdc.RNAType{
		"SO:2": insdc.SnRNA,
		"SO:3": insdc.RRNA,
	}

	got, err := nearestLabeled(g, table, []string{"SO:1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != insdc.SnRNA {
		t.Errorf("got %v, want [snRNA]", got)
	}
}

func TestNearestLabeledTiesUnion(t *testing.T) {
	g := ontology.NewGraph([]ontology.Term{
		{ID: "SO:2", Name: "left parent"},
		{ID: "SO:3", Name: "right parent"},
		{ID: "SO:1", Name: "leaf", Parents: []string{"SO:2", "SO:3"}},
	})
	table := map[string]insdc.RNAType{
		"SO:2": insdc.SnoRNA,
		"SO:3": insdc.SnRNA,
	}

	got, err := nearestLabeled(g, table, []string{"SO:1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []insdc.RNAType{insdc.SnRNA, insdc.SnoRNA}
	gotSorted := sortedTypes(got)
	if len(gotSorted) != 2 || gotSorted[0] != want[0] || gotSorted[1] != want[1] {
		t.Errorf("got %v, want %v", gotSorted, want)
	}
}

func TestNearestLabeledMultiSource(t *testing.T) {
	// s1's parent is labeled at distance 1; s2 only reaches a label at
	// distance 2. The distance-1 hit wins across sources.
	g := ontology.NewGraph([]ontology.Term{
		{ID: "SO:10", Name: "s1 parent"},
		{ID: "SO:21", Name: "s2 grandparent"},
		{ID: "SO:20", Name: "s2 parent", Parents: []string{"SO:21"}},
		{ID: "SO:1", Name: "s1", Parents: []string{"SO:10"}},
		{ID: "SO:2", Name: "s2", Parents: []string{"SO:20"}},
	})
	table := map[string]insdc.RNAType{
		"SO:10": insdc.TRNA,
		"SO:21": insdc.RRNA,
	}

	got, err := nearestLabeled(g, table, []string{"SO:1", "SO:2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != insdc.TRNA {
		t.Errorf("got %v, want [tRNA]", got)
	}
}

func TestNearestLabeledDiamond(t *testing.T) {
	g := ontology.NewGraph([]ontology.Term{
		{ID: "SO:4", Name: "apex"},
		{ID: "SO:2", Name: "left", Parents: []string{"SO:4"}},
		{ID: "SO:3", Name: "right", Parents: []string{"SO:4"}},
		{ID: "SO:1", Name: "base", Parents: []string{"SO:2", "SO:3"}},
	})
	table := map[string]insdc.RNAType{"SO:4": insdc.RRNA}

	got, err := nearestLabeled(g, table, []string{"SO:1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The apex is visited once despite two converging paths.
	if len(got) != 1 || got[0] != insdc.RRNA {
		t.Errorf("got %v, want [rRNA]", got)
	}
}

func TestNearestLabeledCycleTerminates(t *testing.T) {
	g := ontology.NewGraph([]ontology.Term{
		{ID: "SO:1", Name: "a", Parents: []string{"SO:2"}},
		{ID: "SO:2", Name: "b", Parents: []string{"SO:1"}},
	})

	got, err := nearestLabeled(g, map[string]insdc.RNAType{}, []string{"SO:1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestNearestLabeledNoLabeledAncestor(t *testing.T) {
	g := ontology.NewGraph([]ontology.Term{
		{ID: "SO:2", Name: "root"},
		{ID: "SO:1", Name: "leaf", Parents: []string{"SO:2"}},
	})

	got, err := nearestLabeled(g, map[string]insdc.RNAType{"SO:9": insdc.RRNA}, []string{"SO:1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestNearestLabeledUnknownStartTerm(t *testing.T) {
	g := ontology.NewGraph([]ontology.Term{
		{ID: "SO:1", Name: "present"},
	})

	_, err := nearestLabeled(g, map[string]insdc.RNAType{}, []string{"SO:1", "SO:404"})
	if err == nil {
		t.Fatal("expected error for unknown start term, got nil")
	}
	if !errors.Is(err, ontology.ErrUnknownTerm) {
		t.Errorf("error %v does not wrap ErrUnknownTerm", err)
	}
}

func TestNearestLabeledDanglingParentSkipped(t *testing.T) {
	// SO:1's parent points outside the loaded ontology. The edge is
	// ignored rather than faulted.
	g := ontology.NewGraph([]ontology.Term{
		{ID: "SO:1", Name: "leaf", Parents: []string{"SO:404"}},
	})

	got, err := nearestLabeled(g, map[string]insdc.RNAType{"SO:404": insdc.RRNA}, []string{"SO:1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
