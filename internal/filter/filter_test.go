package filter_test

import (
	"testing"

	"discoprowl/internal/filter"
	"discoprowl/internal/indexer"
)

func gameHit(name string, age indexer.Value) indexer.Hit {
	return indexer.Hit{
		FileName:   name,
		Categories: []indexer.Category{{ID: 4050, Name: "PC/Games"}},
		Age:        age,
	}
}

func TestIsGame(t *testing.T) {
	tests := []struct {
		name       string
		categories []indexer.Category
		want       bool
	}{
		{"pc games", []indexer.Category{{Name: "PC/Games"}}, true},
		{"console games", []indexer.Category{{Name: "Console/Games"}}, true},
		{"uppercase pc", []indexer.Category{{Name: "PC"}}, true},
		{"substring pc", []indexer.Category{{Name: "Specials"}}, true},
		{"movies", []indexer.Category{{Name: "Movies/HD"}}, false},
		{"second category matches", []indexer.Category{{Name: "Audio"}, {Name: "Games"}}, true},
		{"empty name", []indexer.Category{{Name: ""}}, false},
		{"no categories", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.IsGame(indexer.Hit{Categories: tt.categories}); got != tt.want {
				t.Fatalf("IsGame() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPassesFilters(t *testing.T) {
	rules := filter.Rules{DisallowedKeywords: []string{"trainer"}, MaxAgeDays: 30, MaxResults: 3}

	tests := []struct {
		name  string
		hit   indexer.Hit
		query string
		want  bool
	}{
		{"whole word match", gameHit("Halo.Infinite-RUNE", indexer.IntValue(3)), "Halo", true},
		{"query trimmed and lowercased", gameHit("HALO Infinite", indexer.IntValue(3)), "  halo ", true},
		{"substring only", gameHit("Halothane.Simulator", indexer.IntValue(3)), "Halo", false},
		{"too old", gameHit("Halo.Infinite", indexer.IntValue(45)), "Halo", false},
		{"age at limit", gameHit("Halo.Infinite", indexer.IntValue(30)), "Halo", true},
		{"non numeric age", gameHit("Halo.Infinite", indexer.StringValue("N/A")), "Halo", false},
		{"absent age", gameHit("Halo.Infinite", indexer.Value{}), "Halo", false},
		{"string age", gameHit("Halo.Infinite", indexer.StringValue("5")), "Halo", true},
		{"disallowed keyword", gameHit("Halo.Trainer.v1", indexer.IntValue(3)), "Halo", false},
		{"no categories", indexer.Hit{FileName: "Halo.Infinite", Age: indexer.IntValue(1)}, "Halo", false},
		{"regex metacharacters escaped", gameHit("C++ Tycoon", indexer.IntValue(1)), "C++", false},
		{"dotted query", gameHit("F.E.A.R.Complete", indexer.IntValue(1)), "F.E.A.R", true},
		{"non-ascii leading letter", gameHit("Ōkami HD PC Repack", indexer.IntValue(5)), "Ōkami", true},
		{"non-ascii trailing letter", gameHit("cafe? café pc repack", indexer.IntValue(5)), "Café", true},
		{"non-ascii letter continues word", gameHit("haloé pc", indexer.IntValue(5)), "Halo", false},
		{"later occurrence is whole word", gameHit("Halothane Halo", indexer.IntValue(1)), "Halo", true},
		{"underscore is a word character", gameHit("Halo_Infinite", indexer.IntValue(1)), "Halo", false},
		{"digit continues word", gameHit("Halo2", indexer.IntValue(1)), "Halo", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.PassesFilters(tt.hit, tt.query, rules); got != tt.want {
				t.Fatalf("PassesFilters() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateReportsFirstFailingCheck(t *testing.T) {
	rules := filter.Rules{DisallowedKeywords: []string{"crack"}, MaxAgeDays: 10}
	matcher := filter.NewMatcher("Halo")

	notGame := indexer.Hit{FileName: "Halo.crack", Age: indexer.StringValue("bad")}
	if v := filter.Evaluate(notGame, matcher, rules); v.Reason != filter.ReasonNotGame {
		t.Fatalf("expected not_game first, got %+v", v)
	}

	keyword := gameHit("Halo.CRACK.only", indexer.StringValue("bad"))
	if v := filter.Evaluate(keyword, matcher, rules); v.Reason != filter.ReasonKeyword || v.Detail != "crack" {
		t.Fatalf("expected keyword before age, got %+v", v)
	}

	malformed := gameHit("Halo", indexer.StringValue("bad"))
	if v := filter.Evaluate(malformed, matcher, rules); v.Reason != filter.ReasonMalformedAge {
		t.Fatalf("expected malformed age, got %+v", v)
	}

	old := gameHit("Other", indexer.IntValue(11))
	if v := filter.Evaluate(old, matcher, rules); v.Reason != filter.ReasonTooOld {
		t.Fatalf("expected too_old before word match, got %+v", v)
	}

	noMatch := gameHit("Halothane", indexer.IntValue(1))
	if v := filter.Evaluate(noMatch, matcher, rules); v.Reason != filter.ReasonNoWordMatch {
		t.Fatalf("expected no_word_match, got %+v", v)
	}

	pass := gameHit("Halo", indexer.IntValue(1))
	if v := filter.Evaluate(pass, matcher, rules); !v.Passed || v.Reason != filter.ReasonNone {
		t.Fatalf("expected pass, got %+v", v)
	}
}

func TestMatcherWordBoundaries(t *testing.T) {
	tests := []struct {
		query string
		name  string
		want  bool
	}{
		{"Ōkami", "ōkami hd pc repack", true},
		{"Ōkami", "ŌKAMI", true},
		{"Ōkami", "xōkami", false},
		{"Café", "cafe? café pc repack", true},
		{"Café", "cafés", false},
		{"Halo", "haloé pc", false},
		{"Halo", "éhalo", false},
		{"Halo", "(halo)", true},
		{"aa", "aaa aa", true},
		{"aa", "aaa", false},
		{"", "anything", false},
	}
	for _, tt := range tests {
		if got := filter.NewMatcher(tt.query).Match(tt.name); got != tt.want {
			t.Errorf("NewMatcher(%q).Match(%q) = %v, want %v", tt.query, tt.name, got, tt.want)
		}
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	hits := []indexer.Hit{
		gameHit("Halo.A", indexer.IntValue(1)),
		gameHit("Halothane", indexer.IntValue(1)),
		gameHit("Halo.B", indexer.IntValue(2)),
		gameHit("Halo.C", indexer.IntValue(99)),
		gameHit("Halo.D", indexer.IntValue(3)),
	}
	got := filter.Apply(hits, "Halo", filter.Rules{MaxAgeDays: 30})
	want := []string{"Halo.A", "Halo.B", "Halo.D"}
	if len(got) != len(want) {
		t.Fatalf("expected %d hits, got %d", len(want), len(got))
	}
	for i, name := range want {
		if got[i].FileName != name {
			t.Fatalf("hit %d = %q, want %q", i, got[i].FileName, name)
		}
	}
}

func TestSelect(t *testing.T) {
	hits := []indexer.Hit{{FileName: "A"}, {FileName: "B"}, {FileName: "C"}, {FileName: "D"}, {FileName: "E"}}

	got := filter.Select(hits, 3)
	if len(got) != 3 || got[0].FileName != "A" || got[2].FileName != "C" {
		t.Fatalf("unexpected selection: %+v", got)
	}
	got[0].FileName = "mutated"
	if hits[0].FileName != "A" {
		t.Fatal("Select must not alias the input slice")
	}

	if got := filter.Select(hits[:2], 3); len(got) != 2 {
		t.Fatalf("expected all 2 hits, got %d", len(got))
	}
	if got := filter.Select(nil, 3); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	if got := filter.Select(hits, 0); len(got) != 0 {
		t.Fatalf("expected empty selection for zero max, got %d", len(got))
	}
	if got := filter.Select(hits, -1); len(got) != 0 {
		t.Fatalf("expected empty selection for negative max, got %d", len(got))
	}
}
