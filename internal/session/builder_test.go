package session

import (
	"fmt"
	"sort"
	"testing"

	"github.com/ymatsui/kijun/internal/catalog"
	"github.com/ymatsui/kijun/internal/userdata"
)

// buildCatalog creates n marubatsu quizzes spread over two standards in
// two categories, plus one fill-in per standard.
func buildCatalog(t *testing.T, n int) *catalog.Catalog {
	t.Helper()

	standards := []catalog.Standard{
		{ID: "s1", Title: "One", Importance: catalog.ImportanceA, Category: "ch1"},
		{ID: "s2", Title: "Two", Importance: catalog.ImportanceB, Category: "ch2"},
	}
	var quizzes []catalog.QuizItem
	for i := 0; i < n; i++ {
		std := "s1"
		if i%2 == 1 {
			std = "s2"
		}
		quizzes = append(quizzes, catalog.QuizItem{
			Kind:       catalog.KindMarubatsu,
			ID:         fmt.Sprintf("q%d", i),
			StandardID: std,
			Question:   "?",
			Answer:     i%2 == 0,
		})
	}

	c, err := catalog.New(standards, quizzes)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

func TestShuffle_IsPermutation(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	out := Shuffle(in)

	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}

	sorted := make([]int, len(out))
	copy(sorted, out)
	sort.Ints(sorted)
	for i, v := range sorted {
		if v != i+1 {
			t.Fatalf("output %v is not a permutation of input", out)
		}
	}

	// Input must be untouched.
	for i, v := range in {
		if v != i+1 {
			t.Fatalf("input mutated: %v", in)
		}
	}
}

func TestShuffle_Empty(t *testing.T) {
	if out := Shuffle([]string(nil)); len(out) != 0 {
		t.Errorf("Shuffle(nil) = %v, want empty", out)
	}
}

func TestBuild_FixedCount(t *testing.T) {
	cat := buildCatalog(t, 20)

	for _, count := range []int{1, 5, 20, 50} {
		got := Build(Params{Mode: ModeFixedCount, Count: count}, cat, nil)
		want := count
		if want > 20 {
			want = 20
		}
		if len(got) != want {
			t.Errorf("count=%d: got %d items, want %d", count, len(got), want)
		}
	}
}

func TestBuild_FixedCount_NonPositiveDefaultsToTen(t *testing.T) {
	cat := buildCatalog(t, 20)

	for _, count := range []int{0, -3} {
		got := Build(Params{Mode: ModeFixedCount, Count: count}, cat, nil)
		if len(got) != DefaultCount {
			t.Errorf("count=%d: got %d items, want %d", count, len(got), DefaultCount)
		}
	}
}

func TestBuild_WeakPoint_ExactlyIncorrectSet(t *testing.T) {
	cat := buildCatalog(t, 10)
	results := userdata.QuizResults{
		"q0": false,
		"q1": true,
		"q2": false,
		"q3": true,
		// q4..q9 unanswered
	}

	got := Build(Params{Mode: ModeWeakPoint}, cat, results)

	ids := make(map[string]bool)
	for _, q := range got {
		ids[q.ID] = true
	}
	if len(ids) != 2 || !ids["q0"] || !ids["q2"] {
		t.Errorf("weak-point set = %v, want {q0, q2}", ids)
	}
}

func TestBuild_WeakPoint_EmptyRecord(t *testing.T) {
	cat := buildCatalog(t, 10)
	if got := Build(Params{Mode: ModeWeakPoint}, cat, nil); len(got) != 0 {
		t.Errorf("got %d items, want 0", len(got))
	}
}

func TestBuild_Category(t *testing.T) {
	cat := buildCatalog(t, 10)

	got := Build(Params{Mode: ModeCategory, Category: "ch1"}, cat, nil)
	for _, q := range got {
		if q.StandardID != "s1" {
			t.Errorf("item %s belongs to %s, want only s1 (ch1)", q.ID, q.StandardID)
		}
	}
	// Even-indexed quizzes belong to s1.
	if len(got) != 5 {
		t.Errorf("got %d items, want 5", len(got))
	}

	if got := Build(Params{Mode: ModeCategory, Category: "ch9"}, cat, nil); len(got) != 0 {
		t.Errorf("unknown category yielded %d items, want 0", len(got))
	}
}

func TestParseParams(t *testing.T) {
	cases := []struct {
		mode, count, category string
		want                  Params
	}{
		{"", "", "", Params{Mode: ModeFixedCount, Count: 10}},
		{"", "30", "", Params{Mode: ModeFixedCount, Count: 30}},
		{"", "-1", "", Params{Mode: ModeFixedCount, Count: 10}},
		{"", "abc", "", Params{Mode: ModeFixedCount, Count: 10}},
		{"weak-point", "", "", Params{Mode: ModeWeakPoint, Count: 10}},
		{"category", "5", "ch1", Params{Mode: ModeCategory, Count: 5, Category: "ch1"}},
		{"category", "", "", Params{Mode: ModeFixedCount, Count: 10}},
		{"bogus", "", "", Params{Mode: ModeFixedCount, Count: 10}},
	}

	for _, tc := range cases {
		got := ParseParams(tc.mode, tc.count, tc.category)
		if got != tc.want {
			t.Errorf("ParseParams(%q, %q, %q) = %+v, want %+v", tc.mode, tc.count, tc.category, got, tc.want)
		}
	}
}
