package userdata

import (
	"testing"

	"github.com/ymatsui/kijun/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		[]catalog.Standard{
			{ID: "s1", Title: "One", Importance: catalog.ImportanceA},
			{ID: "s2", Title: "Two", Importance: catalog.ImportanceB},
		},
		[]catalog.QuizItem{
			{Kind: catalog.KindMarubatsu, ID: "q1", StandardID: "s1", Question: "?"},
			{Kind: catalog.KindMarubatsu, ID: "q2", StandardID: "s1", Question: "?"},
			{Kind: catalog.KindMarubatsu, ID: "q3", StandardID: "s2", Question: "?"},
		},
	)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

func TestSetResult_Overwrites(t *testing.T) {
	s := NewStore()
	s.SetResult("q1", false)
	s.SetResult("q1", true)

	r := s.Results()
	if len(r) != 1 || r["q1"] != true {
		t.Errorf("Results() = %v, want q1:true only", r)
	}
}

func TestResetForStandard(t *testing.T) {
	cat := testCatalog(t)
	s := NewStore()
	s.SetResult("q1", true)
	s.SetResult("q2", false)
	s.SetResult("q3", false)

	s.ResetForStandard("s1", cat)

	r := s.Results()
	if len(r) != 1 {
		t.Fatalf("Results() = %v, want only q3", r)
	}
	if v, ok := r["q3"]; !ok || v {
		t.Errorf("q3 = %v, %v, want false, true", v, ok)
	}

	// Second reset is a no-op and must not notify.
	notified := 0
	unsub := s.Subscribe(func(Data) { notified++ })
	defer unsub()
	s.ResetForStandard("s1", cat)
	if notified != 0 {
		t.Errorf("second reset notified %d times, want 0", notified)
	}
}

func TestToggleBookmark(t *testing.T) {
	s := NewStore()
	s.ToggleBookmark("s1")
	if !s.IsBookmarked("s1") {
		t.Error("s1 not bookmarked after toggle")
	}
	s.ToggleBookmark("s1")
	if s.IsBookmarked("s1") {
		t.Error("s1 still bookmarked after second toggle")
	}
}

func TestAddViewedStandard_Dedup(t *testing.T) {
	s := NewStore()
	notified := 0
	unsub := s.Subscribe(func(Data) { notified++ })
	defer unsub()

	s.AddViewedStandard("s1")
	s.AddViewedStandard("s1")

	d := s.Get()
	if len(d.ViewedStandardIDs) != 1 {
		t.Errorf("ViewedStandardIDs = %v, want one entry", d.ViewedStandardIDs)
	}
	if notified != 1 {
		t.Errorf("notified %d times, want 1", notified)
	}
}

func TestSubscribe_SynchronousSnapshot(t *testing.T) {
	s := NewStore()
	var seen Data
	unsub := s.Subscribe(func(d Data) { seen = d })
	defer unsub()

	s.SetResult("q1", true)

	if v, ok := seen.QuizResults["q1"]; !ok || !v {
		t.Errorf("listener saw %v, want q1:true", seen.QuizResults)
	}

	// The snapshot must be detached from the store.
	seen.QuizResults["q9"] = false
	if _, ok := s.Results()["q9"]; ok {
		t.Error("mutating the snapshot leaked into the store")
	}
}

func TestReplace_CoercesNilFields(t *testing.T) {
	s := NewStore()
	s.Replace(Data{QuizResults: QuizResults{"q1": true}})

	d := s.Get()
	if d.BookmarkedStandardIDs == nil || d.ViewedStandardIDs == nil {
		t.Error("Replace left nil fields")
	}
	if !d.QuizResults["q1"] {
		t.Error("Replace dropped quiz results")
	}
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.SetResult("q1", true)
	s.ToggleBookmark("s1")
	s.Clear()

	d := s.Get()
	if len(d.QuizResults) != 0 || len(d.BookmarkedStandardIDs) != 0 || len(d.ViewedStandardIDs) != 0 {
		t.Errorf("Clear left data behind: %+v", d)
	}
}

func TestUnsubscribe(t *testing.T) {
	s := NewStore()
	notified := 0
	unsub := s.Subscribe(func(Data) { notified++ })
	s.SetResult("q1", true)
	unsub()
	s.SetResult("q2", true)

	if notified != 1 {
		t.Errorf("notified %d times, want 1", notified)
	}
}
