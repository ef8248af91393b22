package syncer

import (
	"context"
	"testing"

	"github.com/ymatsui/kijun/internal/docstore"
	"github.com/ymatsui/kijun/internal/userdata"
)

func newEngine(t *testing.T) (*Engine, *userdata.Store, *docstore.MemoryStore) {
	t.Helper()
	store := userdata.NewStore()
	mem := docstore.NewMemoryStore()
	return NewEngine(store, mem), store, mem
}

func TestSignIn_CreatesMissingDocument(t *testing.T) {
	e, store, mem := newEngine(t)

	e.SignIn(context.Background(), "acct-1")

	doc, ok := mem.Doc("acct-1")
	if !ok {
		t.Fatal("document was not created on first sign-in")
	}
	if len(doc.QuizResults) != 0 || len(doc.BookmarkedStandardIDs) != 0 || len(doc.ViewedStandardIDs) != 0 {
		t.Errorf("created document not empty: %+v", doc)
	}
	if got := store.Get(); len(got.QuizResults) != 0 {
		t.Errorf("local state not empty after first sign-in: %+v", got)
	}
	if s := e.Status(); !s.Online {
		t.Errorf("status offline after successful sign-in: %+v", s)
	}
}

func TestSignIn_LoadsExistingDocument(t *testing.T) {
	e, store, mem := newEngine(t)
	mem.Push("acct-1", userdata.Data{
		QuizResults:           userdata.QuizResults{"mb-1": true},
		BookmarkedStandardIDs: []string{"std-101"},
	})

	e.SignIn(context.Background(), "acct-1")

	got := store.Get()
	if !got.QuizResults["mb-1"] {
		t.Errorf("remote result not applied locally: %+v", got)
	}
	if len(got.BookmarkedStandardIDs) != 1 || got.BookmarkedStandardIDs[0] != "std-101" {
		t.Errorf("bookmarks = %v, want [std-101]", got.BookmarkedStandardIDs)
	}
	// Coercion: the omitted viewed list comes back empty, not nil-broken.
	if got.ViewedStandardIDs == nil {
		t.Error("viewed list not coerced to empty")
	}
}

func TestLocalMutation_WritesBack(t *testing.T) {
	e, store, mem := newEngine(t)
	e.SignIn(context.Background(), "acct-1")
	created := mem.Writes

	store.SetResult("mb-1", false)
	e.Flush()

	doc, _ := mem.Doc("acct-1")
	correct, ok := doc.QuizResults["mb-1"]
	if !ok || correct {
		t.Errorf("remote document missing mb-1=false: %+v", doc.QuizResults)
	}
	if mem.Writes != created+1 {
		t.Errorf("writes = %d, want %d", mem.Writes, created+1)
	}
}

func TestLocalMutations_CoalesceToFinalState(t *testing.T) {
	e, store, mem := newEngine(t)
	e.SignIn(context.Background(), "acct-1")

	store.SetResult("mb-1", false)
	store.SetResult("mb-2", true)
	store.SetResult("mb-1", true)
	e.Flush()

	doc, _ := mem.Doc("acct-1")
	if !doc.QuizResults["mb-1"] || !doc.QuizResults["mb-2"] {
		t.Errorf("final remote state wrong: %+v", doc.QuizResults)
	}
	if got := store.Get(); !got.QuizResults["mb-1"] {
		t.Errorf("local state lost mutation: %+v", got.QuizResults)
	}
}

func TestWriteFailure_SetsOfflineStatus(t *testing.T) {
	e, store, mem := newEngine(t)
	e.SignIn(context.Background(), "acct-1")

	mem.FailWrites = true
	store.SetResult("mb-1", true)
	e.Flush()

	s := e.Status()
	if s.Online {
		t.Fatal("status still online after failed write")
	}
	if s.Message == "" {
		t.Error("no advisory message after failed write")
	}
	// Local state keeps the change regardless.
	if !store.Results()["mb-1"] {
		t.Error("local mutation rolled back on write failure")
	}

	// Recovery: the next successful write flips the status back.
	mem.FailWrites = false
	store.SetResult("mb-2", true)
	e.Flush()
	if s := e.Status(); !s.Online {
		t.Errorf("status not restored after recovery: %+v", s)
	}
}

func TestLoadFailure_DegradesToLocalOnly(t *testing.T) {
	e, store, mem := newEngine(t)
	mem.FailLoads = true

	e.SignIn(context.Background(), "acct-1")

	if s := e.Status(); s.Online || s.Message == "" {
		t.Errorf("expected offline advisory status, got %+v", s)
	}
	if got := store.Get(); len(got.QuizResults) != 0 {
		t.Errorf("local state not reset on failed load: %+v", got)
	}
}

func TestRemotePush_ReplacesLocalState(t *testing.T) {
	e, store, mem := newEngine(t)
	e.SignIn(context.Background(), "acct-1")
	store.SetResult("mb-1", false)
	e.Flush()

	// Another device overwrites the document.
	mem.Push("acct-1", userdata.Data{
		QuizResults: userdata.QuizResults{"mb-9": true},
	})

	got := store.Get()
	if _, ok := got.QuizResults["mb-1"]; ok {
		t.Errorf("stale local result survived remote push: %+v", got.QuizResults)
	}
	if !got.QuizResults["mb-9"] {
		t.Errorf("pushed result not applied: %+v", got.QuizResults)
	}

	// A push must not trigger a write-back echo.
	writes := mem.Writes
	e.Flush()
	if mem.Writes != writes {
		t.Errorf("remote push caused %d extra writes", mem.Writes-writes)
	}
}

func TestAccountSwitch_TearsDownPreviousListener(t *testing.T) {
	e, store, mem := newEngine(t)
	e.SignIn(context.Background(), "acct-1")
	if n := mem.ListenerCount("acct-1"); n != 1 {
		t.Fatalf("acct-1 listeners = %d, want 1", n)
	}

	e.SignIn(context.Background(), "acct-2")
	if n := mem.ListenerCount("acct-1"); n != 0 {
		t.Errorf("acct-1 listeners = %d after switch, want 0", n)
	}
	if n := mem.ListenerCount("acct-2"); n != 1 {
		t.Errorf("acct-2 listeners = %d, want 1", n)
	}

	// Pushes to the old account no longer touch local state.
	mem.Push("acct-1", userdata.Data{QuizResults: userdata.QuizResults{"mb-1": true}})
	if _, ok := store.Results()["mb-1"]; ok {
		t.Error("push to previous account leaked into local state")
	}
}

func TestSignOut_ClearsLocalKeepsRemote(t *testing.T) {
	e, store, mem := newEngine(t)
	e.SignIn(context.Background(), "acct-1")
	store.SetResult("mb-1", true)
	e.Flush()

	e.SignOut()

	if got := store.Get(); len(got.QuizResults) != 0 {
		t.Errorf("local state not cleared on sign-out: %+v", got)
	}
	doc, ok := mem.Doc("acct-1")
	if !ok || !doc.QuizResults["mb-1"] {
		t.Errorf("remote document changed on sign-out: %+v", doc)
	}
	if n := mem.ListenerCount("acct-1"); n != 0 {
		t.Errorf("listeners = %d after sign-out, want 0", n)
	}
	// No write-back for the clear itself.
	writes := mem.Writes
	e.Flush()
	if mem.Writes != writes {
		t.Error("sign-out triggered a write")
	}
}
