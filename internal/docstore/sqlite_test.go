package docstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ymatsui/kijun/internal/userdata"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadMissingAccount(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Load(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load = %v, want ErrNotFound", err)
	}
}

func TestWriteLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	in := userdata.Data{
		BookmarkedStandardIDs: []string{"std-1", "std-3"},
		QuizResults:           userdata.QuizResults{"q1": true, "q2": false},
		ViewedStandardIDs:     []string{"std-1"},
	}
	if err := s.Write(ctx, "yuki", in); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out, err := s.Load(ctx, "yuki")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out.BookmarkedStandardIDs) != 2 || out.BookmarkedStandardIDs[0] != "std-1" {
		t.Errorf("bookmarks = %v", out.BookmarkedStandardIDs)
	}
	if correct, ok := out.QuizResults["q2"]; !ok || correct {
		t.Errorf("QuizResults[q2] = %v, %v", correct, ok)
	}
	if len(out.ViewedStandardIDs) != 1 {
		t.Errorf("viewed = %v", out.ViewedStandardIDs)
	}
}

func TestWriteOverwritesDocument(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Write(ctx, "yuki", userdata.Data{QuizResults: userdata.QuizResults{"q1": true}}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Write(ctx, "yuki", userdata.Data{QuizResults: userdata.QuizResults{"q2": false}}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out, err := s.Load(ctx, "yuki")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := out.QuizResults["q1"]; ok {
		t.Error("stale q1 result survived the second write")
	}
	if _, ok := out.QuizResults["q2"]; !ok {
		t.Error("q2 result missing after second write")
	}
}

func TestWritePushesToSubscribers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var got []userdata.Data
	unsub, err := s.Subscribe("yuki", func(d userdata.Data) {
		got = append(got, d)
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if err := s.Write(ctx, "yuki", userdata.Data{QuizResults: userdata.QuizResults{"q1": true}}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("pushes = %d, want 1", len(got))
	}

	// Writes to other accounts stay silent.
	if err := s.Write(ctx, "ken", userdata.Empty()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("pushes = %d after other-account write, want 1", len(got))
	}

	unsub()
	if err := s.Write(ctx, "yuki", userdata.Empty()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("pushes = %d after unsubscribe, want 1", len(got))
	}
}

func TestLoadCoercesMalformedColumns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO account_docs (account_id, bookmarks, quiz_results, viewed, updated_at)
		VALUES ('broken', 'not json', '{"q1":true}', 'null', '2026-01-01T00:00:00Z')`)
	if err != nil {
		t.Fatalf("seed row: %v", err)
	}

	d, err := s.Load(ctx, "broken")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.BookmarkedStandardIDs == nil || len(d.BookmarkedStandardIDs) != 0 {
		t.Errorf("bookmarks = %#v, want empty slice", d.BookmarkedStandardIDs)
	}
	if d.ViewedStandardIDs == nil {
		t.Error("viewed not coerced to empty slice")
	}
	if !d.QuizResults["q1"] {
		t.Error("valid quiz_results column was dropped")
	}
}

func TestLLMRequestLog(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	events := []LLMRequestEvent{
		{Provider: "anthropic", Model: "claude-haiku", Purpose: "kaisetsu", InputTokens: 100, OutputTokens: 40, LatencyMs: 900, Success: true, RequestBody: "req", ResponseBody: "resp"},
		{Provider: "anthropic", Model: "claude-haiku", Purpose: "kaisetsu", InputTokens: 120, OutputTokens: 60, LatencyMs: 1100, Success: false, ErrorMessage: "timeout"},
	}
	for _, ev := range events {
		if err := s.AppendLLMRequest(ctx, ev); err != nil {
			t.Fatalf("AppendLLMRequest: %v", err)
		}
	}

	list, err := s.ListLLMRequests(ctx, 10)
	if err != nil {
		t.Fatalf("ListLLMRequests: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list = %d rows, want 2", len(list))
	}
	if list[0].ID <= list[1].ID {
		t.Error("list not ordered newest first")
	}

	got, err := s.GetLLMRequest(ctx, list[1].ID)
	if err != nil {
		t.Fatalf("GetLLMRequest: %v", err)
	}
	if got == nil || got.RequestBody != "req" || got.ResponseBody != "resp" {
		t.Errorf("GetLLMRequest = %+v", got)
	}

	missing, err := s.GetLLMRequest(ctx, 9999)
	if err != nil {
		t.Fatalf("GetLLMRequest(missing): %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing ID")
	}

	usage, err := s.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("LLMUsageByPurpose: %v", err)
	}
	if len(usage) != 1 || usage[0].Calls != 2 || usage[0].InputTokens != 220 {
		t.Errorf("usage = %+v", usage)
	}

	byModel, err := s.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("LLMUsageByModel: %v", err)
	}
	if len(byModel) != 1 || byModel[0].OutputTokens != 100 {
		t.Errorf("model usage = %+v", byModel)
	}
}
