package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ymatsui/kijun/internal/userdata"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// SQLiteStore is a Client backed by a local SQLite database. It stands
// in for the hosted per-user store: the rest of the app only sees the
// Client interface and treats the store as remote and fallible.
type SQLiteStore struct {
	db *sql.DB

	mu        sync.Mutex
	listeners map[string]map[string]func(userdata.Data)
}

var _ Client = (*SQLiteStore)(nil)
var _ EventLog = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS account_docs (
	account_id   TEXT PRIMARY KEY,
	bookmarks    TEXT NOT NULL DEFAULT '[]',
	quiz_results TEXT NOT NULL DEFAULT '{}',
	viewed       TEXT NOT NULL DEFAULT '[]',
	updated_at   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS llm_requests (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	provider      TEXT NOT NULL,
	model         TEXT NOT NULL,
	purpose       TEXT NOT NULL DEFAULT '',
	input_tokens  INTEGER NOT NULL DEFAULT 0,
	output_tokens INTEGER NOT NULL DEFAULT 0,
	latency_ms    INTEGER NOT NULL DEFAULT 0,
	success       INTEGER NOT NULL,
	error_message TEXT NOT NULL DEFAULT '',
	request_body  TEXT NOT NULL DEFAULT '',
	response_body TEXT NOT NULL DEFAULT '',
	timestamp     TEXT NOT NULL
);
`

// Open creates an SQLiteStore at dsn, applying recommended pragmas and
// creating the schema.
func Open(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{
		db:        db,
		listeners: make(map[string]map[string]func(userdata.Data)),
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the account document.
func (s *SQLiteStore) Load(ctx context.Context, accountID string) (userdata.Data, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT bookmarks, quiz_results, viewed FROM account_docs WHERE account_id = ?`, accountID)

	var bookmarks, results, viewed string
	if err := row.Scan(&bookmarks, &results, &viewed); err != nil {
		if err == sql.ErrNoRows {
			return userdata.Data{}, ErrNotFound
		}
		return userdata.Data{}, fmt.Errorf("load document for %q: %w", accountID, wrapIO(err))
	}

	return decodeDoc(bookmarks, results, viewed), nil
}

// Write upserts the account document column by column and then pushes
// the stored value to the account's subscribers.
func (s *SQLiteStore) Write(ctx context.Context, accountID string, d userdata.Data) error {
	d = userdata.Coerce(d)

	bookmarks, err := json.Marshal(d.BookmarkedStandardIDs)
	if err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}
	results, err := json.Marshal(d.QuizResults)
	if err != nil {
		return fmt.Errorf("encode quiz results: %w", err)
	}
	viewed, err := json.Marshal(d.ViewedStandardIDs)
	if err != nil {
		return fmt.Errorf("encode viewed: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO account_docs (account_id, bookmarks, quiz_results, viewed, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(account_id) DO UPDATE SET
			bookmarks    = excluded.bookmarks,
			quiz_results = excluded.quiz_results,
			viewed       = excluded.viewed,
			updated_at   = excluded.updated_at`,
		accountID, string(bookmarks), string(results), string(viewed),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write document for %q: %w", accountID, wrapIO(err))
	}

	s.notify(accountID, d)
	return nil
}

// Subscribe registers a push listener for the account's document.
func (s *SQLiteStore) Subscribe(accountID string, onChange func(userdata.Data)) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listeners[accountID] == nil {
		s.listeners[accountID] = make(map[string]func(userdata.Data))
	}
	id := uuid.NewString()
	s.listeners[accountID][id] = onChange

	return func() {
		s.mu.Lock()
		delete(s.listeners[accountID], id)
		s.mu.Unlock()
	}, nil
}

// AppendLLMRequest records a model API call in the request log.
func (s *SQLiteStore) AppendLLMRequest(ctx context.Context, ev LLMRequestEvent) error {
	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO llm_requests
			(provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, request_body, response_body, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.Provider, ev.Model, ev.Purpose, ev.InputTokens, ev.OutputTokens,
		ev.LatencyMs, ev.Success, ev.ErrorMessage, ev.RequestBody, ev.ResponseBody,
		ts.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("append llm request: %w", wrapIO(err))
	}
	return nil
}

func (s *SQLiteStore) notify(accountID string, d userdata.Data) {
	s.mu.Lock()
	fns := make([]func(userdata.Data), 0, len(s.listeners[accountID]))
	for _, fn := range s.listeners[accountID] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(d.Clone())
	}
}

// decodeDoc unmarshals the JSON columns, coercing any malformed field
// to its empty default rather than failing the load.
func decodeDoc(bookmarks, results, viewed string) userdata.Data {
	var d userdata.Data
	_ = json.Unmarshal([]byte(bookmarks), &d.BookmarkedStandardIDs)
	_ = json.Unmarshal([]byte(results), &d.QuizResults)
	_ = json.Unmarshal([]byte(viewed), &d.ViewedStandardIDs)
	return userdata.Coerce(d)
}

// wrapIO tags database-level failures as connectivity failures so the
// sync layer can distinguish "store unreachable" from bad data.
func wrapIO(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// applyPragmas configures SQLite for single-user desktop use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. KIJUN_DB environment variable
// 2. $XDG_DATA_HOME/kijun/kijun.db
// 3. ~/.local/share/kijun/kijun.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("KIJUN_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "kijun", "kijun.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
