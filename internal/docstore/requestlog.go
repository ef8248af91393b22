package docstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// StoredLLMRequest is a logged request row with its assigned ID.
type StoredLLMRequest struct {
	ID int
	LLMRequestEvent
}

// LLMUsage aggregates token usage per purpose.
type LLMUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int
}

// LLMModelUsage aggregates token usage per model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// ListLLMRequests returns the most recent logged requests, newest first.
func (s *SQLiteStore) ListLLMRequests(ctx context.Context, limit int) ([]StoredLLMRequest, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, provider, model, purpose, input_tokens, output_tokens,
		       latency_ms, success, error_message, request_body, response_body, timestamp
		FROM llm_requests ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list llm requests: %w", wrapIO(err))
	}
	defer rows.Close()

	var out []StoredLLMRequest
	for rows.Next() {
		r, err := scanLLMRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetLLMRequest returns one logged request by ID, or nil if absent.
func (s *SQLiteStore) GetLLMRequest(ctx context.Context, id int) (*StoredLLMRequest, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, provider, model, purpose, input_tokens, output_tokens,
		       latency_ms, success, error_message, request_body, response_body, timestamp
		FROM llm_requests WHERE id = ?`, id)

	r, err := scanLLMRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// LLMUsageByPurpose aggregates logged requests per purpose.
func (s *SQLiteStore) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT purpose, COUNT(*), SUM(input_tokens), SUM(output_tokens),
		       CAST(AVG(latency_ms) AS INTEGER)
		FROM llm_requests GROUP BY purpose ORDER BY purpose`)
	if err != nil {
		return nil, fmt.Errorf("aggregate llm usage: %w", wrapIO(err))
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var u LLMUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan llm usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// LLMUsageByModel aggregates logged requests per model.
func (s *SQLiteStore) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT model, COUNT(*), SUM(input_tokens), SUM(output_tokens)
		FROM llm_requests GROUP BY model ORDER BY model`)
	if err != nil {
		return nil, fmt.Errorf("aggregate llm model usage: %w", wrapIO(err))
	}
	defer rows.Close()

	var out []LLMModelUsage
	for rows.Next() {
		var u LLMModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan llm model usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLLMRequest(row rowScanner) (StoredLLMRequest, error) {
	var r StoredLLMRequest
	var ts string
	err := row.Scan(&r.ID, &r.Provider, &r.Model, &r.Purpose, &r.InputTokens,
		&r.OutputTokens, &r.LatencyMs, &r.Success, &r.ErrorMessage,
		&r.RequestBody, &r.ResponseBody, &ts)
	if err != nil {
		if err == sql.ErrNoRows {
			return r, err
		}
		return r, fmt.Errorf("scan llm request: %w", err)
	}
	if t, perr := time.Parse(time.RFC3339, ts); perr == nil {
		r.Timestamp = t
	}
	return r, nil
}
