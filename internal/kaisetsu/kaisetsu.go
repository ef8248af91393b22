// Package kaisetsu generates on-demand AI commentary for a standard.
package kaisetsu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ymatsui/kijun/internal/catalog"
	"github.com/ymatsui/kijun/internal/llm"
	"github.com/ymatsui/kijun/internal/userdata"
)

// ErrNoProvider is returned when no LLM provider is configured. The
// feature is optional; callers show the built-in commentary instead.
var ErrNoProvider = errors.New("no LLM provider configured")

// Commentary is the generated plain-language commentary for a standard.
type Commentary struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
	Example   string   `json:"example"`
}

// Config controls the behavior of the Service.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxMissed is the maximum number of missed questions to include
	// in the prompt for personalization.
	MaxMissed int
}

// DefaultConfig returns recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.4,
		MaxMissed:   5,
	}
}

// Service produces commentary through an LLM provider. A nil provider
// is valid and makes every Generate call return ErrNoProvider.
type Service struct {
	provider llm.Provider
	config   Config
}

// New creates a Service. provider may be nil.
func New(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, config: cfg}
}

// Generate produces commentary for a standard, personalized with the
// quizzes the learner answered incorrectly.
func (s *Service) Generate(ctx context.Context, std catalog.Standard, cat *catalog.Catalog, results userdata.QuizResults) (*Commentary, error) {
	if s.provider == nil {
		return nil, ErrNoProvider
	}

	ctx = llm.WithPurpose(ctx, "kaisetsu")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(std, s.missedQuestions(std.ID, cat, results))},
		},
		Schema:      CommentarySchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("commentary generation failed: %w", err)
	}

	var c Commentary
	if err := json.Unmarshal(resp.Content, &c); err != nil {
		return nil, fmt.Errorf("failed to parse commentary response: %w", err)
	}
	if c.Summary == "" || len(c.KeyPoints) == 0 {
		return nil, fmt.Errorf("incomplete commentary response: %s", resp.Content)
	}

	return &c, nil
}

// missedQuestions collects question texts for quizzes of the standard
// the learner has answered incorrectly, newest-agnostic, capped at
// MaxMissed.
func (s *Service) missedQuestions(standardID string, cat *catalog.Catalog, results userdata.QuizResults) []string {
	if cat == nil {
		return nil
	}
	var missed []string
	for _, q := range cat.QuizzesForStandard(standardID) {
		if correct, answered := results[q.ID]; answered && !correct {
			missed = append(missed, q.Question)
			if s.config.MaxMissed > 0 && len(missed) >= s.config.MaxMissed {
				break
			}
		}
	}
	return missed
}
