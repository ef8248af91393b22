package kaisetsu

import "github.com/ymatsui/kijun/internal/llm"

// CommentarySchema defines the JSON schema for AI commentary responses.
var CommentarySchema = &llm.Schema{
	Name:        "standard-commentary",
	Description: "Plain-language commentary on a single regulatory standard",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "基準の要点を2〜3文でまとめた平易な解説",
			},
			"key_points": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"minItems":    2,
				"maxItems":    5,
				"description": "実務上の注意点の箇条書き",
			},
			"example": map[string]any{
				"type":        "string",
				"description": "この基準が問題になる具体的な場面の例",
			},
		},
		"required":             []any{"summary", "key_points", "example"},
		"additionalProperties": false,
	},
}
