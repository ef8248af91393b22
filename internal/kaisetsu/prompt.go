package kaisetsu

import (
	"fmt"
	"strings"

	"github.com/ymatsui/kijun/internal/catalog"
)

const systemPrompt = `あなたは法令・業務基準の教育担当者です。学習者向けに基準のAI解説を作成します。

ルール:
- 与えられた基準について、専門用語をかみ砕いた平易な日本語で解説すること。
- summary は基準の趣旨を2〜3文でまとめること。条文の言い換えではなく「なぜこの基準があるか」を含めること。
- key_points は実務で誤りやすい点を2〜5個、短い箇条書きで挙げること。
- example は学習者が場面を想像できる具体例を1つ示すこと。
- 基準の本文に書かれていない義務や数値を創作しないこと。`

// buildUserMessage constructs the user message from a standard and the
// learner's recent mistakes on its quizzes.
func buildUserMessage(std catalog.Standard, missedQuestions []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "基準番号: %s\n", std.ID)
	fmt.Fprintf(&b, "タイトル: %s\n", std.Title)
	fmt.Fprintf(&b, "重要度: %s\n", std.Importance)
	fmt.Fprintf(&b, "分類: %s\n", std.Category)
	fmt.Fprintf(&b, "\n本文:\n%s\n", std.Content)
	if std.Commentary != "" {
		fmt.Fprintf(&b, "\n既存の解説:\n%s\n", std.Commentary)
	}

	if len(missedQuestions) > 0 {
		b.WriteString("\nこの学習者が間違えた問題:\n")
		for i, q := range missedQuestions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
