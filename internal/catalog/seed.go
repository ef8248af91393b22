package catalog

// defaultCatalog is built once from the seed content below.
var defaultCatalog *Catalog

func init() {
	c, err := New(seedStandards, seedQuizzes)
	if err != nil {
		panic(err)
	}
	defaultCatalog = c
}

// Default returns the built-in content catalog.
func Default() *Catalog {
	return defaultCatalog
}

var seedStandards = []Standard{
	{
		ID:         "std-101",
		Title:      "基準第1条 目的",
		Importance: ImportanceA,
		Category:   "第1章 総則",
		Content:    "この基準は、業務の適正な運営を確保し、利用者の保護を図ることを目的とする。",
		Commentary: "目的規定。出題頻度が高く、「利用者の保護」という文言の有無が問われやすい。",
	},
	{
		ID:         "std-102",
		Title:      "基準第2条 定義",
		Importance: ImportanceB,
		Category:   "第1章 総則",
		Content:    "この基準において「事業者」とは、第3条の登録を受けた者をいう。",
		Commentary: "定義規定。登録前の者は「事業者」に含まれない点に注意。",
	},
	{
		ID:         "std-201",
		Title:      "基準第10条 帳簿の備付け",
		Importance: ImportanceA,
		Category:   "第2章 業務管理",
		Content:    "事業者は、営業所ごとに帳簿を備え付け、取引のあった日から5年間保存しなければならない。",
		Commentary: "保存期間5年は頻出。営業所「ごと」である点もひっかけに使われる。",
	},
	{
		ID:         "std-202",
		Title:      "基準第12条 標識の掲示",
		Importance: ImportanceC,
		Category:   "第2章 業務管理",
		Content:    "事業者は、営業所ごとに、公衆の見やすい場所に、標識を掲示しなければならない。",
		Commentary: "掲示義務。掲示場所は「公衆の見やすい場所」であり、事務室内では足りない。",
	},
	{
		ID:         "std-301",
		Title:      "基準第20条 重要事項の説明",
		Importance: ImportanceA,
		Category:   "第3章 取引規制",
		Content:    "事業者は、契約が成立するまでの間に、相手方に対し、重要事項を記載した書面を交付して説明しなければならない。",
		Commentary: "説明時期は「契約成立まで」。成立後の交付では義務を果たしたことにならない。",
	},
	{
		ID:         "std-302",
		Title:      "基準第21条 書面の交付",
		Importance: ImportanceB,
		Category:   "第3章 取引規制",
		Content:    "事業者は、契約を締結したときは、遅滞なく、契約内容を記載した書面を相手方に交付しなければならない。",
		Commentary: "重要事項説明書面（第20条）とは別個の書面である。",
	},
}

var seedQuizzes = []QuizItem{
	{
		Kind:        KindMarubatsu,
		ID:          "mb-101-1",
		StandardID:  "std-101",
		Question:    "この基準の目的には、利用者の保護を図ることが含まれる。",
		Answer:      true,
		Explanation: "第1条は「利用者の保護を図ること」を目的として明記している。",
	},
	{
		Kind:        KindMarubatsu,
		ID:          "mb-102-1",
		StandardID:  "std-102",
		Question:    "登録の申請中の者も、この基準にいう「事業者」に該当する。",
		Answer:      false,
		Explanation: "「事業者」は登録を受けた者に限られ、申請中の者は含まれない。",
	},
	{
		Kind:        KindMarubatsu,
		ID:          "mb-201-1",
		StandardID:  "std-201",
		Question:    "帳簿は、取引のあった日から3年間保存すれば足りる。",
		Answer:      false,
		Explanation: "保存期間は5年間である。",
	},
	{
		Kind:        KindMarubatsu,
		ID:          "mb-201-2",
		StandardID:  "std-201",
		Question:    "帳簿は、営業所ごとに備え付けなければならない。",
		Answer:      true,
		Explanation: "本店で一括して備え付けることは認められない。",
	},
	{
		Kind:        KindMarubatsu,
		ID:          "mb-202-1",
		StandardID:  "std-202",
		Question:    "標識は、事務室内の従業者が見やすい場所に掲示すれば足りる。",
		Answer:      false,
		Explanation: "掲示場所は「公衆の見やすい場所」でなければならない。",
	},
	{
		Kind:        KindMarubatsu,
		ID:          "mb-301-1",
		StandardID:  "std-301",
		Question:    "重要事項の説明は、契約成立後遅滞なく行えばよい。",
		Answer:      false,
		Explanation: "説明は契約が成立するまでの間に行わなければならない。",
	},
	{
		Kind:        KindMarubatsu,
		ID:          "mb-302-1",
		StandardID:  "std-302",
		Question:    "契約締結時の書面は、重要事項説明書面をもって代えることができる。",
		Answer:      false,
		Explanation: "第20条の書面と第21条の書面は別個に交付を要する。",
	},
	{
		Kind:        KindFillIn,
		ID:          "fi-101-1",
		StandardID:  "std-101",
		Question:    "この基準は、業務の適正な運営を確保し、〔 〕の保護を図ることを目的とする。",
		Options:     []string{"利用者", "事業者", "従業者"},
		AnswerIndex: 0,
		Explanation: "目的規定の保護対象は利用者である。",
	},
	{
		Kind:        KindFillIn,
		ID:          "fi-201-1",
		StandardID:  "std-201",
		Question:    "帳簿は、取引のあった日から〔 〕年間保存しなければならない。",
		Options:     []string{"3", "5", "10"},
		AnswerIndex: 1,
		Explanation: "保存期間は5年間。",
	},
	{
		Kind:        KindFillIn,
		ID:          "fi-301-1",
		StandardID:  "std-301",
		Question:    "重要事項の説明は、〔 〕までの間に行わなければならない。",
		Options:     []string{"契約の成立", "代金の受領", "業務の完了"},
		AnswerIndex: 0,
		Explanation: "説明時期は契約成立前である。",
	},
	{
		Kind:        KindFillIn,
		ID:          "fi-302-1",
		StandardID:  "std-302",
		Question:    "契約締結時の書面は、契約を締結したときは〔 〕交付しなければならない。",
		Options:     []string{"遅滞なく", "1週間以内に", "相手方の請求があったときに"},
		AnswerIndex: 0,
		Explanation: "交付時期は「遅滞なく」である。",
	},
}
