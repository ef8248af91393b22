package catalog

// Importance ranks how heavily a standard is weighted in the exam.
type Importance string

const (
	ImportanceA Importance = "A"
	ImportanceB Importance = "B"
	ImportanceC Importance = "C"
)

// Standard is a single regulatory text unit. Quizzes attach to standards
// through StandardID.
type Standard struct {
	ID         string
	Title      string
	Importance Importance
	Content    string
	Commentary string
	Category   string // empty when the standard is uncategorized
}

// QuizKind discriminates the two quiz formats.
type QuizKind string

const (
	KindMarubatsu QuizKind = "marubatsu" // true/false (○/×)
	KindFillIn    QuizKind = "fillin"    // multiple choice with one correct option
)

// QuizItem is one quiz question. Kind selects which answer fields apply:
// Answer for marubatsu, Options/AnswerIndex for fill-in.
type QuizItem struct {
	Kind        QuizKind
	ID          string
	StandardID  string
	Question    string
	Answer      bool     // marubatsu only
	Options     []string // fill-in only
	AnswerIndex int      // fill-in only, 0-based index into Options
	Explanation string
}

// Catalog holds the full content set with precomputed indices.
// It is immutable after construction.
type Catalog struct {
	standards  []Standard
	quizzes    []QuizItem
	stdByID    map[string]*Standard
	quizByID   map[string]*QuizItem
	byStandard map[string][]QuizItem
	categories []string
}

// New builds a Catalog from the given content, validating cross-references.
func New(standards []Standard, quizzes []QuizItem) (*Catalog, error) {
	if err := validateContent(standards, quizzes); err != nil {
		return nil, err
	}

	c := &Catalog{
		standards:  standards,
		quizzes:    quizzes,
		stdByID:    make(map[string]*Standard, len(standards)),
		quizByID:   make(map[string]*QuizItem, len(quizzes)),
		byStandard: make(map[string][]QuizItem),
	}

	for i := range c.standards {
		c.stdByID[c.standards[i].ID] = &c.standards[i]
	}
	for i := range c.quizzes {
		q := &c.quizzes[i]
		c.quizByID[q.ID] = q
		c.byStandard[q.StandardID] = append(c.byStandard[q.StandardID], *q)
	}

	// Categories in first-appearance order, skipping uncategorized.
	seen := make(map[string]bool)
	for _, s := range c.standards {
		if s.Category == "" || seen[s.Category] {
			continue
		}
		seen[s.Category] = true
		c.categories = append(c.categories, s.Category)
	}

	return c, nil
}

// Standards returns all standards in authored order.
func (c *Catalog) Standards() []Standard {
	out := make([]Standard, len(c.standards))
	copy(out, c.standards)
	return out
}

// StandardByID looks up a standard by its ID.
func (c *Catalog) StandardByID(id string) (Standard, bool) {
	s, ok := c.stdByID[id]
	if !ok {
		return Standard{}, false
	}
	return *s, true
}

// Quizzes returns every quiz item, both formats pooled.
func (c *Catalog) Quizzes() []QuizItem {
	out := make([]QuizItem, len(c.quizzes))
	copy(out, c.quizzes)
	return out
}

// QuizByID looks up a quiz item by its ID.
func (c *Catalog) QuizByID(id string) (QuizItem, bool) {
	q, ok := c.quizByID[id]
	if !ok {
		return QuizItem{}, false
	}
	return *q, true
}

// QuizzesForStandard returns the quiz items owned by the given standard.
func (c *Catalog) QuizzesForStandard(standardID string) []QuizItem {
	qs := c.byStandard[standardID]
	out := make([]QuizItem, len(qs))
	copy(out, qs)
	return out
}

// Categories returns the distinct standard categories in first-appearance order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// StandardsInCategory returns the standards whose Category matches.
func (c *Catalog) StandardsInCategory(category string) []Standard {
	var out []Standard
	for _, s := range c.standards {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// QuizzesInCategory returns every quiz item whose owning standard belongs
// to the given category.
func (c *Catalog) QuizzesInCategory(category string) []QuizItem {
	ids := make(map[string]bool)
	for _, s := range c.standards {
		if s.Category == category {
			ids[s.ID] = true
		}
	}
	var out []QuizItem
	for _, q := range c.quizzes {
		if ids[q.StandardID] {
			out = append(out, q)
		}
	}
	return out
}
