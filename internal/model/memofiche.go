package model

import (
	"database/sql/driver"
	"time"
)

// Section is one node of the memo content tree. Nesting is one level deep:
// children never carry children of their own.
type Section struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"` // markdown
	Children []Section `json:"children,omitempty"`
}

// Flashcard is a question/answer pair.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuizQuestion is one quiz entry with its options and explanation.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Type          string   `json:"type"` // "mcq" | "truefalse"
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// GlossaryTerm is a term/definition pair.
type GlossaryTerm struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// ExternalResource links out to supporting material.
type ExternalResource struct {
	Type  string `json:"type"` // video | podcast | quiz | article
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ── JSONB column types ──

type Sections []Section

func (s *Sections) Scan(src interface{}) error  { return jsonbScan(src, s) }
func (s Sections) Value() (driver.Value, error) { return jsonbValue(s) }

type Flashcards []Flashcard

func (f *Flashcards) Scan(src interface{}) error  { return jsonbScan(src, f) }
func (f Flashcards) Value() (driver.Value, error) { return jsonbValue(f) }

type QuizQuestions []QuizQuestion

func (q *QuizQuestions) Scan(src interface{}) error  { return jsonbScan(src, q) }
func (q QuizQuestions) Value() (driver.Value, error) { return jsonbValue(q) }

type GlossaryTerms []GlossaryTerm

func (g *GlossaryTerms) Scan(src interface{}) error  { return jsonbScan(src, g) }
func (g GlossaryTerms) Value() (driver.Value, error) { return jsonbValue(g) }

type ExternalResources []ExternalResource

func (e *ExternalResources) Scan(src interface{}) error  { return jsonbScan(src, e) }
func (e ExternalResources) Value() (driver.Value, error) { return jsonbValue(e) }

// MemoFiche is one training-content unit. Theme and systeme_organe are
// denormalized copies (id + nom) taken at write time, not live foreign keys;
// rewrites re-resolve them through the taxonomy dedup rule.
type MemoFiche struct {
	FicheID           string            `gorm:"column:fiche_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title             string            `gorm:"type:varchar(300);not null"           json:"title"`
	ShortDescription  string            `gorm:"type:text;not null;default:''"        json:"shortDescription"`
	ImageURL          string            `gorm:"column:image_url;type:text;not null;default:''" json:"imageUrl"`
	FlashSummary      string            `gorm:"type:text;not null;default:''"        json:"flashSummary"`
	Level             string            `gorm:"type:varchar(20);not null;default:'Débutant'" json:"level"`
	MemoContent       Sections          `gorm:"type:jsonb;not null;default:'[]'"     json:"memoContent"`
	Flashcards        Flashcards        `gorm:"type:jsonb;not null;default:'[]'"     json:"flashcards"`
	Quiz              QuizQuestions     `gorm:"type:jsonb;not null;default:'[]'"     json:"quiz"`
	GlossaryTerms     GlossaryTerms     `gorm:"type:jsonb;not null;default:'[]'"     json:"glossaryTerms"`
	ExternalResources ExternalResources `gorm:"type:jsonb;not null;default:'[]'"     json:"externalResources"`
	KahootURL         string            `gorm:"column:kahoot_url;type:text"          json:"kahootUrl,omitempty"`
	ThemeID           string            `gorm:"column:theme_id;type:varchar(64);not null"    json:"-"`
	ThemeNom          string            `gorm:"column:theme_nom;type:varchar(200);not null"  json:"-"`
	SystemeID         string            `gorm:"column:systeme_id;type:varchar(64);not null"  json:"-"`
	SystemeNom        string            `gorm:"column:systeme_nom;type:varchar(200);not null" json:"-"`
	CreatedAt         time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"   json:"createdAt"`
}

// TableName sets the table name.
func (MemoFiche) TableName() string { return "memofiches" }

// HasQuiz reports whether the fiche carries at least one quiz question.
func (m *MemoFiche) HasQuiz() bool { return len(m.Quiz) > 0 }
