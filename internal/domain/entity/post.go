package entity

import "time"

// Blog post categories.
const (
	CategoryGrammar    = "grammar"
	CategoryCulture    = "culture"
	CategoryVocabulary = "vocabulary"
	CategoryKanji      = "kanji"
)

// ValidCategory reports whether c is one of the known post categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryGrammar, CategoryCulture, CategoryVocabulary, CategoryKanji:
		return true
	}
	return false
}

// Post is the aggregate root for blog content. Slug is assigned at creation
// and never changes afterwards. Date is the human display string shown on
// the site; CreatedAt is the raw timestamp used for ordering.
type Post struct {
	ID        string
	Slug      string
	Title     string
	Excerpt   string
	Content   string
	Category  string
	Author    string
	AuthorID  string
	Date      string
	ReadTime  string
	Tags      []string
	Featured  bool
	Image     string
	CreatedAt time.Time

	// CommentCount is computed by the repository for listings; it is not a
	// stored column.
	CommentCount int
}
