package blaulicht

// Fragment is the raw text read from one listed item before normalization.
// Fields the parser could not locate are left empty.
type Fragment struct {
	// Index is the fragment's zero-based position in the document.
	Index int

	DateText   string
	Topic      string
	Headline   string
	Href       string
	Agency     string
	Paragraphs []string
}

// ListingParser turns listing markup into fragments.
type ListingParser interface {
	// Fragments parses the HTML and returns every article fragment in
	// document order. A page without articles returns an empty slice.
	Fragments(html string) ([]*Fragment, error)
}
