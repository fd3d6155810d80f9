// Package goquery implements blaulicht.ListingParser with CSS selectors
// over a goquery document.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/blaulicht"
	"golang.org/x/text/unicode/norm"
)

// Ensure Parser implements blaulicht.ListingParser at compile time.
var _ blaulicht.ListingParser = (*Parser)(nil)

// Selectors locates the parts of a listing. Article is matched against the
// whole document; every other selector is matched inside one article.
type Selectors struct {
	Article   string
	Date      string
	Topic     string
	Headline  string
	Agency    string
	Paragraph string
}

// DefaultSelectors matches the presseportal Blaulicht listing.
func DefaultSelectors() Selectors {
	return Selectors{
		Article:   "article.news",
		Date:      ".date",
		Topic:     ".news-topic",
		Headline:  "h1 a, h2 a, h3 a, h4 a",
		Agency:    ".customer a, a.customer",
		Paragraph: "p",
	}
}

// Parser reads raw fragments from listing markup.
type Parser struct {
	selectors Selectors
}

// NewParser creates a Parser using DefaultSelectors.
func NewParser() *Parser {
	return NewParserWithSelectors(DefaultSelectors())
}

// NewParserWithSelectors creates a Parser with custom selectors.
func NewParserWithSelectors(s Selectors) *Parser {
	return &Parser{selectors: s}
}

// Fragments parses HTML and returns one fragment per article in document
// order. Missing sub-elements leave the matching field empty; deciding
// whether that is fatal is left to blaulicht.NewIncident.
func (p *Parser) Fragments(html string) ([]*blaulicht.Fragment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, blaulicht.Errorf(blaulicht.EINVALID, "failed to parse HTML: %v", err)
	}

	fragments := []*blaulicht.Fragment{}
	doc.Find(p.selectors.Article).Each(func(i int, article *goquery.Selection) {
		fragments = append(fragments, p.fragment(i, article))
	})

	return fragments, nil
}

func (p *Parser) fragment(index int, article *goquery.Selection) *blaulicht.Fragment {
	f := &blaulicht.Fragment{
		Index:    index,
		DateText: firstText(article, p.selectors.Date),
		Topic:    firstText(article, p.selectors.Topic),
		Agency:   firstText(article, p.selectors.Agency),
	}

	if anchor := article.Find(p.selectors.Headline).First(); anchor.Length() > 0 {
		f.Headline = cleanText(anchor.Text())
		if href, ok := anchor.Attr("href"); ok {
			f.Href = strings.TrimSpace(href)
		}
	}

	article.Find(p.selectors.Paragraph).Each(func(_ int, para *goquery.Selection) {
		f.Paragraphs = append(f.Paragraphs, cleanText(para.Text()))
	})

	return f
}

// firstText returns the cleaned text of the first match, or "" if none.
func firstText(sel *goquery.Selection, selector string) string {
	match := sel.Find(selector).First()
	if match.Length() == 0 {
		return ""
	}
	return cleanText(match.Text())
}

// cleanText collapses runs of whitespace (including non-breaking spaces)
// and normalizes to NFC so umlauts compare equal regardless of encoding.
func cleanText(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}
