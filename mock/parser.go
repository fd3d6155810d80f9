package mock

import "github.com/fwojciec/blaulicht"

var _ blaulicht.ListingParser = (*ListingParser)(nil)

// ListingParser is a mock implementation of blaulicht.ListingParser.
type ListingParser struct {
	FragmentsFn func(html string) ([]*blaulicht.Fragment, error)
}

func (p *ListingParser) Fragments(html string) ([]*blaulicht.Fragment, error) {
	return p.FragmentsFn(html)
}
