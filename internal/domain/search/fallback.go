package search

import (
	"fmt"
	"net/url"
)

// Fixed presentation literals for the three synthetic offers, indexed by
// rotation position.
var (
	fallbackSuffixes = [3]string{"Best Price", "Deal", "Popular"}
	fallbackRatings  = [3]string{"4.5", "4.2", "4.0"}
	fallbackReviews  = [3]string{"500", "300", "200"}
)

// FallbackStore is one retailer in the synthetic-offer rotation. SearchURL is
// a printf template taking the URL-escaped query.
type FallbackStore struct {
	Name      string
	SearchURL string
}

// FallbackGenerator produces deterministic synthetic offers whenever live
// aggregator data is unavailable or empty.
type FallbackGenerator struct {
	stores []FallbackStore
}

// NewFallbackGenerator builds a generator over the given retailer rotation.
func NewFallbackGenerator(stores []FallbackStore) *FallbackGenerator {
	return &FallbackGenerator{stores: stores}
}

// Generate returns exactly one synthetic offer per store in the rotation,
// priced with the same keyword-tier logic as the normalizer and scaled by
// position.
func (g *FallbackGenerator) Generate(query, originalQuery string) []Offer {
	offers := make([]Offer, 0, len(g.stores))
	escaped := url.QueryEscape(truncateRunes(query, 30))

	for i, store := range g.stores {
		price := SynthesizePrice(query, i)
		offers = append(offers, Offer{
			Title:         fmt.Sprintf("%s - %s", CleanText(query), fallbackSuffixes[i%len(fallbackSuffixes)]),
			DisplayPrice:  fmt.Sprintf("$%.2f", price),
			NumericPrice:  price,
			SourceStore:   store.Name,
			Link:          fmt.Sprintf(store.SearchURL, escaped),
			Rating:        fallbackRatings[i%len(fallbackRatings)],
			ReviewCount:   fallbackReviews[i%len(fallbackReviews)],
			Provenance:    ProvenanceExample,
			OriginalQuery: originalQuery,
		})
	}
	return offers
}
