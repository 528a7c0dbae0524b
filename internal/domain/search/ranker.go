package search

import "sort"

// Rank orders offers ascending by numeric price (stable: ties keep arrival
// order), truncates to MaxOffers, and stamps every survivor with the request
// provenance and original query.
func Rank(offers []Offer, provenance Provenance, originalQuery string) []Offer {
	ranked := make([]Offer, len(offers))
	copy(ranked, offers)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].NumericPrice < ranked[j].NumericPrice
	})
	if len(ranked) > MaxOffers {
		ranked = ranked[:MaxOffers]
	}
	for i := range ranked {
		ranked[i].Provenance = provenance
		ranked[i].OriginalQuery = originalQuery
	}
	return ranked
}
