package search

import "context"

// Provenance records where an offer's search originated.
type Provenance string

const (
	// ProvenanceText marks a search driven by caller text only.
	ProvenanceText Provenance = "text"
	// ProvenanceImage marks a search driven by an image-derived phrase only.
	ProvenanceImage Provenance = "image"
	// ProvenanceCombined marks a search fusing text and an image phrase.
	ProvenanceCombined Provenance = "combined"
	// ProvenanceTextFallback marks a combined request whose vision call
	// failed, degrading to text only.
	ProvenanceTextFallback Provenance = "text_fallback"
	// ProvenanceExample marks synthetic offers from the fallback generator.
	ProvenanceExample Provenance = "example"
)

const (
	// GenericQuery replaces final queries that end up empty or too short.
	GenericQuery = "product"
	// ImageOnlyQuery is the originalQuery sentinel for image-only requests.
	ImageOnlyQuery = "image search"
	// MaxQueryLen bounds caller-supplied text.
	MaxQueryLen = 80
	// MaxImageBytes bounds caller-supplied images (10 MB).
	MaxImageBytes = 10 * 1024 * 1024
	// MaxOffers bounds every response list.
	MaxOffers = 6
	// MaxOffersPerCall bounds what a single normalizer pass may accept.
	MaxOffersPerCall = 3

	// NoInformation replaces empty titles and store names.
	NoInformation = "No information"
	// PlaceholderLink is the literal link of last resort.
	PlaceholderLink = "#"
)

// Offer is the unit returned to callers.
type Offer struct {
	Title         string     `json:"title"`
	DisplayPrice  string     `json:"price"`
	NumericPrice  float64    `json:"price_numeric"`
	SourceStore   string     `json:"source"`
	Link          string     `json:"link"`
	Rating        string     `json:"rating"`
	ReviewCount   string     `json:"reviews"`
	Provenance    Provenance `json:"search_source"`
	OriginalQuery string     `json:"original_query"`
}

// AggregatorPayload is the raw JSON body returned by the product-search
// aggregator. Entries stay loosely typed; the normalizer is responsible for
// tolerating malformed items.
type AggregatorPayload struct {
	ShoppingResults []map[string]any `json:"shopping_results"`
	OrganicResults  []map[string]any `json:"organic_results"`
}

// ResultsFor returns the entry array matching the configured engine.
func (p *AggregatorPayload) ResultsFor(engine string) []map[string]any {
	if p == nil {
		return nil
	}
	if engine == "google_shopping" {
		return p.ShoppingResults
	}
	return p.OrganicResults
}

// Gateway issues one bounded request to the external aggregator.
type Gateway interface {
	// Configured reports whether a credential is available. When false the
	// orchestrator skips the live path entirely.
	Configured() bool
	// Fetch returns the raw aggregator payload. Any transport or status
	// failure is a soft error; the caller degrades to the fallback ladder.
	Fetch(ctx context.Context, finalQuery string) (*AggregatorPayload, error)
}

// Vision is the external image-to-text collaborator plus its companion
// validator.
type Vision interface {
	// Validate rejects images that are undersized, oversized or not in an
	// accepted format.
	Validate(data []byte) error
	// Describe turns image bytes into a single-line search phrase.
	Describe(ctx context.Context, data []byte) (string, error)
}

// ResultCache stores ranked offer lists keyed by the hashed final query.
type ResultCache interface {
	Get(key uint64) ([]Offer, bool)
	Put(key uint64, offers []Offer)
}
