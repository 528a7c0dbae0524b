package search

import (
	"context"
	"errors"
	"testing"

	"pricefinder/search-api/utils/platformerrors"
)

type fakeGateway struct {
	configured bool
	payload    *AggregatorPayload
	err        error
	calls      int
}

func (f *fakeGateway) Configured() bool {
	return f.configured
}

func (f *fakeGateway) Fetch(ctx context.Context, finalQuery string) (*AggregatorPayload, error) {
	f.calls++
	return f.payload, f.err
}

type fakeCache struct {
	entries map[uint64][]Offer
	puts    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[uint64][]Offer)}
}

func (f *fakeCache) Get(key uint64) ([]Offer, bool) {
	offers, ok := f.entries[key]
	return offers, ok
}

func (f *fakeCache) Put(key uint64, offers []Offer) {
	f.puts++
	f.entries[key] = offers
}

func newTestService(gateway Gateway, cache ResultCache, vision Vision) *Service {
	if vision == nil {
		vision = &fakeVision{}
	}
	return NewService(
		NewComposer(vision),
		gateway,
		NewNormalizer(defaultTestBlacklist()),
		NewFallbackGenerator(testFallbackStores()),
		cache,
		"google_shopping",
	)
}

func TestSearchProductsRejectsEmptyRequest(t *testing.T) {
	svc := newTestService(&fakeGateway{}, newFakeCache(), nil)

	_, err := svc.SearchProducts(context.Background(), "   ", nil)
	if err == nil {
		t.Fatal("expected an error for an empty request")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("expected a validation error, got %v", err)
	}
}

func TestSearchProductsUnconfiguredGatewayServesFallback(t *testing.T) {
	gateway := &fakeGateway{configured: false}
	svc := newTestService(gateway, newFakeCache(), nil)

	offers, err := svc.SearchProducts(context.Background(), "book", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offers) != 3 {
		t.Fatalf("expected 3 fallback offers, got %d", len(offers))
	}
	if gateway.calls != 0 {
		t.Errorf("gateway called %d times without a credential", gateway.calls)
	}
	for _, o := range offers {
		if o.Provenance != ProvenanceExample {
			t.Errorf("provenance = %q, want %q", o.Provenance, ProvenanceExample)
		}
		if o.OriginalQuery != "book" {
			t.Errorf("original query = %q, want %q", o.OriginalQuery, "book")
		}
	}
}

func TestSearchProductsGatewayErrorServesFallbackUncached(t *testing.T) {
	gateway := &fakeGateway{configured: true, err: errors.New("connect timeout")}
	cache := newFakeCache()
	svc := newTestService(gateway, cache, nil)

	offers, err := svc.SearchProducts(context.Background(), "book", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offers) != 3 {
		t.Fatalf("expected 3 fallback offers, got %d", len(offers))
	}
	if cache.puts != 0 {
		t.Errorf("fallback offers must not be cached, got %d puts", cache.puts)
	}
}

func TestSearchProductsEmptyPayloadServesFallback(t *testing.T) {
	gateway := &fakeGateway{configured: true, payload: &AggregatorPayload{}}
	svc := newTestService(gateway, newFakeCache(), nil)

	offers, err := svc.SearchProducts(context.Background(), "book", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offers) == 0 {
		t.Fatal("expected fallback offers for an empty payload")
	}
	if offers[0].Provenance != ProvenanceExample {
		t.Errorf("provenance = %q, want %q", offers[0].Provenance, ProvenanceExample)
	}
}

func TestSearchProductsLivePathRanksAndCaches(t *testing.T) {
	gateway := &fakeGateway{
		configured: true,
		payload: &AggregatorPayload{
			ShoppingResults: []map[string]any{
				{"title": "Lamp Deluxe", "price": "$30.00", "source": "Target"},
				{"title": "Lamp Basic", "price": "$10.00", "source": "Walmart"},
				{"title": "Lamp Mid", "price": "$20.00", "source": "Amazon"},
			},
		},
	}
	cache := newFakeCache()
	svc := newTestService(gateway, cache, nil)

	offers, err := svc.SearchProducts(context.Background(), "lamp", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offers) != 3 {
		t.Fatalf("expected 3 offers, got %d", len(offers))
	}
	for i := 1; i < len(offers); i++ {
		if offers[i].NumericPrice < offers[i-1].NumericPrice {
			t.Errorf("offers not sorted ascending at %d", i)
		}
	}
	for _, o := range offers {
		if o.Provenance != ProvenanceText {
			t.Errorf("provenance = %q, want %q", o.Provenance, ProvenanceText)
		}
		if o.NumericPrice <= 0 {
			t.Errorf("offer has non-positive price %v", o.NumericPrice)
		}
	}
	if cache.puts != 1 {
		t.Errorf("expected 1 cache put, got %d", cache.puts)
	}
}

func TestSearchProductsCacheHitSkipsGateway(t *testing.T) {
	gateway := &fakeGateway{
		configured: true,
		payload: &AggregatorPayload{
			ShoppingResults: []map[string]any{
				{"title": "Lamp Basic", "price": "$10.00", "source": "Walmart"},
			},
		},
	}
	cache := newFakeCache()
	svc := newTestService(gateway, cache, nil)

	first, err := svc.SearchProducts(context.Background(), "lamp", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.SearchProducts(context.Background(), "lamp", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gateway.calls != 1 {
		t.Errorf("gateway called %d times, want 1", gateway.calls)
	}
	if len(first) != len(second) {
		t.Fatalf("cache changed the offer count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("cached offer %d differs from original", i)
		}
	}
}

func TestSearchProductsImageOnlyOriginalQuerySentinel(t *testing.T) {
	vision := &fakeVision{phrase: "blue ceramic mug"}
	gateway := &fakeGateway{configured: false}
	svc := newTestService(gateway, newFakeCache(), vision)

	offers, err := svc.SearchProducts(context.Background(), "", []byte("img"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, o := range offers {
		if o.OriginalQuery != ImageOnlyQuery {
			t.Errorf("original query = %q, want %q", o.OriginalQuery, ImageOnlyQuery)
		}
	}
}

func TestSearchProductsNeverExceedsMaxOffers(t *testing.T) {
	items := make([]map[string]any, 10)
	for i := range items {
		items[i] = map[string]any{"title": "Lamp Model X", "price": "$10.00", "source": "Shop"}
	}
	gateway := &fakeGateway{configured: true, payload: &AggregatorPayload{ShoppingResults: items}}
	svc := newTestService(gateway, newFakeCache(), nil)

	offers, err := svc.SearchProducts(context.Background(), "lamp", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offers) == 0 || len(offers) > MaxOffers {
		t.Errorf("offer count %d outside 1..%d", len(offers), MaxOffers)
	}
}

func TestCacheKeyNormalizesCaseAndSpace(t *testing.T) {
	if CacheKey("iPhone 15") != CacheKey("  iphone 15  ") {
		t.Error("cache key should ignore case and surrounding whitespace")
	}
	if CacheKey("iphone 15") == CacheKey("iphone 16") {
		t.Error("distinct queries should hash differently")
	}
}
