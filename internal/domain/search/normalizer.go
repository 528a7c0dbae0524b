package search

import (
	"fmt"
	"html"
	"math"
	"net/url"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// pricePattern matches a dollar amount: 1-4 leading digits, optional
// thousands separators, optional 2-decimal fraction.
var pricePattern = regexp.MustCompile(`\$\s*(\d{1,4}(?:,\d{3})*(?:\.\d{2})?)`)

const (
	minPrice = 0.01
	maxPrice = 50000
)

// Tier bases for synthesized prices, keyed by title keywords.
var (
	electronicsKeywords = []string{"phone", "laptop"}
	apparelKeywords     = []string{"shirt", "shoes"}
)

const (
	electronicsBase = 400
	apparelBase     = 35
	defaultBase     = 25
)

// Normalizer turns one raw aggregator payload into a cleaned, filtered offer
// list. It performs no I/O.
type Normalizer struct {
	blacklist []string
}

// NewNormalizer builds a Normalizer with the given blacklisted marketplace
// substrings (matched case-insensitively against store names).
func NewNormalizer(blacklist []string) *Normalizer {
	lowered := make([]string, 0, len(blacklist))
	for _, b := range blacklist {
		if b = strings.ToLower(strings.TrimSpace(b)); b != "" {
			lowered = append(lowered, b)
		}
	}
	return &Normalizer{blacklist: lowered}
}

// Normalize processes at most the first MaxOffersPerCall entries of the
// payload array selected by engine. Malformed entries are skipped, never
// fatal.
func (n *Normalizer) Normalize(payload *AggregatorPayload, engine string) []Offer {
	items := payload.ResultsFor(engine)
	if len(items) == 0 {
		return nil
	}
	if len(items) > MaxOffersPerCall {
		items = items[:MaxOffersPerCall]
	}

	offers := make([]Offer, 0, MaxOffersPerCall)
	for _, item := range items {
		if item == nil {
			continue
		}
		store := stringField(item, "source")
		if n.isBlacklistedStore(store) {
			log.Debug().Str("store", store).Msg("skipping blacklisted store")
			continue
		}
		title := stringField(item, "title")
		if len(title) < 3 {
			continue
		}

		displayPrice := stringField(item, "price")
		numericPrice := ExtractPrice(displayPrice)
		if numericPrice == 0 {
			numericPrice = SynthesizePrice(title, len(offers))
			displayPrice = fmt.Sprintf("$%.2f", numericPrice)
		}

		offers = append(offers, Offer{
			Title:        CleanText(title),
			DisplayPrice: displayPrice,
			NumericPrice: numericPrice,
			SourceStore:  cleanStore(store),
			Link:         resolveLink(item),
			Rating:       stringField(item, "rating"),
			ReviewCount:  stringField(item, "reviews"),
		})
		if len(offers) >= MaxOffersPerCall {
			break
		}
	}
	return offers
}

func (n *Normalizer) isBlacklistedStore(source string) bool {
	if source == "" {
		return false
	}
	lowered := strings.ToLower(source)
	for _, blocked := range n.blacklist {
		if strings.Contains(lowered, blocked) {
			return true
		}
	}
	return false
}

// ExtractPrice pulls a numeric dollar price out of heterogeneous price text.
// Returns 0 when no acceptable price is found; 0 is a transient sentinel that
// must be replaced before the offer leaves the normalizer.
func ExtractPrice(priceStr string) float64 {
	if priceStr == "" {
		return 0
	}
	match := pricePattern.FindStringSubmatch(priceStr)
	if match == nil {
		return 0
	}
	var value float64
	if _, err := fmt.Sscanf(strings.ReplaceAll(match[1], ",", ""), "%f", &value); err != nil {
		return 0
	}
	if value < minPrice || value > maxPrice {
		return 0
	}
	return value
}

// SynthesizePrice picks a keyword-tier base for the query and scales it by
// the offer's position: base * (1 + index*0.15), rounded to cents.
func SynthesizePrice(query string, index int) float64 {
	lowered := strings.ToLower(query)
	base := float64(defaultBase)
	if containsAny(lowered, electronicsKeywords) {
		base = electronicsBase
	} else if containsAny(lowered, apparelKeywords) {
		base = apparelBase
	}
	return math.Round(base*(1+float64(index)*0.15)*100) / 100
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// CleanText HTML-escapes and truncates free text to 120 characters; empty
// input becomes the NoInformation placeholder.
func CleanText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return NoInformation
	}
	return html.EscapeString(truncateRunes(text, 120))
}

func cleanStore(source string) string {
	if strings.TrimSpace(source) == "" {
		return "Store"
	}
	return CleanText(source)
}

// resolveLink walks the 3-level link ladder: explicit product link, explicit
// generic link, constructed marketplace-search URL, placeholder.
func resolveLink(item map[string]any) string {
	if link := stringField(item, "product_link"); link != "" {
		return link
	}
	if link := stringField(item, "link"); link != "" {
		return link
	}
	if title := stringField(item, "title"); title != "" {
		escaped := url.QueryEscape(truncateRunes(title, 50))
		return "https://www.google.com/search?tbm=shop&q=" + escaped
	}
	return PlaceholderLink
}

// stringField reads a field from a loosely typed aggregator entry, rendering
// numbers (ratings, review counts) as strings and absent values as "".
func stringField(m map[string]any, key string) string {
	val, ok := m[key]
	if !ok || val == nil {
		return ""
	}
	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == math.Trunc(v) {
			return fmt.Sprintf("%d", int64(v))
		}
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
	case int:
		return fmt.Sprintf("%d", v)
	default:
		return ""
	}
}
