package search

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// ComposedQuery is the composer's output: the final query string plus the
// provenance tag for every offer produced from it.
type ComposedQuery struct {
	Query      string
	Provenance Provenance
}

// Composer fuses optional text and an optional product image into one final
// query. It never returns an error: every failure path degrades to a
// non-empty query.
type Composer struct {
	vision Vision
}

// NewComposer returns a Composer backed by the given vision collaborator.
func NewComposer(vision Vision) *Composer {
	return &Composer{vision: vision}
}

// Compose builds the final query. Text is trimmed and truncated to
// MaxQueryLen before use; an invalid image is discarded as if absent.
func (c *Composer) Compose(ctx context.Context, text string, image []byte) ComposedQuery {
	text = truncateRunes(strings.TrimSpace(text), MaxQueryLen)

	if len(image) > 0 {
		if err := c.vision.Validate(image); err != nil {
			log.Warn().Err(err).Msg("image failed validation, proceeding without it")
			image = nil
		}
	}

	var result ComposedQuery
	switch {
	case len(image) > 0 && text != "":
		phrase, err := c.vision.Describe(ctx, image)
		if err != nil || strings.TrimSpace(phrase) == "" {
			log.Warn().Err(err).Msg("vision describe failed, using text only")
			result = ComposedQuery{Query: text, Provenance: ProvenanceTextFallback}
		} else {
			result = ComposedQuery{Query: text + " " + strings.TrimSpace(phrase), Provenance: ProvenanceCombined}
		}
	case len(image) > 0:
		phrase, err := c.vision.Describe(ctx, image)
		if err != nil || strings.TrimSpace(phrase) == "" {
			log.Warn().Err(err).Msg("vision describe failed for image-only request")
			result = ComposedQuery{Query: GenericQuery, Provenance: ProvenanceText}
		} else {
			result = ComposedQuery{Query: strings.TrimSpace(phrase), Provenance: ProvenanceImage}
		}
	case text != "":
		result = ComposedQuery{Query: text, Provenance: ProvenanceText}
	default:
		result = ComposedQuery{Query: GenericQuery, Provenance: ProvenanceText}
	}

	result.Query = strings.TrimSpace(result.Query)
	if len(result.Query) < 2 {
		result.Query = GenericQuery
	}

	log.Debug().
		Str("final_query", result.Query).
		Str("provenance", string(result.Provenance)).
		Msg("query composed")
	return result
}

// truncateRunes shortens s to at most n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
