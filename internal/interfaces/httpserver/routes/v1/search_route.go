package v1

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"pricefinder/search-api/internal/domain/search"
	"pricefinder/search-api/utils/platformerrors"
)

// searchTimeout bounds one end-to-end search request.
const searchTimeout = 15 * time.Second

// SearchResponse is the JSON body of a successful product search.
type SearchResponse struct {
	Results       []search.Offer `json:"results"`
	Total         int            `json:"total"`
	SearchType    string         `json:"search_type"`
	OriginalQuery string         `json:"original_query"`
	Stats         SearchStats    `json:"stats"`
}

// SearchStats summarizes the offer list for the results page.
type SearchStats struct {
	Count        int     `json:"count"`
	BestPrice    float64 `json:"best_price"`
	AveragePrice float64 `json:"average_price"`
}

// SearchRoute handles product search requests
type SearchRoute struct {
	service *search.Service
}

// NewSearchRoute creates a SearchRoute
func NewSearchRoute(service *search.Service) *SearchRoute {
	return &SearchRoute{service: service}
}

// RegisterRouter registers the search endpoint on the group.
func (r *SearchRoute) RegisterRouter(router gin.IRouter) {
	router.POST("/search", r.search)
}

// search accepts a multipart form with an optional `query` text field and an
// optional `image_file` part. It answers 400 only when both are absent or the
// image part cannot be read; every other path returns offers.
func (r *SearchRoute) search(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), searchTimeout)
	defer cancel()

	query := strings.TrimSpace(c.PostForm("query"))

	image, ok := r.readImagePart(c)
	if !ok {
		return
	}

	offers, err := r.service.SearchProducts(ctx, query, image)
	if err != nil {
		var platformErr *platformerrors.PlatformError
		status := http.StatusInternalServerError
		message := "search failed"
		if errors.As(err, &platformErr) {
			status = platformerrors.ErrorTypeToHTTPStatus(platformErr.Type)
			message = platformErr.Message
		}
		log.Warn().Err(err).Msg("search request rejected")
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, buildSearchResponse(offers))
}

// readImagePart extracts the optional image upload. A missing part is fine;
// an unreadable or oversized one aborts the request with 400.
func (r *SearchRoute) readImagePart(c *gin.Context) ([]byte, bool) {
	file, err := c.FormFile("image_file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, true
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "image upload could not be read"})
		return nil, false
	}
	if file.Size > search.MaxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is too large"})
		return nil, false
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image upload could not be read"})
		return nil, false
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, search.MaxImageBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image upload could not be read"})
		return nil, false
	}
	if len(data) > search.MaxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is too large"})
		return nil, false
	}
	return data, true
}

func buildSearchResponse(offers []search.Offer) SearchResponse {
	resp := SearchResponse{
		Results: offers,
		Total:   len(offers),
	}
	if len(offers) == 0 {
		return resp
	}

	resp.SearchType = string(offers[0].Provenance)
	resp.OriginalQuery = offers[0].OriginalQuery

	best := offers[0].NumericPrice
	var sum float64
	for _, o := range offers {
		if o.NumericPrice < best {
			best = o.NumericPrice
		}
		sum += o.NumericPrice
	}
	resp.Stats = SearchStats{
		Count:        len(offers),
		BestPrice:    best,
		AveragePrice: roundCents(sum / float64(len(offers))),
	}
	return resp
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
