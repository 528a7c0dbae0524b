package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pricefinder/search-api/internal/infrastructure/config"
)

// StatusRoute reports which optional collaborators are configured
type StatusRoute struct {
	config *config.Config
}

// NewStatusRoute creates a StatusRoute
func NewStatusRoute(cfg *config.Config) *StatusRoute {
	return &StatusRoute{config: cfg}
}

// RegisterRouter registers the status endpoint on the group.
func (r *StatusRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/status", r.status)
}

func (r *StatusRoute) status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":               "ok",
		"aggregator_available": r.config.SerpAPIKey != "",
		"vision_available":     r.config.GeminiAPIKey != "",
		"assistant_available":  r.config.AssistantBaseURL != "",
	})
}
