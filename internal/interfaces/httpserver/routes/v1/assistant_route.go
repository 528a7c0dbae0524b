package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pricefinder/search-api/internal/domain/assistant"
	"pricefinder/search-api/utils/platformerrors"
)

// defaultUserID keys assistant history when no X-User-ID header is sent.
const defaultUserID = "default"

type assistantRequest struct {
	Message string `json:"message"`
}

// AssistantRoute handles the conversational shopping assistant
type AssistantRoute struct {
	service *assistant.Service
}

// NewAssistantRoute creates an AssistantRoute
func NewAssistantRoute(service *assistant.Service) *AssistantRoute {
	return &AssistantRoute{service: service}
}

// RegisterRouter registers the assistant endpoints on the group.
func (r *AssistantRoute) RegisterRouter(router gin.IRouter) {
	router.POST("/assistant", r.chat)
	router.POST("/assistant/clear", r.clear)
}

func (r *AssistantRoute) chat(c *gin.Context) {
	var req assistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be JSON with a message field"})
		return
	}

	reply, err := r.service.Chat(c.Request.Context(), userID(c), req.Message)
	if err != nil {
		var platformErr *platformerrors.PlatformError
		if errors.As(err, &platformErr) {
			c.JSON(platformerrors.ErrorTypeToHTTPStatus(platformErr.Type), gin.H{"error": platformErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "assistant failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": reply})
}

func (r *AssistantRoute) clear(c *gin.Context) {
	r.service.Clear(userID(c))
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

func userID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader("X-User-ID")); id != "" {
		return id
	}
	return defaultUserID
}
