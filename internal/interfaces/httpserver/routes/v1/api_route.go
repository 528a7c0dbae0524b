// Package v1 exposes the public REST API of the search service.
package v1

import "github.com/gin-gonic/gin"

// APIRoute aggregates every v1 endpoint group.
type APIRoute struct {
	search    *SearchRoute
	assistant *AssistantRoute
	status    *StatusRoute
}

// NewAPIRoute creates the v1 route aggregate
func NewAPIRoute(
	search *SearchRoute,
	assistant *AssistantRoute,
	status *StatusRoute,
) *APIRoute {
	return &APIRoute{
		search:    search,
		assistant: assistant,
		status:    status,
	}
}

// RegisterRouter mounts all v1 endpoints on the group.
func (r *APIRoute) RegisterRouter(router gin.IRouter) {
	r.search.RegisterRouter(router)
	r.assistant.RegisterRouter(router)
	r.status.RegisterRouter(router)
}
