package routes

import (
	"github.com/google/wire"

	v1 "pricefinder/search-api/internal/interfaces/httpserver/routes/v1"
)

// RoutesProvider provides all route dependencies
var RoutesProvider = wire.NewSet(
	v1.NewSearchRoute,
	v1.NewAssistantRoute,
	v1.NewStatusRoute,
	v1.NewAPIRoute,
)
