package interfaces

import (
	"github.com/google/wire"

	"pricefinder/search-api/internal/interfaces/httpserver"
)

// InterfacesProvider provides all interface layer dependencies
var InterfacesProvider = wire.NewSet(
	httpserver.NewHTTPServer,
)
