//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"pricefinder/search-api/internal/domain"
	"pricefinder/search-api/internal/infrastructure"
	"pricefinder/search-api/internal/interfaces"
	"pricefinder/search-api/internal/interfaces/httpserver/routes"
)

func CreateApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		domain.DomainProvider,
		infrastructure.InfrastructureProvider,
		routes.RoutesProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
