//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/janhq/grokart/internal/domain"
	"github.com/janhq/grokart/internal/infrastructure"
	"github.com/janhq/grokart/internal/infrastructure/config"
	"github.com/janhq/grokart/internal/interfaces"
)

func CreateApplication(cfg *config.Config) (*Application, error) {
	wire.Build(
		domain.DomainProvider,
		infrastructure.InfrastructureProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
