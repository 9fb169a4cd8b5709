package domain

import (
	"github.com/google/wire"

	"github.com/janhq/grokart/internal/domain/imagegen"
)

// DomainProvider provides all domain services
var DomainProvider = wire.NewSet(
	imagegen.NewValidator,
	imagegen.NewService,
)
