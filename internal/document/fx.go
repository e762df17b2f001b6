package document

import (
	"go.uber.org/fx"

	"github.com/abhijitabd5/sti-academy/internal/document/repository"
	"github.com/abhijitabd5/sti-academy/internal/document/service"
)

var Module = fx.Module("document.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
