package course

import (
	"go.uber.org/fx"

	"github.com/abhijitabd5/sti-academy/internal/course/repository"
	"github.com/abhijitabd5/sti-academy/internal/course/service"
)

var Module = fx.Module("course.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
