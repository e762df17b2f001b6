package enrollment

import (
	"go.uber.org/fx"

	"github.com/abhijitabd5/sti-academy/internal/course"
	"github.com/abhijitabd5/sti-academy/internal/enrollment/repository"
	"github.com/abhijitabd5/sti-academy/internal/enrollment/service"
)

var Module = fx.Module("enrollment.service",
	course.Module,
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
