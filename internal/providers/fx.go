package providers

import (
	"go.uber.org/fx"

	"github.com/abhijitabd5/sti-academy/internal/providers/pdf"
)

var Module = fx.Module("providers",
	pdf.Module,
)
