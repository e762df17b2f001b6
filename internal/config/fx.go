package config

import "go.uber.org/fx"

// Module wires application and GST rate configuration.
var Module = fx.Module("config",
	fx.Provide(
		Load,
		NewGSTConfigHolder,
	),
)
