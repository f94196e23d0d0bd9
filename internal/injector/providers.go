package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/asteroids/internal/core/observability/log"
	"github.com/zeusync/asteroids/internal/core/simulation"
)

var SimulationSet = wire.NewSet(simulation.NewEngine, simulation.New)

// ProvideLogger builds the process logger from the configured level name.
func ProvideLogger(cfg simulation.Config, opts ...log.Option) *log.Logger {
	return log.New(log.ParseLevel(cfg.LogLevel), opts...)
}
