//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/asteroids/internal/core/observability/log"
	"github.com/zeusync/asteroids/internal/core/simulation"
)

func InitializeSimulation(cfg simulation.Config, logger log.Log) (*simulation.Simulation, error) {
	wire.Build(SimulationSet)
	return nil, nil
}
