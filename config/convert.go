// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"io"

	"github.com/katalvlaran/reliefroute/internal/logging"
	"github.com/katalvlaran/reliefroute/model"
	"github.com/katalvlaran/reliefroute/solver"
)

// ModelOptions converts the assembly section.
func (c Config) ModelOptions() (model.Options, error) {
	landPolicy, err := model.ParseMissingCostPolicy(c.Assembly.MissingLandCost)
	if err != nil {
		return model.Options{}, fmt.Errorf("%w: assembly.missing_land_cost: %v", ErrInvalid, err)
	}
	capPolicy, err := model.ParseCapacityPolicy(c.Assembly.MissingCapacity)
	if err != nil {
		return model.Options{}, fmt.Errorf("%w: assembly.missing_capacity: %v", ErrInvalid, err)
	}

	return model.Options{
		MissingLandCost: landPolicy,
		Penalty:         c.Assembly.Penalty,
		MissingCapacity: capPolicy,
		Parallelism:     c.Assembly.Parallelism,
	}, nil
}

// SolverOptions converts the solver section. log may be nil.
func (c Config) SolverOptions(log logging.Logger) []solver.Option {
	return []solver.Option{
		solver.WithTimeout(c.Solver.Timeout.Std()),
		solver.WithTolerance(c.Solver.Tolerance),
		solver.WithLogger(log),
	}
}

// LoggingConfig converts the logging section, writing to w.
func (c Config) LoggingConfig(w io.Writer) logging.Config {
	return logging.Config{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		AddSource: c.Logging.AddSource,
		Writer:    w,
	}
}
