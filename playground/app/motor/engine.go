package motor

import (
	"fmt"

	"github.com/a-peyrard/singlet/playground/app/config"
	"github.com/rs/zerolog"
)

// Engine moves the car, its power comes from the motor configuration.
type Engine struct {
	Power  int
	logger zerolog.Logger
}

// NewEngine provides the engine, sized from the motor configuration
//
// @provide
func NewEngine(conf *config.Config, logger zerolog.Logger) (*Engine, error) {
	if conf.Motor.Power <= 0 {
		return nil, fmt.Errorf("engine power must be positive, got %d", conf.Motor.Power)
	}
	return &Engine{Power: conf.Motor.Power, logger: logger}, nil
}

func (e *Engine) Start() string {
	e.logger.Debug().Int("power", e.Power).Msg("starting engine")
	return fmt.Sprintf("vroom (%dhp)", e.Power)
}
