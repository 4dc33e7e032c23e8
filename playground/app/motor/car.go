package motor

import (
	"github.com/rs/zerolog"
)

// Car is the playground root component.
type Car struct {
	engine *Engine
	horn   Horn
	logger zerolog.Logger
}

// NewCar provides a car wired with its engine and horn
//
// @provide
func NewCar(engine *Engine, horn Horn, logger zerolog.Logger) *Car {
	return &Car{engine: engine, horn: horn, logger: logger}
}

// Drive starts the engine and honks, proving every part was wired.
func (c *Car) Drive() {
	c.logger.Info().Msgf("🚗 %s %s", c.engine.Start(), c.horn.Honk())
}
