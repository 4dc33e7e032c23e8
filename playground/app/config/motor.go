package config

// MotorConfig sizes the playground engine.
type MotorConfig struct {
	Power int
}

func (c *MotorConfig) ApplyDefault() {
	if c.Power == 0 {
		c.Power = 120
	}
}
