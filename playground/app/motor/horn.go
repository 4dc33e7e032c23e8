package motor

// Horn is honked when the car starts.
type Horn interface {
	Honk() string
}

// AirHorn is the loudest horn we have.
type AirHorn struct{}

// NewAirHorn provides the default horn
//
// @provide as=Horn
func NewAirHorn() *AirHorn {
	return &AirHorn{}
}

func (h *AirHorn) Honk() string {
	return "HOOOONK"
}
