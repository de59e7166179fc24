package lab

import (
	"github.com/lattica-dev/lattica/internal/bargmann"
	"github.com/lattica-dev/lattica/internal/circuit"
)

// Channel is a completely positive map with wires on all four sides.
type Channel struct {
	C   *circuit.Component
	lab *Lab
}

func (l *Lab) newChannel(name string, t bargmann.Triple, modes []int) *Channel {
	c, err := circuit.New(name, t, circuit.NewWires(modes, modes, modes, modes))
	if err != nil {
		panic(err)
	}
	return &Channel{C: c, lab: l}
}

// Attenuator returns the lossy bosonic channel with the given
// transmissivity per mode.
func (l *Lab) Attenuator(transmissivity []float64, modes ...int) *Channel {
	n := paramLen(modes, transmissivity)
	return l.newChannel("Att", bargmann.Attenuator(transmissivity, l.be), defaultModes(modes, n))
}

// Amplifier returns the phase-insensitive amplifier with the given gain
// (>= 1) per mode.
func (l *Lab) Amplifier(gain []float64, modes ...int) *Channel {
	n := paramLen(modes, gain)
	return l.newChannel("Amp", bargmann.Amplifier(gain, l.be), defaultModes(modes, n))
}

// On relabels the channel onto other modes.
func (ch *Channel) On(modes []int) (*Channel, error) {
	c, err := ch.C.On(modes)
	if err != nil {
		return nil, err
	}
	return &Channel{C: c, lab: ch.lab}, nil
}

// Then chains another channel after this one.
func (ch *Channel) Then(next *Channel) (*Channel, error) {
	c, err := ch.C.Compose(next.C)
	if err != nil {
		return nil, err
	}
	return &Channel{C: c, lab: ch.lab}, nil
}
