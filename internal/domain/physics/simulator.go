package physics

import "github.com/go-gl/mathgl/mgl64"

// Frame is one step of the animation loop.
type Frame struct {
	Index    int        `json:"frame"`
	T        float64    `json:"t"`
	Position mgl64.Vec3 `json:"position"`
}

// Simulator replays the per-frame callback of the scene script.
// Time is accumulated frame by frame rather than derived from the index so
// that rounding matches the browser loop.
type Simulator struct {
	params Params
	step   float64
	t      float64
	frame  int
}

// NewSimulator creates a simulator using FrameStep.
func NewSimulator(params Params) *Simulator {
	return &Simulator{params: params, step: FrameStep}
}

// Params returns the parameters the simulator runs with.
func (s *Simulator) Params() Params {
	return s.params
}

// Step advances one frame and returns it.
func (s *Simulator) Step() Frame {
	s.t += s.step
	s.frame++
	return Frame{
		Index:    s.frame,
		T:        s.t,
		Position: s.params.PositionAt(s.t),
	}
}

// Run advances n frames.
func (s *Simulator) Run(n int) []Frame {
	if n <= 0 {
		return nil
	}
	frames := make([]Frame, 0, n)
	for range n {
		frames = append(frames, s.Step())
	}
	return frames
}

// Reset rewinds the simulator to t=0.
func (s *Simulator) Reset() {
	s.t = 0
	s.frame = 0
}
