package physics

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// KilometresPerHour is the number of km/h in one m/s.
const KilometresPerHour = 3.6

// ErrInvalidWind is returned when an observed wind cannot drive the scene.
var ErrInvalidWind = errors.New("invalid wind")

// Wind is an observed or forecast wind at launch height.
type Wind struct {
	// Speed in m/s.
	Speed float64
	// Direction in degrees.
	Direction float64
	// At is the observation time, zero when the source has none.
	At time.Time
}

// WindFromKmh builds a Wind from a speed in km/h.
func WindFromKmh(speedKmh, direction float64, at time.Time) Wind {
	return Wind{Speed: speedKmh / KilometresPerHour, Direction: direction, At: at}
}

// Validate rejects non-finite values and negative speeds.
func (w Wind) Validate() error {
	if math.IsNaN(w.Speed) || math.IsInf(w.Speed, 0) || w.Speed < 0 {
		return fmt.Errorf("%w: speed must be a finite non-negative number, got %v", ErrInvalidWind, w.Speed)
	}
	if math.IsNaN(w.Direction) || math.IsInf(w.Direction, 0) {
		return fmt.Errorf("%w: direction must be finite, got %v", ErrInvalidWind, w.Direction)
	}
	return nil
}

// Apply returns p with its wind speed and direction replaced by w.
func (w Wind) Apply(p Params) (Params, error) {
	if err := w.Validate(); err != nil {
		return p, err
	}
	p.WindSpeed = w.Speed
	p.WindDir = w.Direction
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}
