// Package physics holds the projectile model animated by the scene document.
//
// The model is deliberately simple: wind adds to the muzzle velocity along the
// wind heading, the vertical launch speed is fixed, and gravity pulls along z.
// There is no drag, no collision and no ground plane.
package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultWindSpeed is the wind speed in m/s.
	DefaultWindSpeed = 10.0
	// DefaultWindDir is the wind heading in degrees.
	DefaultWindDir = 0.0
	// DefaultBulletSpeed is the muzzle speed in m/s.
	DefaultBulletSpeed = 50.0
	// DefaultGravity is the gravitational acceleration in m/s².
	DefaultGravity = 9.81

	// LiftSpeed is the constant upward launch component.
	LiftSpeed = 10.0
	// FrameStep is the time added on every animation frame.
	FrameStep = 0.05
)

// LaunchPoint is where the bullet leaves the gun barrel.
var LaunchPoint = mgl64.Vec3{1.5, 1.2, 0}

// ErrInvalidParams is returned when a parameter cannot produce a finite trajectory.
var ErrInvalidParams = errors.New("invalid physics parameters")

// Params are the four tunables baked into the scene script.
type Params struct {
	WindSpeed   float64 `json:"wind_speed" mapstructure:"wind_speed"`
	WindDir     float64 `json:"wind_dir" mapstructure:"wind_dir"`
	BulletSpeed float64 `json:"bullet_speed" mapstructure:"bullet_speed"`
	Gravity     float64 `json:"gravity" mapstructure:"gravity"`
}

// DefaultParams returns the literals the scene ships with.
func DefaultParams() Params {
	return Params{
		WindSpeed:   DefaultWindSpeed,
		WindDir:     DefaultWindDir,
		BulletSpeed: DefaultBulletSpeed,
		Gravity:     DefaultGravity,
	}
}

// Validate rejects NaN and infinite values.
func (p Params) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"wind_speed", p.WindSpeed},
		{"wind_dir", p.WindDir},
		{"bullet_speed", p.BulletSpeed},
		{"gravity", p.Gravity},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParams, f.name, f.value)
		}
	}
	return nil
}

// WindRadians converts the wind heading to radians.
func (p Params) WindRadians() float64 {
	return p.WindDir * math.Pi / 180
}

// Velocity returns the constant launch velocity.
// Wind only contributes to y through its own heading; the bullet itself is
// fired along the wind heading on the x axis.
func (p Params) Velocity() mgl64.Vec3 {
	rad := p.WindRadians()
	return mgl64.Vec3{
		p.BulletSpeed*math.Cos(rad) + p.WindSpeed*math.Cos(rad),
		p.WindSpeed * math.Sin(rad),
		LiftSpeed,
	}
}

// PositionAt returns the bullet position t seconds after launch.
func (p Params) PositionAt(t float64) mgl64.Vec3 {
	v := p.Velocity()
	return mgl64.Vec3{
		LaunchPoint.X() + v.X()*t,
		LaunchPoint.Y() + v.Y()*t,
		v.Z()*t - 0.5*p.Gravity*t*t,
	}
}

// ApexTime returns when the vertical velocity reaches zero.
// It returns false when gravity is not positive and the bullet never turns.
func (p Params) ApexTime() (float64, bool) {
	if p.Gravity <= 0 {
		return 0, false
	}
	return LiftSpeed / p.Gravity, true
}
