// Package scene describes the fixed set of objects placed in the 3D view.
package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/bnema/ballistic/internal/domain/physics"
)

// GeometryKind names the three.js geometry used for a mesh.
type GeometryKind string

const (
	GeometryBox      GeometryKind = "BoxGeometry"
	GeometryCylinder GeometryKind = "CylinderGeometry"
	GeometrySphere   GeometryKind = "SphereGeometry"
)

// Color is a 24-bit RGB value.
type Color uint32

// Hex formats the color as a JS hex literal.
func (c Color) Hex() string {
	return fmt.Sprintf("0x%06x", uint32(c)&0xffffff)
}

// Mesh is a geometry with a basic material.
type Mesh struct {
	Name     string
	Comment  string
	Geometry GeometryKind
	// Args are the geometry constructor arguments in three.js order.
	Args     []float64
	Color    Color
	Position mgl64.Vec3
	// RotationZ is only set for meshes that need to be turned.
	RotationZ float64
}

// Light is a directional light.
type Light struct {
	Color     Color
	Intensity float64
	Position  mgl64.Vec3
}

// Camera is a perspective camera looking down -z.
type Camera struct {
	FOV      float64
	Near     float64
	Far      float64
	Position mgl64.Vec3
}

// Scene is everything the renderer draws.
type Scene struct {
	Meshes []Mesh
	Light  Light
	Camera Camera
	// Projectile names the mesh moved by the animation loop.
	Projectile string
}

// Default returns the shooter, gun and bullet setup.
func Default() Scene {
	return Scene{
		Meshes: []Mesh{
			{
				Name:     "body",
				Comment:  "Shooter (cube for body, cylinder for gun)",
				Geometry: GeometryBox,
				Args:     []float64{1, 2, 1},
				Color:    0x0000ff,
				Position: mgl64.Vec3{0, 1, 0},
			},
			{
				Name:      "gun",
				Geometry:  GeometryCylinder,
				Args:      []float64{0.1, 0.1, 2, 16},
				Color:     0x333333,
				Position:  physics.LaunchPoint,
				RotationZ: math.Pi / 2,
			},
			{
				Name:     "bullet",
				Comment:  "Bullet",
				Geometry: GeometrySphere,
				Args:     []float64{0.1, 16, 16},
				Color:    0xff0000,
				Position: physics.LaunchPoint,
			},
		},
		Light: Light{
			Color:     0xffffff,
			Intensity: 1,
			Position:  mgl64.Vec3{5, 10, 5},
		},
		Camera: Camera{
			FOV:      75,
			Near:     0.1,
			Far:      1000,
			Position: mgl64.Vec3{0, 0, 10},
		},
		Projectile: "bullet",
	}
}

// Mesh looks up a mesh by name.
func (s Scene) Mesh(name string) (Mesh, bool) {
	for _, m := range s.Meshes {
		if m.Name == name {
			return m, true
		}
	}
	return Mesh{}, false
}
