package physics_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/ballistic/internal/domain/physics"
)

func TestWindFromKmh(t *testing.T) {
	at := time.Date(2025, 11, 13, 6, 0, 0, 0, time.UTC)
	w := physics.WindFromKmh(36, 270, at)

	assert.InDelta(t, 10.0, w.Speed, tolerance)
	assert.Equal(t, 270.0, w.Direction)
	assert.Equal(t, at, w.At)
}

func TestWindApply(t *testing.T) {
	p, err := physics.WindFromKmh(18, 45, time.Time{}).Apply(physics.DefaultParams())
	require.NoError(t, err)

	assert.InDelta(t, 5.0, p.WindSpeed, tolerance)
	assert.Equal(t, 45.0, p.WindDir)
	assert.Equal(t, physics.DefaultBulletSpeed, p.BulletSpeed)
	assert.Equal(t, physics.DefaultGravity, p.Gravity)
}

func TestWindApply_Rejects(t *testing.T) {
	tests := []struct {
		name string
		wind physics.Wind
	}{
		{"nan speed", physics.Wind{Speed: math.NaN()}},
		{"negative speed", physics.Wind{Speed: -1}},
		{"infinite direction", physics.Wind{Speed: 3, Direction: math.Inf(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.wind.Apply(physics.DefaultParams())
			require.ErrorIs(t, err, physics.ErrInvalidWind)
			assert.Equal(t, physics.DefaultParams(), p)
		})
	}
}

func TestWindApply_ValidatesParams(t *testing.T) {
	base := physics.DefaultParams()
	base.Gravity = math.NaN()

	_, err := physics.WindFromKmh(10, 0, time.Time{}).Apply(base)
	require.ErrorIs(t, err, physics.ErrInvalidParams)
}
