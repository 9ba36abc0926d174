package physics_test

import (
	"math"
	"testing"

	"github.com/bnema/ballistic/internal/domain/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func TestDefaultParams(t *testing.T) {
	p := physics.DefaultParams()
	assert.Equal(t, 10.0, p.WindSpeed)
	assert.Equal(t, 0.0, p.WindDir)
	assert.Equal(t, 50.0, p.BulletSpeed)
	assert.Equal(t, 9.81, p.Gravity)
	require.NoError(t, p.Validate())
}

func TestVelocity_Defaults(t *testing.T) {
	v := physics.DefaultParams().Velocity()
	assert.InDelta(t, 60.0, v.X(), tolerance)
	assert.InDelta(t, 0.0, v.Y(), tolerance)
	assert.InDelta(t, 10.0, v.Z(), tolerance)
}

func TestPositionAt_OneSecond(t *testing.T) {
	pos := physics.DefaultParams().PositionAt(1.0)
	assert.InDelta(t, 61.5, pos.X(), tolerance)
	assert.InDelta(t, 1.2, pos.Y(), tolerance)
	assert.InDelta(t, 5.095, pos.Z(), tolerance)
}

func TestPositionAt_CrossWind(t *testing.T) {
	p := physics.DefaultParams()
	p.WindDir = 90

	v := p.Velocity()
	assert.InDelta(t, 0.0, v.X(), 1e-6)
	assert.InDelta(t, 10.0, v.Y(), tolerance)

	pos := p.PositionAt(2)
	assert.InDelta(t, 1.2+20, pos.Y(), tolerance)
	assert.InDelta(t, 20-0.5*9.81*4, pos.Z(), tolerance)
}

func TestValidate_RejectsNonFinite(t *testing.T) {
	cases := []physics.Params{
		{WindSpeed: math.NaN(), BulletSpeed: 50, Gravity: 9.81},
		{WindDir: math.Inf(1), BulletSpeed: 50, Gravity: 9.81},
		{BulletSpeed: math.Inf(-1), Gravity: 9.81},
		{BulletSpeed: 50, Gravity: math.NaN()},
	}
	for _, p := range cases {
		err := p.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, physics.ErrInvalidParams)
	}
}

func TestApexTime(t *testing.T) {
	apex, ok := physics.DefaultParams().ApexTime()
	require.True(t, ok)
	assert.InDelta(t, 10/9.81, apex, tolerance)

	_, ok = physics.Params{Gravity: 0}.ApexTime()
	assert.False(t, ok)
}

func TestSimulator_AccumulatesFrameStep(t *testing.T) {
	sim := physics.NewSimulator(physics.DefaultParams())

	frames := sim.Run(20)
	require.Len(t, frames, 20)
	assert.Equal(t, 1, frames[0].Index)
	assert.InDelta(t, 0.05, frames[0].T, tolerance)

	last := frames[19]
	assert.Equal(t, 20, last.Index)
	assert.InDelta(t, 1.0, last.T, 1e-12)
	assert.InDelta(t, 61.5, last.Position.X(), 1e-9)
	assert.InDelta(t, 5.095, last.Position.Z(), 1e-9)

	sim.Reset()
	assert.Equal(t, frames[0], sim.Step())
}

func TestSimulator_RunNonPositive(t *testing.T) {
	sim := physics.NewSimulator(physics.DefaultParams())
	assert.Nil(t, sim.Run(0))
	assert.Nil(t, sim.Run(-3))
}
