package jsvm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/ballistic/internal/domain/physics"
	"github.com/bnema/ballistic/internal/infrastructure/jsvm"
	"github.com/bnema/ballistic/internal/infrastructure/scenedoc"
	"github.com/bnema/ballistic/internal/logging"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func TestExtract_CanonicalDocument(t *testing.T) {
	parts, err := jsvm.Extract(scenedoc.Build())
	require.NoError(t, err)

	assert.Equal(t, []string{"scene-container"}, parts.ContainerIDs)
	assert.Equal(t, []string{scenedoc.DefaultLibraryURL}, parts.ExternalScripts)
	require.Len(t, parts.InlineScripts, 1)
	assert.Contains(t, parts.InlineScripts[0], "function animate()")
}

func TestExtract_NoInlineScript(t *testing.T) {
	_, err := jsvm.Extract(`<div id="x"></div><script src="https://cdn.example/lib.js"></script>`)
	assert.ErrorIs(t, err, jsvm.ErrNoInlineScript)
}

func TestEvaluate_MatchesSimulator(t *testing.T) {
	ctx := testCtx()
	const frames = 40

	positions, err := jsvm.NewEvaluator().Evaluate(ctx, scenedoc.Build(), frames)
	require.NoError(t, err)
	require.Len(t, positions, frames)

	expected := physics.NewSimulator(physics.DefaultParams()).Run(frames)
	for i := range expected {
		for axis := 0; axis < 3; axis++ {
			assert.InDelta(t, expected[i].Position[axis], positions[i][axis], 1e-9, "frame %d axis %d", i+1, axis)
		}
	}

	// Frame 20 is t = 1.0.
	assert.InDelta(t, 61.5, positions[19].X(), 1e-9)
	assert.InDelta(t, 1.2, positions[19].Y(), 1e-9)
	assert.InDelta(t, 5.095, positions[19].Z(), 1e-9)
}

func TestEvaluate_CustomParams(t *testing.T) {
	ctx := testCtx()
	params := physics.Params{WindSpeed: 4, WindDir: 30, BulletSpeed: 80, Gravity: 3.7}

	b, err := scenedoc.NewBuilder(scenedoc.DefaultOptions())
	require.NoError(t, err)
	doc, err := b.Build(params)
	require.NoError(t, err)

	positions, err := jsvm.NewEvaluator().Evaluate(ctx, doc, 10)
	require.NoError(t, err)

	want := physics.NewSimulator(params).Run(10)
	for i := range want {
		assert.InDelta(t, want[i].Position.X(), positions[i].X(), 1e-9)
		assert.InDelta(t, want[i].Position.Y(), positions[i].Y(), 1e-9)
		assert.InDelta(t, want[i].Position.Z(), positions[i].Z(), 1e-9)
	}
}

func TestEvaluate_ZeroFrames(t *testing.T) {
	positions, err := jsvm.NewEvaluator().Evaluate(testCtx(), scenedoc.Build(), 0)
	require.NoError(t, err)
	assert.Nil(t, positions)
}

func TestEvaluate_ScriptWithoutLoop(t *testing.T) {
	doc := `<script>
  const bullet = new THREE.Mesh(new THREE.SphereGeometry(0.1,16,16), new THREE.MeshBasicMaterial({color: 0xff0000}));
  bullet.position.set(1,2,3);
</script>`

	positions, err := jsvm.NewEvaluator().Evaluate(testCtx(), doc, 3)
	assert.ErrorIs(t, err, jsvm.ErrNoAnimationLoop)
	require.Len(t, positions, 1)
	assert.Equal(t, 3.0, positions[0].Z())
}

func TestEvaluate_ScriptWithoutProjectile(t *testing.T) {
	doc := `<script>function animate() { requestAnimationFrame(animate); } animate();</script>`

	_, err := jsvm.NewEvaluator().Evaluate(testCtx(), doc, 2)
	assert.ErrorIs(t, err, jsvm.ErrNoProjectile)
}

func TestEvaluate_NonFinitePosition(t *testing.T) {
	doc := `<script>
  const bullet = new THREE.Mesh(new THREE.SphereGeometry(0.1,16,16), null);
  bullet.position.x = NaN;
</script>`

	_, err := jsvm.NewEvaluator().Evaluate(testCtx(), doc, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not finite")
}

func TestEvaluate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(testCtx())
	cancel()

	_, err := jsvm.NewEvaluator().Evaluate(ctx, scenedoc.Build(), 5)
	require.Error(t, err)
}
