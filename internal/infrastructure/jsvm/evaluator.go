// Package jsvm executes the animation script of a scene document outside a
// browser so its trajectory can be checked against the Go model.
package jsvm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/grafana/sobek"

	"github.com/bnema/ballistic/internal/application/port"
	"github.com/bnema/ballistic/internal/logging"
)

// ErrNoAnimationLoop is returned when the script stops requesting frames.
var ErrNoAnimationLoop = errors.New("script did not request an animation frame")

// ErrNoProjectile is returned when the script never creates a sphere mesh.
var ErrNoProjectile = errors.New("script did not create a projectile")

// prelude stubs the parts of three.js and the DOM the scene script touches.
// Meshes are recorded so the projectile can be read back between frames.
const prelude = `
var __meshes = [];
var __raf = null;
var __renders = 0;
function __vec() {
  return { x: 0, y: 0, z: 0, set: function (x, y, z) { this.x = x; this.y = y; this.z = z; } };
}
function __geometry(kind) {
  return function () { this.kind = kind; this.args = Array.prototype.slice.call(arguments); };
}
var THREE = {
  Scene: function () { this.children = []; this.add = function (o) { this.children.push(o); }; },
  PerspectiveCamera: function () { this.position = __vec(); this.rotation = __vec(); },
  WebGLRenderer: function () {
    this.domElement = {};
    this.setSize = function () {};
    this.render = function () { __renders++; };
  },
  Mesh: function (geometry, material) {
    this.geometry = geometry;
    this.material = material;
    this.position = __vec();
    this.rotation = __vec();
    __meshes.push(this);
  },
  BoxGeometry: __geometry("box"),
  CylinderGeometry: __geometry("cylinder"),
  SphereGeometry: __geometry("sphere"),
  MeshBasicMaterial: function (opts) { this.color = opts && opts.color; },
  DirectionalLight: function (color, intensity) { this.color = color; this.intensity = intensity; this.position = __vec(); }
};
var window = { innerWidth: 1280, innerHeight: 720 };
var document = { getElementById: function () { return { appendChild: function () {} }; } };
function requestAnimationFrame(cb) { __raf = cb; return 1; }
function __frame() {
  var cb = __raf;
  __raf = null;
  if (cb === null) { return false; }
  cb(0);
  return true;
}
function __position() {
  for (var i = 0; i < __meshes.length; i++) {
    if (__meshes[i].geometry && __meshes[i].geometry.kind === "sphere") {
      var p = __meshes[i].position;
      return JSON.stringify({ x: p.x, y: p.y, z: p.z });
    }
  }
  return "";
}
`

// Evaluator runs scene scripts in a fresh sobek runtime per call.
type Evaluator struct{}

var _ port.ScriptEvaluator = (*Evaluator)(nil)

// NewEvaluator creates an evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate runs the inline scripts of document and returns the projectile
// position after each of the first frames animation frames. The first frame is
// the one the script triggers itself when it starts the loop.
func (e *Evaluator) Evaluate(ctx context.Context, document string, frames int) ([]mgl64.Vec3, error) {
	log := logging.FromContext(ctx)
	if frames <= 0 {
		return nil, nil
	}

	parts, err := Extract(document)
	if err != nil {
		return nil, err
	}

	vm := sobek.New()
	stop := context.AfterFunc(ctx, func() { vm.Interrupt(ctx.Err()) })
	defer stop()

	if _, err := vm.RunScript("prelude.js", prelude); err != nil {
		return nil, fmt.Errorf("load prelude: %w", err)
	}
	for i, script := range parts.InlineScripts {
		if _, err := vm.RunScript(fmt.Sprintf("inline-%d.js", i), script); err != nil {
			return nil, fmt.Errorf("run inline script %d: %w", i, err)
		}
	}

	positions := make([]mgl64.Vec3, 0, frames)
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return positions, err
		}
		if i > 0 {
			ok, err := vm.RunString("__frame()")
			if err != nil {
				return positions, fmt.Errorf("frame %d: %w", i+1, err)
			}
			if !ok.ToBoolean() {
				return positions, fmt.Errorf("%w after frame %d", ErrNoAnimationLoop, i)
			}
		}
		pos, err := readPosition(vm)
		if err != nil {
			return positions, err
		}
		positions = append(positions, pos)
	}

	log.Debug().
		Int("frames", frames).
		Int("external_scripts", len(parts.ExternalScripts)).
		Msg("scene script evaluated")
	return positions, nil
}

func readPosition(vm *sobek.Runtime) (mgl64.Vec3, error) {
	v, err := vm.RunString("__position()")
	if err != nil {
		return mgl64.Vec3{}, fmt.Errorf("read projectile: %w", err)
	}
	raw := v.String()
	if raw == "" {
		return mgl64.Vec3{}, ErrNoProjectile
	}

	var p struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
		Z *float64 `json:"z"`
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return mgl64.Vec3{}, fmt.Errorf("decode projectile position: %w", err)
	}
	// JSON.stringify turns NaN and Infinity into null.
	if p.X == nil || p.Y == nil || p.Z == nil {
		return mgl64.Vec3{}, fmt.Errorf("projectile position is not finite: %s", raw)
	}
	return mgl64.Vec3{*p.X, *p.Y, *p.Z}, nil
}
