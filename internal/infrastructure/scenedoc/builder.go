// Package scenedoc renders the HTML document that hosts the 3D scene.
//
// The document is a fragment: a container div, the three.js library script and
// an inline script that builds the scene and runs the animation loop. It is
// meant to be handed to a dashboard host as an opaque component value.
package scenedoc

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/bnema/ballistic/internal/application/port"
	"github.com/bnema/ballistic/internal/domain/physics"
	"github.com/bnema/ballistic/internal/domain/scene"
)

const (
	// DefaultLibraryURL is the three.js build loaded by the document.
	DefaultLibraryURL = "https://cdnjs.cloudflare.com/ajax/libs/three.js/r128/three.min.js"
	// DefaultContainerID is the id of the div the renderer attaches to.
	DefaultContainerID = "scene-container"
	// DefaultHeight is the container and canvas height in pixels.
	DefaultHeight = 600
)

// ErrInvalidOptions is returned when the builder options would break the markup.
var ErrInvalidOptions = errors.New("invalid document options")

//go:embed templates/*.tmpl
var templatesFS embed.FS

var (
	identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

	templates = template.Must(template.New("scenedoc").Funcs(template.FuncMap{
		"num":  formatNumber,
		"nums": formatNumbers,
		"vec":  formatVec,
	}).ParseFS(templatesFS, "templates/*.tmpl"))
)

// Options control the parts of the document that are not physics.
type Options struct {
	ContainerID string
	Height      int
	LibraryURL  string
	Scene       scene.Scene
}

// DefaultOptions returns the options of the canonical document.
func DefaultOptions() Options {
	return Options{
		ContainerID: DefaultContainerID,
		Height:      DefaultHeight,
		LibraryURL:  DefaultLibraryURL,
		Scene:       scene.Default(),
	}
}

// Validate checks that every option can be interpolated safely.
func (o Options) Validate() error {
	if !identPattern.MatchString(o.ContainerID) {
		return fmt.Errorf("%w: container id %q", ErrInvalidOptions, o.ContainerID)
	}
	if o.Height <= 0 {
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidOptions, o.Height)
	}
	u, err := url.Parse(o.LibraryURL)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return fmt.Errorf("%w: library url %q", ErrInvalidOptions, o.LibraryURL)
	}
	if strings.ContainsAny(o.LibraryURL, "\"<>'` ") {
		return fmt.Errorf("%w: library url %q contains markup characters", ErrInvalidOptions, o.LibraryURL)
	}
	if _, ok := o.Scene.Mesh(o.Scene.Projectile); !ok {
		return fmt.Errorf("%w: projectile mesh %q not in scene", ErrInvalidOptions, o.Scene.Projectile)
	}
	for _, m := range o.Scene.Meshes {
		if !identPattern.MatchString(m.Name) || strings.Contains(m.Name, "-") {
			return fmt.Errorf("%w: mesh name %q", ErrInvalidOptions, m.Name)
		}
	}
	return nil
}

// Builder renders scene documents.
type Builder struct {
	opts Options
}

var _ port.DocumentBuilder = (*Builder)(nil)

// NewBuilder validates opts and returns a builder.
func NewBuilder(opts Options) (*Builder, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Builder{opts: opts}, nil
}

type documentData struct {
	Options
	Params     physics.Params
	FrameStep  float64
	LiftSpeed  float64
	Launch     mgl64.Vec3
	Projectile string
}

// Build renders the document for params. Output only depends on the options
// and params, so equal inputs give byte-identical documents.
func (b *Builder) Build(params physics.Params) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	data := documentData{
		Options:    b.opts,
		Params:     params,
		FrameStep:  physics.FrameStep,
		LiftSpeed:  physics.LiftSpeed,
		Launch:     physics.LaunchPoint,
		Projectile: b.opts.Scene.Projectile,
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "scene.html.tmpl", data); err != nil {
		return "", fmt.Errorf("render scene document: %w", err)
	}
	return buf.String(), nil
}

// Build returns the canonical document: default options, default physics.
func Build() string {
	b, err := NewBuilder(DefaultOptions())
	if err != nil {
		panic(err)
	}
	doc, err := b.Build(physics.DefaultParams())
	if err != nil {
		panic(err)
	}
	return doc
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatNumbers(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatNumber(v)
	}
	return strings.Join(parts, ",")
}

func formatVec(v mgl64.Vec3) string {
	return formatNumbers(v[:])
}
