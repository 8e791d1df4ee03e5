package scene

import (
	"fmt"
	"path/filepath"

	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/models"
	"github.com/taigrr/facet/pkg/render"
)

// File is the on-disk scene layout shared by TOML and YAML.
type File struct {
	Canvas    CanvasSpec     `toml:"canvas" yaml:"canvas"`
	Camera    CameraSpec     `toml:"camera" yaml:"camera"`
	Render    RenderSpec     `toml:"render" yaml:"render"`
	Models    []ModelSpec    `toml:"models" yaml:"models"`
	Instances []InstanceSpec `toml:"instances" yaml:"instances"`
}

// CanvasSpec sizes the output.
type CanvasSpec struct {
	Width      int    `toml:"width" yaml:"width"`
	Height     int    `toml:"height" yaml:"height"`
	Background string `toml:"background" yaml:"background"` // hex color
}

// CameraSpec places the camera. Rotation is pitch, yaw, roll in degrees and
// is ignored when LookAt is set.
type CameraSpec struct {
	Position []float64 `toml:"position" yaml:"position"`
	Rotation []float64 `toml:"rotation" yaml:"rotation"`
	LookAt   []float64 `toml:"look_at" yaml:"look_at"`
	FOV      float64   `toml:"fov" yaml:"fov"` // degrees
	Near     float64   `toml:"near" yaml:"near"`
}

// RenderSpec mirrors render.Config.
type RenderSpec struct {
	Outline        bool              `toml:"outline" yaml:"outline"`
	OutlineDarken  *float64          `toml:"outline_darken" yaml:"outline_darken"`
	CullBackfaces  *bool             `toml:"cull_backfaces" yaml:"cull_backfaces"`
	SphereTest     render.SphereTest `toml:"sphere_test" yaml:"sphere_test"`
	ViewportDist   float64           `toml:"viewport_distance" yaml:"viewport_distance"`
	ViewportWidth  float64           `toml:"viewport_width" yaml:"viewport_width"`
	ViewportHeight float64           `toml:"viewport_height" yaml:"viewport_height"`
}

// ModelSpec declares a model by built-in shape or glTF file.
type ModelSpec struct {
	Name  string  `toml:"name" yaml:"name"`
	Shape string  `toml:"shape" yaml:"shape"` // cube, tetrahedron
	Size  float64 `toml:"size" yaml:"size"`
	File  string  `toml:"file" yaml:"file"`
	Color string  `toml:"color" yaml:"color"` // fallback color for glTF primitives
}

// InstanceSpec places a declared model. Rotation is pitch, yaw, roll in
// degrees.
type InstanceSpec struct {
	Model    string    `toml:"model" yaml:"model"`
	Position []float64 `toml:"position" yaml:"position"`
	Rotation []float64 `toml:"rotation" yaml:"rotation"`
	Scale    float64   `toml:"scale" yaml:"scale"`
}

// Build resolves the file into a Scene. Model files resolve against baseDir.
func (f *File) Build(baseDir string) (*Scene, error) {
	s := &Scene{
		Width:  orDefault(f.Canvas.Width, DefaultWidth),
		Height: orDefault(f.Canvas.Height, DefaultHeight),
		Models: make(map[string]*models.Model, len(f.Models)),
	}
	if s.Width < 0 || s.Height < 0 {
		return nil, fmt.Errorf("canvas %dx%d: %w", s.Width, s.Height, ErrInvalidScene)
	}

	var err error
	if s.Background, err = parseColor(f.Canvas.Background, render.ColorBlack); err != nil {
		return nil, fmt.Errorf("canvas background: %w", err)
	}
	if s.Camera, err = f.Camera.build(); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	s.Config = f.Render.build()

	for i, spec := range f.Models {
		m, err := spec.build(baseDir)
		if err != nil {
			return nil, fmt.Errorf("model %d: %w", i, err)
		}
		if _, dup := s.Models[m.Name]; dup {
			return nil, fmt.Errorf("model %q declared twice: %w", m.Name, ErrInvalidScene)
		}
		s.Models[m.Name] = m
		render.Logger().Debug("model ready",
			"name", m.Name,
			"vertices", m.VertexCount(),
			"triangles", m.TriangleCount(),
			"radius", m.BoundsRadius,
		)
	}

	for i, spec := range f.Instances {
		inst, err := spec.build(s.Models)
		if err != nil {
			return nil, fmt.Errorf("instance %d: %w", i, err)
		}
		s.Instances = append(s.Instances, inst)
	}

	return s, nil
}

func (c CameraSpec) build() (*render.Camera, error) {
	pos, err := vec3(c.Position, math3d.V3(0, 0, -5))
	if err != nil {
		return nil, fmt.Errorf("position: %w", err)
	}
	rot, err := vec3(c.Rotation, math3d.Zero3())
	if err != nil {
		return nil, fmt.Errorf("rotation: %w", err)
	}

	cam := render.NewCamera(pos, euler(rot))
	if c.FOV != 0 {
		if c.FOV <= 0 || c.FOV >= 180 {
			return nil, fmt.Errorf("fov %v: %w", c.FOV, ErrInvalidScene)
		}
		cam.SetFOV(math3d.Radians(c.FOV))
	}
	if c.Near != 0 {
		if c.Near < 0 {
			return nil, fmt.Errorf("near %v: %w", c.Near, ErrInvalidScene)
		}
		cam.SetNear(c.Near)
	}
	if c.LookAt != nil {
		target, err := vec3(c.LookAt, math3d.Zero3())
		if err != nil {
			return nil, fmt.Errorf("look_at: %w", err)
		}
		cam.LookAt(target)
	}
	return cam, nil
}

func (r RenderSpec) build() render.Config {
	cfg := render.DefaultConfig()
	cfg.Outline = r.Outline
	if r.OutlineDarken != nil {
		cfg.OutlineDarken = *r.OutlineDarken
	}
	if r.CullBackfaces != nil {
		cfg.DisableBackfaceCulling = !*r.CullBackfaces
	}
	cfg.SphereTest = r.SphereTest
	if r.ViewportDist > 0 {
		cfg.Viewport.Distance = r.ViewportDist
	}
	if r.ViewportWidth > 0 {
		cfg.Viewport.Width = r.ViewportWidth
	}
	if r.ViewportHeight > 0 {
		cfg.Viewport.Height = r.ViewportHeight
	}
	return cfg
}

func (m ModelSpec) build(baseDir string) (*models.Model, error) {
	size := m.Size
	if size == 0 {
		size = 2
	}

	var (
		model *models.Model
		err   error
	)
	switch {
	case m.File != "":
		loader := models.NewGLTFLoader()
		if loader.FallbackColor, err = parseColor(m.Color, models.DefaultColor); err != nil {
			return nil, err
		}
		path := m.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		if model, err = loader.Load(path); err != nil {
			return nil, err
		}
	case m.Shape == "cube":
		model = models.Cube(size)
	case m.Shape == "tetrahedron":
		model = models.Tetrahedron(size / 2)
	default:
		return nil, fmt.Errorf("%q: %w", m.Shape, ErrUnknownShape)
	}

	if m.Name != "" {
		model.Name = m.Name
	}
	return model, nil
}

func (i InstanceSpec) build(byName map[string]*models.Model) (*render.Instance, error) {
	model, ok := byName[i.Model]
	if !ok {
		return nil, fmt.Errorf("%q: %w", i.Model, ErrUnknownModel)
	}
	pos, err := vec3(i.Position, math3d.Zero3())
	if err != nil {
		return nil, fmt.Errorf("position: %w", err)
	}
	rot, err := vec3(i.Rotation, math3d.Zero3())
	if err != nil {
		return nil, fmt.Errorf("rotation: %w", err)
	}
	scale := i.Scale
	if scale == 0 {
		scale = 1
	}
	if scale < 0 {
		return nil, fmt.Errorf("scale %v: %w", scale, ErrInvalidScene)
	}
	return render.NewInstance(model, pos, euler(rot), scale), nil
}

// vec3 converts a three-element list, returning fallback for an empty one.
func vec3(v []float64, fallback math3d.Vec3) (math3d.Vec3, error) {
	switch len(v) {
	case 0:
		return fallback, nil
	case 3:
		return math3d.V3(v[0], v[1], v[2]), nil
	}
	return math3d.Vec3{}, fmt.Errorf("need 3 components, got %d: %w", len(v), ErrInvalidScene)
}

// euler builds a rotation from pitch, yaw and roll in degrees.
func euler(deg math3d.Vec3) math3d.Mat4 {
	return math3d.Euler(math3d.Radians(deg.X), math3d.Radians(deg.Y), math3d.Radians(deg.Z))
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
