package scene

import (
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
)

const tomlScene = `
[canvas]
width = 64
height = 48
background = "#102030"

[camera]
position = [0, 0, -5]
fov = 60
near = 0.5

[render]
outline = true
outline_darken = 0.25
cull_backfaces = false
sphere_test = "radius"

[[models]]
name = "box"
shape = "cube"
size = 1

[[models]]
shape = "tetrahedron"

[[instances]]
model = "box"
position = [1, 2, 3]
rotation = [0, 90, 0]
scale = 2

[[instances]]
model = "tetrahedron"
`

const yamlScene = `
canvas:
  width: 64
  height: 48
  background: "#102030"
camera:
  position: [0, 0, -5]
  fov: 60
  near: 0.5
render:
  outline: true
  outline_darken: 0.25
  cull_backfaces: false
  sphere_test: radius
models:
  - name: box
    shape: cube
    size: 1
  - shape: tetrahedron
instances:
  - model: box
    position: [1, 2, 3]
    rotation: [0, 90, 0]
    scale: 2
  - model: tetrahedron
`

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"toml", FormatTOML, tomlScene},
		{"yaml", FormatYAML, yamlScene},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Parse([]byte(tc.data), tc.format, ".")
			require.NoError(t, err)

			assert.Equal(t, 64, s.Width)
			assert.Equal(t, 48, s.Height)
			assert.Equal(t, color.RGBA{0x10, 0x20, 0x30, 255}, s.Background)

			assert.Equal(t, math3d.V3(0, 0, -5), s.Camera.Position)
			assert.InDelta(t, math.Pi/3, s.Camera.FOV, 1e-12)
			assert.Equal(t, 0.5, s.Camera.Near)

			assert.True(t, s.Config.Outline)
			assert.Equal(t, 0.25, s.Config.OutlineDarken)
			assert.True(t, s.Config.DisableBackfaceCulling)
			assert.Equal(t, render.SphereTestRadius, s.Config.SphereTest)
			assert.Equal(t, render.DefaultViewport(), s.Config.Viewport)

			require.Len(t, s.Models, 2)
			assert.Equal(t, "box", s.Models["box"].Name)
			assert.Equal(t, 12, s.Models["box"].TriangleCount())
			assert.Equal(t, 4, s.Models["tetrahedron"].TriangleCount())

			require.Len(t, s.Instances, 2)
			box := s.Instances[0]
			assert.Same(t, s.Models["box"], box.Model)
			assert.Equal(t, 2.0, box.Scale)
			got := box.Transform.MulVec3(math3d.V3(0, 0, 1))
			assert.True(t, math3d.V3(3, 2, 3).ApproxEqual(got, 1e-9), "got %v", got)

			tet := s.Instances[1]
			assert.Equal(t, 1.0, tet.Scale)
			assert.Equal(t, math3d.Zero3(), tet.Position)
		})
	}
}

func TestParseDefaults(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			s, err := Parse(nil, format, ".")
			require.NoError(t, err)
			assert.Equal(t, DefaultWidth, s.Width)
			assert.Equal(t, DefaultHeight, s.Height)
			assert.Equal(t, render.ColorBlack, s.Background)
			assert.Equal(t, render.DefaultConfig(), s.Config)
			assert.Equal(t, render.DefaultFOV, s.Camera.FOV)
			assert.Empty(t, s.Instances)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
		target error
	}{
		{"unknown model", FormatTOML, "[[instances]]\nmodel = \"ghost\"\n", ErrUnknownModel},
		{"unknown shape", FormatTOML, "[[models]]\nshape = \"torus\"\n", ErrUnknownShape},
		{"short vector", FormatTOML, "[camera]\nposition = [1, 2]\n", ErrInvalidScene},
		{"bad color", FormatYAML, "canvas:\n  background: \"#zz0000\"\n", ErrInvalidScene},
		{"bad fov", FormatYAML, "camera:\n  fov: 200\n", ErrInvalidScene},
		{"negative scale", FormatYAML, "models:\n  - shape: cube\ninstances:\n  - model: cube\n    scale: -1\n", ErrInvalidScene},
		{"duplicate model", FormatYAML, "models:\n  - shape: cube\n  - shape: cube\n", ErrInvalidScene},
		{"unsupported format", Format("json"), "{}", ErrUnsupportedFormat},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data), tc.format, ".")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.target), "got %v", err)
		})
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("[canvas]\nwidht = 10\n"), FormatTOML, ".")
	assert.Error(t, err)

	_, err = Parse([]byte("canvas:\n  widht: 10\n"), FormatYAML, ".")
	assert.Error(t, err)

	_, err = Parse([]byte("[render]\nsphere_test = \"cone\"\n"), FormatTOML, ".")
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"a.toml":        FormatTOML,
		"dir/b.yaml":    FormatYAML,
		"C.YML":         FormatYAML,
		"scene.v2.toml": FormatTOML,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("scene.json")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestLoadWithGLTFModel(t *testing.T) {
	dir := t.TempDir()

	doc := gltf.NewDocument()
	doc.Meshes = []*gltf.Mesh{{
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]int{gltf.POSITION: modeler.WritePosition(doc, [][3]float32{
				{-1, -1, 0}, {1, -1, 0}, {0, 1, 0},
			})},
		}},
	}}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, gltf.SaveBinary(doc, filepath.Join(dir, "assets", "tri.glb")))

	scenePath := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(scenePath, []byte(`
[[models]]
name = "tri"
file = "assets/tri.glb"
color = "#ff8000"

[[instances]]
model = "tri"
position = [0, 0, 4]
`), 0o644))

	s, err := Load(scenePath)
	require.NoError(t, err)
	require.Contains(t, s.Models, "tri")
	m := s.Models["tri"]
	assert.Equal(t, 1, m.TriangleCount())
	assert.Equal(t, color.RGBA{255, 128, 0, 255}, m.Triangles[0].Color)

	c := s.NewCanvas()
	r := render.NewRenderer(s.Config)
	r.Render(c, s.Camera, s.Instances)
	assert.Equal(t, 1, r.Stats.InstancesTested)
	assert.Zero(t, r.Stats.InstancesCulled)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFrame(t *testing.T) {
	s, err := Parse([]byte(tomlScene), FormatTOML, ".")
	require.NoError(t, err)

	assert.Equal(t, s.Instances, s.Frame(0))

	before := s.Instances[0].Transform
	frame := s.Frame(math.Pi / 2)
	require.Len(t, frame, len(s.Instances))
	assert.Equal(t, before, s.Instances[0].Transform, "scene instances are not modified")

	for i, inst := range frame {
		assert.Same(t, s.Instances[i].Model, inst.Model)
		assert.Equal(t, s.Instances[i].Position, inst.Position)
		want := math3d.RotateY(math.Pi / 2).Mul(s.Instances[i].Orientation)
		assert.True(t, want.ApproxEqual(inst.Orientation, 1e-12))
	}
}

func TestSceneRendersSomething(t *testing.T) {
	s, err := Parse([]byte(tomlScene), FormatTOML, ".")
	require.NoError(t, err)

	c := s.NewCanvas()
	r := render.NewRenderer(s.Config)
	r.Render(c, s.Camera, s.Instances)

	assert.Positive(t, r.Stats.TrianglesDrawn)
	drawn := 0
	for _, p := range c.Pixels {
		if p != s.Background {
			drawn++
		}
	}
	assert.Positive(t, drawn)
}

func TestBundledScenes(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "scenes", "*"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := Load(path)
			require.NoError(t, err)

			r := render.NewRenderer(s.Config)
			r.Render(s.NewCanvas(), s.Camera, s.Instances)
			assert.Positive(t, r.Stats.TrianglesDrawn)
		})
	}
}

func TestCubesSceneCullsInstanceBehindCamera(t *testing.T) {
	s, err := Load(filepath.Join("..", "..", "scenes", "cubes.toml"))
	require.NoError(t, err)

	r := render.NewRenderer(s.Config)
	r.Render(s.NewCanvas(), s.Camera, s.Instances)
	assert.Equal(t, 4, r.Stats.InstancesTested)
	assert.Equal(t, 1, r.Stats.InstancesCulled)
}
