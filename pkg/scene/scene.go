// Package scene loads renderable scenes from TOML or YAML files.
//
// A scene file names a canvas, a camera, render settings, a set of models
// (built-in shapes or glTF files) and the instances that place them:
//
//	[canvas]
//	width = 320
//	height = 240
//	background = "#101018"
//
//	[camera]
//	position = [0, 0, -5]
//
//	[[models]]
//	name = "cube"
//	shape = "cube"
//
//	[[instances]]
//	model = "cube"
//	rotation = [-30, 45, 0]
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/models"
	"github.com/taigrr/facet/pkg/render"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither TOML nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported scene format")
	// ErrUnknownShape is returned for a model shape that has no builder.
	ErrUnknownShape = errors.New("unknown shape")
	// ErrUnknownModel is returned when an instance names a model that was not
	// declared.
	ErrUnknownModel = errors.New("unknown model")
	// ErrInvalidScene is returned for values that are present but malformed.
	ErrInvalidScene = errors.New("invalid scene")
)

// Format is a scene file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

// Defaults applied to missing fields.
const (
	DefaultWidth  = 320
	DefaultHeight = 240
)

// Scene is a fully resolved scene ready to render.
type Scene struct {
	Width      int
	Height     int
	Background color.RGBA

	Camera    *render.Camera
	Config    render.Config
	Models    map[string]*models.Model
	Instances []*render.Instance
}

// Load reads and parses a scene file. Relative model paths resolve against
// the file's directory.
func Load(path string) (*Scene, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := Parse(data, format, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	render.Logger().Info("scene loaded",
		"path", path,
		"models", len(s.Models),
		"instances", len(s.Instances),
	)
	return s, nil
}

// Parse decodes a scene from data. Unknown keys are rejected.
func Parse(data []byte, format Format, baseDir string) (*Scene, error) {
	var f File
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to nothing and leaves every default.
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
	return f.Build(baseDir)
}

// NewCanvas returns a canvas of the scene size cleared to the background.
func (s *Scene) NewCanvas() *render.Canvas {
	c := render.NewCanvas(s.Width, s.Height)
	c.Clear(s.Background)
	return c
}

// Frame returns the instances turned by angle radians about the world Y axis
// through each instance's own origin. The scene is not modified.
func (s *Scene) Frame(angle float64) []*render.Instance {
	if angle == 0 {
		return s.Instances
	}
	rot := math3d.RotateY(angle)
	out := make([]*render.Instance, len(s.Instances))
	for i, inst := range s.Instances {
		out[i] = inst.Rotated(rot)
	}
	return out
}

func parseColor(s string, fallback color.RGBA) (color.RGBA, error) {
	if s == "" {
		return fallback, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, ErrInvalidScene)
	}
	return render.FromColorful(c), nil
}
