package models

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/facet/pkg/math3d"
)

// DefaultColor is used for primitives without a material.
var DefaultColor = color.RGBA{200, 200, 200, 255}

// GLTFLoader loads GLTF/GLB files into a single flat-shaded Model.
type GLTFLoader struct {
	// FallbackColor colors primitives that have no material.
	FallbackColor color.RGBA
	// KeepWinding disables the handedness conversion. glTF is right-handed
	// with counter-clockwise front faces; facet's camera space is left-handed,
	// so by default Z is negated and the winding reversed.
	KeepWinding bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		FallbackColor: DefaultColor,
	}
}

// LoadGLB loads a GLTF or binary GLTF (.glb) file with default options.
func LoadGLB(path string) (*Model, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Model.
func (l *GLTFLoader) Load(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.FromDocument(filepath.Base(path), doc)
}

// FromDocument converts every triangle primitive of an already decoded
// document into one Model.
func (l *GLTFLoader) FromDocument(name string, doc *gltf.Document) (*Model, error) {
	var (
		vertices  []math3d.Vec3
		triangles []Triangle
	)

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				// Skip non-triangle primitives (lines, points, etc)
				continue
			}
			var err error
			vertices, triangles, err = l.appendPrimitive(doc, prim, vertices, triangles)
			if err != nil {
				return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
			}
		}
	}

	return NewModel(name, vertices, triangles)
}

func (l *GLTFLoader) appendPrimitive(doc *gltf.Document, prim *gltf.Primitive, vertices []math3d.Vec3, triangles []Triangle) ([]math3d.Vec3, []Triangle, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return vertices, triangles, nil
	}

	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, nil, fmt.Errorf("read positions: %w", err)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		// No indices, assume sequential triangles
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	for _, idx := range indices {
		if int(idx) >= len(positions) {
			return nil, nil, fmt.Errorf("index %d with %d positions: %w", idx, len(positions), ErrVertexIndex)
		}
	}

	fill := l.primitiveColor(doc, prim)
	base := len(vertices)

	for _, p := range positions {
		v := math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))
		if !l.KeepWinding {
			v.Z = -v.Z
		}
		vertices = append(vertices, v)
	}

	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := base+int(indices[i]), base+int(indices[i+1]), base+int(indices[i+2])
		if !l.KeepWinding {
			b, c = c, b
		}
		triangles = append(triangles, T(a, b, c, fill))
	}

	return vertices, triangles, nil
}

// primitiveColor returns the material base color factor of a primitive.
func (l *GLTFLoader) primitiveColor(doc *gltf.Document, prim *gltf.Primitive) color.RGBA {
	if prim.Material == nil || *prim.Material >= len(doc.Materials) {
		return l.FallbackColor
	}
	mat := doc.Materials[*prim.Material]
	if mat.PBRMetallicRoughness == nil || mat.PBRMetallicRoughness.BaseColorFactor == nil {
		return l.FallbackColor
	}
	f := *mat.PBRMetallicRoughness.BaseColorFactor
	return color.RGBA{unit8(f[0]), unit8(f[1]), unit8(f[2]), 255}
}

// unit8 maps a [0,1] channel to [0,255].
func unit8(f float64) uint8 {
	return uint8(min(max(f, 0), 1)*255 + 0.5)
}
