package render

import (
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/models"
)

// CombinedTransform returns the model to camera transform of an instance:
// view * instance.Transform.
func CombinedTransform(camera *Camera, instance *Instance) math3d.Mat4 {
	return camera.ViewMatrix().Mul(instance.Transform)
}

// TransformAndClip moves model into camera space with transform and clips it
// against planes. It returns nil when the bounding sphere lies outside any
// plane. SphereTestRadius scales the model radius by the instance scale;
// SphereTestSquaredRadius uses the model radius as is. Otherwise the result holds every transformed vertex, in the original
// order, and only the triangles whose three vertices are inside all planes.
// Bounds are copied unchanged.
func TransformAndClip(planes []Plane, model *models.Model, transform math3d.Mat4, test SphereTest) *models.Model {
	center := transform.MulVec4(model.BoundsCenter).Vec3()
	radius := model.BoundsRadius
	if test == SphereTestRadius {
		radius *= transform.UniformScale()
	}
	if SphereOutside(planes, center, radius, test) {
		return nil
	}

	vertices := make([]math3d.Vec3, len(model.Vertices))
	for i, v := range model.Vertices {
		vertices[i] = transform.MulVec3(v)
	}

	triangles := make([]models.Triangle, 0, len(model.Triangles))
	for _, tri := range model.Triangles {
		if triangleInside(planes, vertices, tri) {
			triangles = append(triangles, tri)
		}
	}

	return &models.Model{
		Name:         model.Name,
		Vertices:     vertices,
		Triangles:    triangles,
		BoundsCenter: model.BoundsCenter,
		BoundsRadius: model.BoundsRadius,
	}
}

func triangleInside(planes []Plane, vertices []math3d.Vec3, tri models.Triangle) bool {
	for i := range planes {
		for _, idx := range tri.V {
			if !planes[i].Inside(vertices[idx]) {
				return false
			}
		}
	}
	return true
}
