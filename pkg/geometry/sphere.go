package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center    core.Point3
	Radius    float64
	MaxRadius float64     // Upper bound offered to radius editors
	Color     core.Color3 // Surface tint, components in [0,1]
}

// NewSphere creates a white sphere whose editable radius is capped at twice
// its initial radius.
func NewSphere(center core.Point3, radius float64) Sphere {
	return Sphere{
		Center:    center,
		Radius:    radius,
		MaxRadius: 2.0 * radius,
		Color:     core.Splat(1.0),
	}
}

// NewColoredSphere creates a sphere with the given surface tint
func NewColoredSphere(center core.Point3, radius float64, color core.Color3) Sphere {
	s := NewSphere(center, radius)
	s.Color = color
	return s
}

// Name returns the label shown for this sphere in object editors
func (s Sphere) Name() string {
	return fmt.Sprintf("Sphere at %v", s.Center)
}

// Validate rejects spheres that would produce NaN normals or hit points
func (s Sphere) Validate() error {
	if !s.Center.IsFinite() {
		return &core.GeometryError{Object: s.Name(), Reason: "center is not finite"}
	}
	if math.IsNaN(s.Radius) || math.IsInf(s.Radius, 0) {
		return &core.GeometryError{Object: s.Name(), Reason: "radius is not finite"}
	}
	if s.Radius <= 0 {
		return &core.GeometryError{Object: s.Name(), Reason: fmt.Sprintf("radius must be > 0, got %g", s.Radius)}
	}
	return nil
}

// Hit tests if a ray intersects with the sphere
func (s Sphere) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return HitRecord{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Prefer the closer root, fall back to the far one when the ray starts
	// inside the sphere
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return HitRecord{}, false
		}
	}

	hit := HitRecord{
		T:            root,
		Point:        ray.At(root),
		SurfaceColor: s.Color,
	}

	outwardNormal := hit.Point.Subtract(s.Center).Divide(s.Radius)
	hit.SetFaceNormal(ray, outwardNormal)

	return hit, true
}
