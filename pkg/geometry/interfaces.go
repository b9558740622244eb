package geometry

import "github.com/df07/go-interactive-pathtracer/pkg/core"

// HitRecord contains information about a ray-object intersection.
// It only lives for the duration of the query that produced it.
type HitRecord struct {
	Point        core.Point3 // Point of intersection
	Normal       core.Vec3   // Unit surface normal, facing against the incoming ray
	T            float64     // Ray parameter, the only ordering key between hits
	FrontFace    bool        // Whether the ray hit the outside of the surface
	SurfaceColor core.Color3 // Tint of the surface that was hit
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Hittable is anything that answers ray intersection queries.
// Hit returns the nearest intersection with tMin <= t <= tMax.
type Hittable interface {
	Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool)
}
