package geometry

import (
	"fmt"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
)

// ObjectKind tags the closed set of primitives an Object can hold
type ObjectKind int

const (
	KindSphere ObjectKind = iota
	KindGroup
)

func (k ObjectKind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindGroup:
		return "group"
	default:
		return fmt.Sprintf("ObjectKind(%d)", int(k))
	}
}

// Object is a tagged variant over every primitive the tracer understands.
// New primitives are added as new kinds rather than as open implementations
// of an interface, so objects stay plain values that copy safely between
// goroutines.
type Object struct {
	Kind   ObjectKind
	Sphere Sphere // Valid when Kind == KindSphere
	Group  Group  // Valid when Kind == KindGroup
}

// SphereObject wraps a sphere
func SphereObject(s Sphere) Object {
	return Object{Kind: KindSphere, Sphere: s}
}

// GroupObject wraps a nested list of objects
func GroupObject(name string, objects []Object) Object {
	return Object{Kind: KindGroup, Group: Group{Label: name, Objects: objects}}
}

// Hit dispatches the intersection test on the object's kind
func (o Object) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	switch o.Kind {
	case KindSphere:
		return o.Sphere.Hit(ray, tMin, tMax)
	case KindGroup:
		return o.Group.Hit(ray, tMin, tMax)
	default:
		return HitRecord{}, false
	}
}

// Name returns a label for editors and logs
func (o Object) Name() string {
	switch o.Kind {
	case KindSphere:
		return o.Sphere.Name()
	case KindGroup:
		return o.Group.Name()
	default:
		return o.Kind.String()
	}
}

// Validate checks the wrapped primitive
func (o Object) Validate() error {
	switch o.Kind {
	case KindSphere:
		return o.Sphere.Validate()
	case KindGroup:
		return o.Group.Validate()
	default:
		return &core.GeometryError{Object: o.Kind.String(), Reason: "unknown object kind"}
	}
}

// Clone returns a deep copy; nested groups do not share backing arrays
func (o Object) Clone() Object {
	if o.Kind == KindGroup {
		o.Group = o.Group.Clone()
	}
	return o
}

// Count returns the number of primitives, descending into groups
func (o Object) Count() int {
	if o.Kind == KindGroup {
		return o.Group.Count()
	}
	return 1
}

// Group aggregates objects and resolves the nearest hit among them
type Group struct {
	Label   string
	Objects []Object
}

// Hit returns the globally nearest hit in [tMin, tMax]. Each accepted hit
// tightens the upper bound, so insertion order never changes the result.
func (g Group) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	var closest HitRecord
	closestSoFar := tMax
	hitAnything := false

	for i := range g.Objects {
		if hit, ok := g.Objects[i].Hit(ray, tMin, closestSoFar); ok {
			hitAnything = true
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, hitAnything
}

// Name returns the group label, defaulting to "group"
func (g Group) Name() string {
	if g.Label == "" {
		return "group"
	}
	return g.Label
}

// Validate checks every member and reports the first failure
func (g Group) Validate() error {
	for i := range g.Objects {
		if err := g.Objects[i].Validate(); err != nil {
			return fmt.Errorf("%s object %d: %w", g.Name(), i, err)
		}
	}
	return nil
}

// Clone returns a deep copy of the group
func (g Group) Clone() Group {
	if g.Objects == nil {
		return Group{Label: g.Label}
	}
	objects := make([]Object, len(g.Objects))
	for i := range g.Objects {
		objects[i] = g.Objects[i].Clone()
	}
	return Group{Label: g.Label, Objects: objects}
}

// Count returns the number of primitives in the group, recursively
func (g Group) Count() int {
	n := 0
	for i := range g.Objects {
		n += g.Objects[i].Count()
	}
	return n
}
