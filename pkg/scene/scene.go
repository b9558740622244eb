package scene

import (
	"fmt"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
	"github.com/df07/go-interactive-pathtracer/pkg/geometry"
)

// Scene is an ordered snapshot of the objects to render. Order carries no
// meaning for intersection: the nearest hit always wins.
type Scene struct {
	Objects []geometry.Object
}

// New creates a scene from the given objects
func New(objects ...geometry.Object) *Scene {
	return &Scene{Objects: objects}
}

// AddSphere appends a sphere to the scene
func (s *Scene) AddSphere(sphere geometry.Sphere) {
	s.Objects = append(s.Objects, geometry.SphereObject(sphere))
}

// Hit returns the nearest intersection across every object in the scene
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (geometry.HitRecord, bool) {
	return geometry.Group{Objects: s.Objects}.Hit(ray, tMin, tMax)
}

// Name identifies the scene in logs and editors
func (s *Scene) Name() string {
	return "scene"
}

// AsObject wraps the scene as a group so it can be nested in another scene
func (s *Scene) AsObject(name string) geometry.Object {
	return geometry.GroupObject(name, s.Clone().Objects)
}

// Clone returns a deep copy that shares no memory with s. The render worker
// only ever sees clones.
func (s *Scene) Clone() *Scene {
	if s == nil {
		return nil
	}
	objects := make([]geometry.Object, len(s.Objects))
	for i := range s.Objects {
		objects[i] = s.Objects[i].Clone()
	}
	return &Scene{Objects: objects}
}

// Validate reports the first degenerate object in the scene
func (s *Scene) Validate() error {
	for i := range s.Objects {
		if err := s.Objects[i].Validate(); err != nil {
			return fmt.Errorf("scene object %d: %w", i, err)
		}
	}
	return nil
}

// Names lists object labels in order for per-object editors
func (s *Scene) Names() []string {
	names := make([]string, len(s.Objects))
	for i := range s.Objects {
		names[i] = s.Objects[i].Name()
	}
	return names
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return geometry.Group{Objects: s.Objects}.Count()
}
