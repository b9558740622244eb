package scene

import (
	"github.com/df07/go-interactive-pathtracer/pkg/core"
	"github.com/df07/go-interactive-pathtracer/pkg/geometry"
)

// NewDefaultScene creates a sphere resting on a large ground sphere
func NewDefaultScene() *Scene {
	s := New()
	s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5))
	s.AddSphere(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100))
	return s
}

// NewEmptyScene creates a scene with nothing but sky
func NewEmptyScene() *Scene {
	return New()
}
