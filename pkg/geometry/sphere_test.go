package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit from inside",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "unnormalized direction scales t",
			rayOrigin:      core.NewVec3(0, 0, 3),
			rayDirection:   core.NewVec3(0, 0, -2),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}

			tolerance := 1e-9
			if math.Abs(hit.Normal.X-tt.expectedNormal.X) > tolerance ||
				math.Abs(hit.Normal.Y-tt.expectedNormal.Y) > tolerance ||
				math.Abs(hit.Normal.Z-tt.expectedNormal.Z) > tolerance {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}

			if math.Abs(hit.Normal.Length()-1) > 1e-9 {
				t.Errorf("Normal should be unit length, got %f", hit.Normal.Length())
			}
		})
	}
}

func TestSphere_Hit_TangentRaySingleRoot(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)

	// Ray runs parallel to the tangent plane at x = radius
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected tangent hit, but got miss")
	}

	if math.Abs(hit.T-2.0) > 1e-9 {
		t.Errorf("Expected single root at t=2, got t=%f", hit.T)
	}

	expectedPoint := core.NewVec3(1, 0, 0)
	if hit.Point.Subtract(expectedPoint).Length() > 1e-9 {
		t.Errorf("Expected hit point %v, got %v", expectedPoint, hit.Point)
	}

	// Both roots coincide, so restricting tMin past the first leaves nothing
	if _, again := sphere.Hit(ray, 2.0+1e-6, math.Inf(1)); again {
		t.Error("Tangent ray should not produce a second distinct root")
	}
}

func TestSphere_Hit_InsideUsesFarRoot(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5)

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expectedT float64
	}{
		{"from center", core.NewVec3(0, 0, -1), core.NewVec3(0, 0, -1), 0.5},
		{"off center", core.NewVec3(0, 0.25, -1), core.NewVec3(0, 1, 0), 0.25},
		{"sideways", core.NewVec3(0, 0, -1), core.NewVec3(1, 0, 0), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction)
			hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
			if !isHit {
				t.Fatal("Expected hit from inside sphere")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected far root t=%f, got %f", tt.expectedT, hit.T)
			}
			if hit.FrontFace {
				t.Error("Hit from inside should be a back face")
			}
			if hit.Normal.Dot(tt.direction) >= 0 {
				t.Errorf("Normal %v should oppose ray direction %v", hit.Normal, tt.direction)
			}
		})
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// Test tMax bound
	hit, isHit := sphere.Hit(ray, 0.001, 0.5)
	if isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}

	// Test tMin bound
	hit, isHit = sphere.Hit(ray, 3.5, 1000.0)
	if isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}

	// Near root excluded by tMin falls back to the far root
	hit, isHit = sphere.Hit(ray, 1.5, 1000.0)
	if !isHit || math.Abs(hit.T-3.0) > 1e-9 {
		t.Errorf("Expected far root t=3, got hit=%t t=%f", isHit, hit.T)
	}
}

func TestSphere_Hit_SurfaceColor(t *testing.T) {
	color := core.NewVec3(0.8, 0.3, 0.1)
	sphere := NewColoredSphere(core.NewVec3(0, 0, -1), 0.5, color)

	hit, isHit := sphere.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.SurfaceColor != color {
		t.Errorf("Expected surface color %v, got %v", color, hit.SurfaceColor)
	}
}

func TestNewSphere_Defaults(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5)

	if sphere.MaxRadius != 1.0 {
		t.Errorf("Expected max radius 1.0, got %f", sphere.MaxRadius)
	}
	if sphere.Color != core.Splat(1) {
		t.Errorf("Expected white sphere, got %v", sphere.Color)
	}
	if sphere.Name() != "Sphere at (0, 0, -1)" {
		t.Errorf("Unexpected name %q", sphere.Name())
	}
}

func TestSphere_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sphere  Sphere
		wantErr bool
	}{
		{"valid", NewSphere(core.NewVec3(0, 0, -1), 0.5), false},
		{"zero radius", NewSphere(core.NewVec3(0, 0, -1), 0), true},
		{"negative radius", NewSphere(core.NewVec3(0, 0, -1), -1), true},
		{"nan radius", NewSphere(core.NewVec3(0, 0, -1), math.NaN()), true},
		{"infinite center", NewSphere(core.NewVec3(math.Inf(-1), 0, 0), 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sphere.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%t, got %v", tt.wantErr, err)
			}
			var geomErr *core.GeometryError
			if err != nil && !errors.As(err, &geomErr) {
				t.Errorf("Expected *core.GeometryError, got %T", err)
			}
		})
	}
}
