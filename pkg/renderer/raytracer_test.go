package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
	"github.com/df07/go-interactive-pathtracer/pkg/scene"
)

func TestSkyColor(t *testing.T) {
	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"zenith is blue", core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"nadir is white", core.NewVec3(0, -3, 0), core.NewVec3(1, 1, 1)},
		{"horizon is halfway", core.NewVec3(2, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SkyColor(tt.direction)
			if got.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestQuantizeColor(t *testing.T) {
	tests := []struct {
		name     string
		accum    core.Vec3
		samples  int
		expected [3]uint8
	}{
		{"full white", core.Splat(4), 4, [3]uint8{255, 255, 255}},
		{"black", core.Vec3{}, 4, [3]uint8{0, 0, 0}},
		{"gamma 2", core.Splat(0.25), 1, [3]uint8{128, 128, 128}},
		{"over bright saturates", core.Splat(50), 2, [3]uint8{255, 255, 255}},
		{"negative clamps", core.NewVec3(-1, 0.25, -0.5), 1, [3]uint8{0, 128, 0}},
		{"nan becomes black", core.NewVec3(math.NaN(), 1, 0), 1, [3]uint8{0, 255, 0}},
		{"zero samples is black", core.Splat(3), 0, [3]uint8{0, 0, 0}},
		{"per channel", core.NewVec3(1, 0.25, 0), 1, [3]uint8{255, 128, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuantizeColor(tt.accum, tt.samples)
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRayColor_DepthLimit(t *testing.T) {
	pt := NewPathTracer(scene.NewEmptyScene(), testParams(4, 4, 1))
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))
	sampler := constantSampler{0.5}

	if got := pt.RayColor(ray, sampler, MaxDepth+1); got != (core.Vec3{}) {
		t.Errorf("Past the bounce limit expected black, got %v", got)
	}
	if got := pt.RayColor(ray, sampler, MaxDepth); got != SkyColor(ray.Direction) {
		t.Errorf("At the bounce limit a miss should still see the sky, got %v", got)
	}
}

func TestRayColor_TrappedRayIsBlack(t *testing.T) {
	pt := NewPathTracer(enclosingScene(), testParams(4, 4, 1))

	samplers := []struct {
		name    string
		sampler core.Sampler
	}{
		{"constant", constantSampler{0.25}},
		{"zero", constantSampler{0}},
		{"random", core.NewSeededSampler(7)},
	}

	for _, s := range samplers {
		t.Run(s.name, func(t *testing.T) {
			for _, dir := range []core.Vec3{{X: 0, Y: 0, Z: -1}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: -1, Z: 0}} {
				got := pt.RayColor(core.NewRay(core.Vec3{}, dir), s.sampler, 0)
				if got != (core.Vec3{}) {
					t.Errorf("Ray %v escaped the enclosing sphere with %v", dir, got)
				}
			}
		})
	}
}

func TestRayColor_DiffuseHitDarkensSky(t *testing.T) {
	pt := NewPathTracer(singleSphereScene(), testParams(4, 4, 1))
	sampler := constantSampler{0.25}

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	got := pt.RayColor(ray, sampler, 0)

	// One bounce off white keeps half of whatever sky the bounce sees
	maxSky := SkyColor(core.NewVec3(0, 1, 0)).Multiply(albedo)
	if got.X <= 0 || got.X > 0.5 || got.Y > 0.5 || got.Z > maxSky.Z+1e-12 {
		t.Errorf("Expected a single attenuated sky bounce, got %v", got)
	}
}

func TestPathTracer_EmptySceneIsSky(t *testing.T) {
	params := testParams(4, 3, 1)
	pt := NewPathTracer(scene.NewEmptyScene(), params)
	frame := NewFrame(params.Resolution)
	sampler := constantSampler{0}

	for y := 0; y < frame.Height; y++ {
		pt.RenderRow(y, frame, sampler)
	}

	scale := pt.Camera().PixelScale(frame.Width)
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			dir := pt.Camera().CastRay(float64(x)*scale, float64(y)*scale).Direction
			expected := QuantizeColor(SkyColor(dir), 1)
			if got := frame.At(x, frame.Height-1-y); got != expected {
				t.Errorf("Pixel (%d,%d): expected sky %v, got %v", x, y, expected, got)
			}
		}
	}

	// Top of the image is bluer than the bottom
	top, bottom := frame.At(0, 0), frame.At(0, frame.Height-1)
	if top[0] >= bottom[0] {
		t.Errorf("Expected red to fall toward the top, top=%v bottom=%v", top, bottom)
	}
}

func TestPathTracer_SingleSphere(t *testing.T) {
	params := testParams(2, 2, 1)
	pt := NewPathTracer(singleSphereScene(), params)
	frame := NewFrame(params.Resolution)
	sampler := constantSampler{0.25}

	for y := 0; y < frame.Height; y++ {
		if n := pt.RenderRow(y, frame, sampler); n != frame.Width {
			t.Errorf("Row %d: expected %d samples, got %d", y, frame.Width, n)
		}
	}

	scale := pt.Camera().PixelScale(frame.Width)
	skyAt := func(x, y int) [3]uint8 {
		u := (float64(x) + 0.25) * scale
		v := (float64(y) + 0.25) * scale
		return QuantizeColor(SkyColor(pt.Camera().CastRay(u, v).Direction), 1)
	}

	// Camera-space (0,0) looks at (-0.75,-0.75,-1) and misses
	if got := frame.At(0, 1); got != skyAt(0, 0) {
		t.Errorf("Expected sky at bottom-left, got %v want %v", got, skyAt(0, 0))
	}
	// Camera-space (1,1) looks at (0.25,0.25,-1) and hits the sphere
	if got := frame.At(1, 0); got == skyAt(1, 1) {
		t.Errorf("Expected sphere at top-right, got plain sky %v", got)
	}
}

func TestPathTracer_RowFlip(t *testing.T) {
	params := testParams(3, 5, 1)
	pt := NewPathTracer(scene.NewEmptyScene(), params)
	frame := NewFrame(params.Resolution)

	pt.RenderRow(0, frame, constantSampler{0.5})

	for row := 0; row < frame.Height; row++ {
		written := frame.At(0, row) != [3]uint8{}
		if row == frame.Height-1 && !written {
			t.Error("Camera-space row 0 should land on the last image row")
		}
		if row != frame.Height-1 && written {
			t.Errorf("Image row %d written by camera-space row 0", row)
		}
	}
}

func TestPathTracer_SampleCount(t *testing.T) {
	params := testParams(5, 2, 7)
	pt := NewPathTracer(scene.NewEmptyScene(), params)

	// On an empty scene every sample is sky, so the sum is exactly samples × sky
	sampler := constantSampler{0.5}
	accum := pt.SamplePixel(1, 1, sampler)
	scale := pt.Camera().PixelScale(params.Resolution.Width)
	sky := SkyColor(pt.Camera().CastRay(1.5*scale, 1.5*scale).Direction)
	if accum.Subtract(sky.Multiply(7)).Length() > 1e-9 {
		t.Errorf("Expected 7 sky samples %v, got %v", sky.Multiply(7), accum)
	}

	if n := pt.RenderRow(0, NewFrame(params.Resolution), sampler); n != 35 {
		t.Errorf("Expected 35 samples for the row, got %d", n)
	}
}
