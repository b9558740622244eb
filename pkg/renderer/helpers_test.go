package renderer

import (
	"testing"
	"time"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
	"github.com/df07/go-interactive-pathtracer/pkg/geometry"
	"github.com/df07/go-interactive-pathtracer/pkg/scene"
)

// constantSampler returns the same value for every draw
type constantSampler struct {
	value float64
}

func (c constantSampler) Get1D() float64 { return c.value }
func (c constantSampler) Get2D() core.Vec2 {
	return core.NewVec2(c.value, c.value)
}
func (c constantSampler) Get3D() core.Vec3 {
	return core.Splat(c.value)
}

// testLogger forwards worker logs to the test output
type testLogger struct {
	t *testing.T
}

func (l testLogger) Printf(format string, args ...interface{}) {
	l.t.Helper()
	l.t.Logf(format, args...)
}

func testParams(width, height int, samples uint16) RenderParams {
	params := DefaultRenderParams()
	params.Resolution = NewResolution(width, height)
	params.SamplesPerPixel = samples
	return params
}

func singleSphereScene() *scene.Scene {
	return scene.New(geometry.SphereObject(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5)))
}

// enclosingScene traps the camera inside a sphere so every ray keeps bouncing
func enclosingScene() *scene.Scene {
	return scene.New(geometry.SphereObject(geometry.NewSphere(core.NewVec3(0, 0, 0), 10)))
}

// pollUntilFrame calls Render like a UI loop until the in-flight frame lands
func pollUntilFrame(t *testing.T, r *Renderer, params RenderParams, s *scene.Scene, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for r.Awaiting() {
		if time.Now().After(deadline) {
			t.Fatalf("Timed out waiting for frame (progress %.2f)", r.Progress())
		}
		if err := r.Render(params, s); err != nil {
			t.Fatalf("Render failed while polling: %v", err)
		}
		time.Sleep(time.Millisecond)
	}
}
