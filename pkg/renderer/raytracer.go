package renderer

import (
	"math"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
	"github.com/df07/go-interactive-pathtracer/pkg/scene"
)

const (
	// albedo is the fraction of light every diffuse bounce keeps, before the
	// surface tint is applied
	albedo = 0.5

	// almost256 maps [0,1] onto [0,256) so that 1.0 lands on 255
	almost256 = 255.999
)

var (
	white   = core.Splat(1.0)
	skyBlue = core.NewVec3(0.5, 0.7, 1.0)
)

// PathTracer traces one frame of a scene. It holds read-only state only, so
// a single instance can be shared by every row worker of a frame.
type PathTracer struct {
	scene  *scene.Scene
	params RenderParams
	camera *Camera
	scale  float64
}

// NewPathTracer builds the camera for params and binds it to the scene
func NewPathTracer(s *scene.Scene, params RenderParams) *PathTracer {
	res := params.Resolution
	camera := NewCamera(res.Width, res.Height, params.FocalLength)
	return &PathTracer{
		scene:  s,
		params: params,
		camera: camera,
		scale:  camera.PixelScale(res.Width),
	}
}

// Camera returns the camera built for this frame
func (pt *PathTracer) Camera() *Camera {
	return pt.camera
}

// SkyColor returns the background gradient: white toward the nadir, blue
// toward the zenith
func SkyColor(direction core.Vec3) core.Color3 {
	unitDirection := direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return white.Lerp(1.0-t, skyBlue)
}

// RayColor returns the radiance arriving along ray. Each hit scatters into a
// random direction around the normal and keeps albedo × surface color of the
// light found there; misses see the sky.
func (pt *PathTracer) RayColor(ray core.Ray, sampler core.Sampler, depth int) core.Color3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth > MaxDepth {
		return core.Vec3{}
	}

	hit, isHit := pt.scene.Hit(ray, pt.params.MinRayDistance, math.Inf(1))
	if !isHit {
		return SkyColor(ray.Direction)
	}

	target := hit.Point.Add(hit.Normal).Add(core.SamplePointInUnitSphere(sampler.Get3D()))
	direction := target.Subtract(hit.Point)
	if direction.NearZero() {
		direction = hit.Normal
	}

	bounce := core.NewRay(hit.Point, direction)
	return pt.RayColor(bounce, sampler, depth+1).Multiply(albedo).MultiplyVec(hit.SurfaceColor)
}

// SamplePixel accumulates SamplesPerPixel jittered samples for camera-space
// pixel (x, y), where y = 0 is the bottom row. The sum is returned unaveraged.
func (pt *PathTracer) SamplePixel(x, y int, sampler core.Sampler) core.Color3 {
	accum := core.Vec3{}
	for sample := 0; sample < int(pt.params.SamplesPerPixel); sample++ {
		jitter := sampler.Get2D()
		u := (float64(x) + jitter.X) * pt.scale
		v := (float64(y) + jitter.Y) * pt.scale

		ray := pt.camera.CastRay(u, v)
		accum = accum.Add(pt.RayColor(ray, sampler, 0))
	}
	return accum
}

// RenderRow renders camera-space row y into frame, writing image row
// Height-1-y only. It returns the number of samples traced.
func (pt *PathTracer) RenderRow(y int, frame *Frame, sampler core.Sampler) int {
	samples := int(pt.params.SamplesPerPixel)
	row := frame.Height - 1 - y

	for x := 0; x < frame.Width; x++ {
		accum := pt.SamplePixel(x, y, sampler)
		frame.set(x, row, QuantizeColor(accum, samples))
	}

	return samples * frame.Width
}

// QuantizeColor averages accumulated radiance over samples, applies gamma 2
// and converts each channel to 8 bits. Zero samples produce black.
func QuantizeColor(accum core.Color3, samples int) [3]uint8 {
	if samples <= 0 {
		return [3]uint8{}
	}
	c := accum.Divide(float64(samples)).Sqrt()
	return [3]uint8{quantize(c.X), quantize(c.Y), quantize(c.Z)}
}

func quantize(v float64) uint8 {
	// also catches NaN
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		v = 1
	}
	q := math.Floor(v*almost256 + 0.5)
	if q > 255 {
		return 255
	}
	return uint8(q)
}
