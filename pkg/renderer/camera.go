package renderer

import (
	"github.com/df07/go-interactive-pathtracer/pkg/core"
)

// viewportHeight is the fixed height of the viewport in world units
const viewportHeight = 2.0

// Camera generates rays for rendering. It is built fresh for every frame and
// never mutated, so concurrent CastRay calls are safe.
type Camera struct {
	Origin          core.Point3
	LowerLeftCorner core.Point3
	ViewportWidth   float64
	ViewportHeight  float64
	FocalLength     float64
}

// NewCamera derives the viewport from the image aspect ratio. The camera sits
// at the origin looking down -Z; the viewport plane sits focalLength away.
func NewCamera(width, height int, focalLength float64) *Camera {
	aspectRatio := float64(width) / float64(height)
	viewportWidth := aspectRatio * viewportHeight

	origin := core.NewVec3(0, 0, 0)
	lowerLeftCorner := core.NewVec3(
		origin.X-viewportWidth/2,
		origin.Y-viewportHeight/2,
		origin.Z-focalLength,
	)

	return &Camera{
		Origin:          origin,
		LowerLeftCorner: lowerLeftCorner,
		ViewportWidth:   viewportWidth,
		ViewportHeight:  viewportHeight,
		FocalLength:     focalLength,
	}
}

// PixelScale returns the viewport size of one pixel for an image this many
// pixels wide. Pixels are square, so the same scale applies vertically.
func (c *Camera) PixelScale(width int) float64 {
	return c.ViewportWidth / float64(width)
}

// CastRay returns the ray through viewport offset (u, v), measured in world
// units from the lower left corner.
func (c *Camera) CastRay(u, v float64) core.Ray {
	direction := c.LowerLeftCorner.
		Add(core.NewVec3(u, v, 0)).
		Subtract(c.Origin)

	return core.NewRay(c.Origin, direction)
}
