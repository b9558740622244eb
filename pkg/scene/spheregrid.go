package scene

import (
	"math"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
	"github.com/df07/go-interactive-pathtracer/pkg/geometry"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color3 {
	hRad := h * math.Pi / 180.0

	// OKLCH -> OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB -> LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS -> linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a grid of tinted spheres on the ground sphere,
// framed for the fixed camera looking down -Z from the origin
func NewSphereGridScene(gridSize int) *Scene {
	if gridSize < 1 {
		gridSize = 1
	}

	s := New()
	s.AddSphere(geometry.NewColoredSphere(core.NewVec3(0, -100.5, -1), 100, core.Splat(0.8)))

	// Grid spans 3 units across, starting one unit in front of the camera
	const extent = 3.0
	spacing := extent / float64(max(gridSize-1, 1))
	radius := math.Min(0.25, spacing*0.35)

	// Hue varies across X, chroma across depth
	const (
		lightness = 0.7
		minChroma = 0.05
		maxChroma = 0.25
	)

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - extent/2
			z := -1.5 - float64(j)*spacing
			y := -0.5 + radius

			fi := float64(i) / float64(max(gridSize-1, 1))
			fj := float64(j) / float64(max(gridSize-1, 1))
			color := oklchToRGB(lightness, minChroma+fj*(maxChroma-minChroma), fi*360)

			s.AddSphere(geometry.NewColoredSphere(core.NewVec3(x, y, z), radius, color))
		}
	}

	return s
}
