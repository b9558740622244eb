package renderer

import (
	"fmt"
	"math"
	"slices"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
)

// MaxDepth is the recursion bound of the path tracer; rays deeper than this
// return black.
const MaxDepth = 50

// RenderParams are the user-tunable inputs of one frame. They are a value
// type: the worker receives a Clone and never aliases the caller's copy.
type RenderParams struct {
	FocalLength          float64      // Distance from the camera to the viewport plane
	SamplesPerPixel      uint16       // Jittered rays traced per pixel
	MinRayDistance       float64      // tMin for every intersection, guards against self-intersection
	Resolution           Resolution   // Output image size
	AvailableResolutions []Resolution // Catalog offered to resolution pickers
}

// DefaultRenderParams returns sensible default values
func DefaultRenderParams() RenderParams {
	resolutions := AvailableResolutions()
	return RenderParams{
		FocalLength:          1.0,
		SamplesPerPixel:      100,
		MinRayDistance:       0.001,
		Resolution:           resolutions[0],
		AvailableResolutions: resolutions,
	}
}

// Clone returns a copy that shares no memory with p
func (p RenderParams) Clone() RenderParams {
	p.AvailableResolutions = slices.Clone(p.AvailableResolutions)
	return p
}

// Validate checks the parameters before they reach the render worker
func (p RenderParams) Validate() error {
	if p.SamplesPerPixel == 0 {
		return core.ErrZeroSamples
	}
	if math.IsNaN(p.FocalLength) || math.IsInf(p.FocalLength, 0) || p.FocalLength <= 0 {
		return fmt.Errorf("%w: focal length must be > 0, got %g", core.ErrInvalidParams, p.FocalLength)
	}
	if math.IsNaN(p.MinRayDistance) || math.IsInf(p.MinRayDistance, 0) || p.MinRayDistance <= 0 {
		return fmt.Errorf("%w: min ray distance must be > 0, got %g", core.ErrInvalidParams, p.MinRayDistance)
	}
	return p.Resolution.Validate()
}

// HasResolution reports whether r is part of the offered catalog
func (p RenderParams) HasResolution(r Resolution) bool {
	return slices.Contains(p.AvailableResolutions, r)
}
