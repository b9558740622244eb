package renderer

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
)

// Resolution is an image size in pixels
type Resolution struct {
	Width  int
	Height int
}

// NewResolution creates a resolution
func NewResolution(width, height int) Resolution {
	return Resolution{Width: width, Height: height}
}

// Scale multiplies both dimensions, truncating toward zero
func (r Resolution) Scale(factor float64) Resolution {
	return Resolution{
		Width:  int(float64(r.Width) * factor),
		Height: int(float64(r.Height) * factor),
	}
}

// Pixels returns the number of pixels in an image of this size
func (r Resolution) Pixels() int {
	return r.Width * r.Height
}

// AspectRatio returns width / height
func (r Resolution) AspectRatio() float64 {
	return float64(r.Width) / float64(r.Height)
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Validate rejects empty images
func (r Resolution) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: resolution must be positive, got %s", core.ErrInvalidParams, r)
	}
	return nil
}

// baseResolutions are scaled by powers of two to build the catalog
var baseResolutions = []Resolution{
	{Width: 1600, Height: 1200},
	{Width: 1920, Height: 1080},
}

// AvailableResolutions returns the fixed catalog: both base resolutions scaled
// by 1/4, 1/2, 1, 2 and 4, sorted by width ascending.
func AvailableResolutions() []Resolution {
	var res []Resolution
	for i := -2; i <= 2; i++ {
		multiplier := math.Pow(2, float64(i))
		for _, base := range baseResolutions {
			res = append(res, base.Scale(multiplier))
		}
	}
	sort.SliceStable(res, func(a, b int) bool {
		return res[a].Width < res[b].Width
	})
	return res
}

// ParseResolution parses "WIDTHxHEIGHT", e.g. "800x600"
func ParseResolution(s string) (Resolution, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Resolution{}, fmt.Errorf("invalid resolution %q: expected WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return Resolution{}, fmt.Errorf("invalid resolution width %q: %w", w, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return Resolution{}, fmt.Errorf("invalid resolution height %q: %w", h, err)
	}

	r := NewResolution(width, height)
	if err := r.Validate(); err != nil {
		return Resolution{}, err
	}
	return r, nil
}
