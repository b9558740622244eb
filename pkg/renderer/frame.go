package renderer

import (
	"image"
	"image/color"
	"time"
)

// bytesPerPixel is the size of one RGB triple in Frame.Pix
const bytesPerPixel = 3

// Frame is a rendered image: Width*Height RGB byte triples in row-major order.
// Row 0 is the top of the image, which is camera-space y = Height-1.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8
	Stats  FrameStats
}

// FrameStats describes how a frame was produced
type FrameStats struct {
	TotalPixels     int           // Width * Height
	TotalSamples    int           // Camera rays traced
	SamplesPerPixel int           // Requested samples per pixel
	Rows            int           // Rows rendered
	Workers         int           // Row workers used
	Seed            int64         // Frame seed the row generators were derived from
	Elapsed         time.Duration // Wall time inside the render worker
}

// NewFrame allocates a black frame
func NewFrame(res Resolution) *Frame {
	return &Frame{
		Width:  res.Width,
		Height: res.Height,
		Pix:    make([]uint8, res.Pixels()*bytesPerPixel),
	}
}

// Resolution returns the size of the frame
func (f *Frame) Resolution() Resolution {
	return NewResolution(f.Width, f.Height)
}

// At returns the RGB triple at image coordinates (x, row)
func (f *Frame) At(x, row int) [3]uint8 {
	i := (row*f.Width + x) * bytesPerPixel
	return [3]uint8{f.Pix[i], f.Pix[i+1], f.Pix[i+2]}
}

// set stores an RGB triple at image coordinates (x, row)
func (f *Frame) set(x, row int, rgb [3]uint8) {
	i := (row*f.Width + x) * bytesPerPixel
	f.Pix[i] = rgb[0]
	f.Pix[i+1] = rgb[1]
	f.Pix[i+2] = rgb[2]
}

// RGBA copies the frame into an opaque image for display surfaces
func (f *Frame) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for row := 0; row < f.Height; row++ {
		for x := 0; x < f.Width; x++ {
			p := f.At(x, row)
			img.SetRGBA(x, row, color.RGBA{R: p[0], G: p[1], B: p[2], A: 255})
		}
	}
	return img
}
