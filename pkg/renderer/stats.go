package renderer

import (
	"image"
)

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image
// with channels normalized to [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += 0.2126*float64(r)/0xffff + 0.7152*float64(g)/0xffff + 0.0722*float64(b)/0xffff
		}
	}

	return total / float64(pixels)
}
