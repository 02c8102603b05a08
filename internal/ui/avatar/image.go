package avatar

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"

	"github.com/nfnt/resize"

	// Decoders for the formats offered by the picture picker.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const (
	posterizeLevels = 6
	processedSize   = 512
)

// LoadFromFile decodes an image file and runs it through the avatar
// pipeline: posterize, center-crop to a square, scale, circular mask.
func LoadFromFile(path string) (*image.NRGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open avatar image: %w", err)
	}
	defer file.Close()

	decoded, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode avatar image: %w", err)
	}
	return process(decoded), nil
}

func process(src image.Image) *image.NRGBA {
	posterized := posterize(src, posterizeLevels)
	cropped := centerCropSquare(posterized)
	scaled := toNRGBA(resize.Resize(processedSize, processedSize, cropped, resize.Lanczos3))
	return circleMask(scaled)
}

// posterize quantizes each color channel to the given number of levels,
// giving photos the flat "chibi" look. Alpha is preserved.
func posterize(src image.Image, levels int) *image.NRGBA {
	if levels < 2 {
		levels = 2
	}
	step := 255 / (levels - 1)

	out := toNRGBA(src)
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i+0] = quantize(out.Pix[i+0], step)
		out.Pix[i+1] = quantize(out.Pix[i+1], step)
		out.Pix[i+2] = quantize(out.Pix[i+2], step)
	}
	return out
}

func quantize(value uint8, step int) uint8 {
	return uint8(int(value) / step * step)
}

// centerCropSquare cuts the largest centered square out of the image.
func centerCropSquare(src *image.NRGBA) *image.NRGBA {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	side := width
	if height < side {
		side = height
	}

	offsetX := bounds.Min.X + (width-side)/2
	offsetY := bounds.Min.Y + (height-side)/2

	out := image.NewNRGBA(image.Rect(0, 0, side, side))
	draw.Draw(out, out.Bounds(), src, image.Pt(offsetX, offsetY), draw.Src)
	return out
}

// circleMask zeroes the alpha outside the inscribed circle, with a one
// pixel feathered edge.
func circleMask(src *image.NRGBA) *image.NRGBA {
	bounds := src.Bounds()
	side := bounds.Dx()
	center := float64(side) / 2
	radius := center - 0.5

	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			distance := math.Hypot(dx, dy)

			index := src.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			switch {
			case distance > radius:
				src.Pix[index+3] = 0
			case distance > radius-1:
				cover := radius - distance
				src.Pix[index+3] = uint8(float64(src.Pix[index+3]) * cover)
			}
		}
	}
	return src
}

// Placeholder draws the default avatar: a soft gray disc with a lighter
// inner circle.
func Placeholder() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, processedSize, processedSize))
	center := float64(processedSize) / 2
	outer := center - 0.5
	inner := outer * (1 - 2*0.18)

	outerColor := color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	innerColor := color.NRGBA{R: 240, G: 240, B: 240, A: 255}

	for y := 0; y < processedSize; y++ {
		for x := 0; x < processedSize; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			distance := math.Hypot(dx, dy)
			if distance > outer {
				continue
			}
			if distance <= inner {
				out.SetNRGBA(x, y, innerColor)
			} else {
				out.SetNRGBA(x, y, outerColor)
			}
		}
	}
	return out
}

func toNRGBA(src image.Image) *image.NRGBA {
	if nrgba, ok := src.(*image.NRGBA); ok {
		return copyNRGBA(nrgba)
	}
	bounds := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), src, bounds.Min, draw.Src)
	return out
}

func copyNRGBA(src *image.NRGBA) *image.NRGBA {
	bounds := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), src, bounds.Min, draw.Src)
	return out
}
