// Package imageio decodes PNG/JPEG files into the core.TextureBuffer
// format the renderer's albedo and output stages consume; texture
// decoding itself is outside the renderer core, which only ever sees
// an already-decoded pixel buffer.
package imageio

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/df07/go-path-tracer/pkg/core"
)

// LoadTexture loads a PNG or JPEG file and converts it to a
// core.TextureBuffer in linear color space (the sRGB gamma baked into
// 8-bit image formats is removed so materials sample physically
// meaningful albedo values).
func LoadTexture(filename string) (core.TextureBuffer, error) {
	file, err := os.Open(filename)
	if err != nil {
		return core.TextureBuffer{}, fmt.Errorf("imageio: open %s: %w", filename, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return core.TextureBuffer{}, fmt.Errorf("imageio: decode %s: %w", filename, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			srgb := core.NewVec3(float64(r)/65535, float64(g)/65535, float64(b)/65535)
			pixels[y*width+x] = sRGBToLinear(srgb)
		}
	}

	return core.NewTextureBuffer(width, height, pixels), nil
}

// sRGBToLinear applies the sRGB gamma-decoding curve; the renderer's
// own output encoding (core.Vec3.GammaCorrect) applies the inverse when
// writing images back out.
func sRGBToLinear(c core.Vec3) core.Vec3 {
	return c.GammaCorrect(1 / 2.2)
}

// WritePNG gamma-encodes buf (linear color space, gamma 2.2) and writes
// it to filename as an 8-bit PNG.
func WritePNG(filename string, buf core.TextureBuffer) error {
	img := image.NewRGBA(image.Rect(0, 0, buf.Width, buf.Height))

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			c := buf.Pixels[y*buf.Width+x].Clamp(0, 1).GammaCorrect(2.2)
			i := img.PixOffset(x, y)
			img.Pix[i+0] = uint8(c.X*255 + 0.5)
			img.Pix[i+1] = uint8(c.Y*255 + 0.5)
			img.Pix[i+2] = uint8(c.Z*255 + 0.5)
			img.Pix[i+3] = 255
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", filename, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("imageio: encode %s: %w", filename, err)
	}
	return nil
}
