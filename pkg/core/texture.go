package core

// PixelCoord2D is a row-major 2D pixel coordinate; (0,0) is the
// upper-left corner of the buffer.
type PixelCoord2D struct {
	X, Y int
}

// TextureCoord2D is a normalized 2D texture coordinate in [0,1]^2,
// with (0,0) at the lower-left.
type TextureCoord2D struct {
	X, Y F
}

// ToPixelCoord converts a texture coordinate into a pixel coordinate
// for a buffer of the given dimensions. An earlier version of this
// renderer flipped y using the buffer width instead of its height,
// which produced out-of-bounds/incorrect reads for any non-square
// texture; this flips by height.
func (t TextureCoord2D) ToPixelCoord(width, height int) PixelCoord2D {
	x := int(t.X * F(width))
	y := int(t.Y * F(height))

	if x >= width {
		x = width - 1
	}
	if x < 0 {
		x = 0
	}
	if y >= height {
		y = height - 1
	}
	if y < 0 {
		y = 0
	}

	y = height - 1 - y

	return PixelCoord2D{X: x, Y: y}
}

// TextureBuffer is a row-major width*height buffer of linear-color RGB
// values. imageio.LoadTexture fills one with decoded pixels in [0,1];
// renderer.Render returns its unclamped radiance image in one.
type TextureBuffer struct {
	Width, Height int
	Pixels        []Vec3 // row-major, Pixels[y*Width+x]
}

// NewTextureBuffer wraps pre-decoded pixels. len(pixels) must equal
// width*height.
func NewTextureBuffer(width, height int, pixels []Vec3) TextureBuffer {
	return TextureBuffer{Width: width, Height: height, Pixels: pixels}
}

// Sample performs nearest-pixel lookup at the given texture coordinate.
func (t TextureBuffer) Sample(coord TextureCoord2D) Vec3 {
	p := coord.ToPixelCoord(t.Width, t.Height)
	return t.Pixels[p.Y*t.Width+p.X]
}
