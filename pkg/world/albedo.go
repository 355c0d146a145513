package world

import "github.com/df07/go-path-tracer/pkg/core"

// AlbedoRef is an opaque, stable handle into a World's albedo arena.
type AlbedoRef struct{ i index }

// Albedo is the closed variant set of color sources a material can
// sample from a surface point's texture coordinate.
type Albedo interface {
	Sample(coord core.TextureCoord2D) core.Vec3
}

// SolidColor is a constant-color albedo.
type SolidColor struct {
	Color core.Vec3
}

var _ Albedo = SolidColor{}

func (s SolidColor) Sample(core.TextureCoord2D) core.Vec3 {
	return s.Color
}

// TextureAlbedo samples a decoded pixel buffer by nearest-pixel lookup.
type TextureAlbedo struct {
	Texture core.TextureBuffer
}

var _ Albedo = TextureAlbedo{}

func (t TextureAlbedo) Sample(coord core.TextureCoord2D) core.Vec3 {
	return t.Texture.Sample(coord)
}
