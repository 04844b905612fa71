// Package gfxcolor provides the engine color type and sRGB conversions.
//
// Colors are authored in sRGB but all shading happens in linear space,
// so values are linearized before they reach a shader and encoded back
// on output.
package gfxcolor

import "math"

// Color is an RGBA color with float32 channels in [0, 1].
type Color struct {
	R float32 `json:"r" yaml:"r"`
	G float32 `json:"g" yaml:"g"`
	B float32 `json:"b" yaml:"b"`
	A float32 `json:"a" yaml:"a"`
}

// RGBA constructs a Color from the four channels.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Transparent is fully transparent black.
var Transparent = Color{}

// SRGBToLinear converts a single sRGB-encoded channel to linear.
func SRGBToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return float32(math.Pow((float64(c)+0.055)/1.055, 2.4))
}

// LinearToSRGB converts a single linear channel to sRGB encoding.
func LinearToSRGB(c float32) float32 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return float32(1.055*math.Pow(float64(c), 1.0/2.4) - 0.055)
}

// Linearized returns the color with RGB channels converted from sRGB to
// linear. Alpha is never encoded and passes through.
func (c Color) Linearized() Color {
	return Color{
		R: SRGBToLinear(c.R),
		G: SRGBToLinear(c.G),
		B: SRGBToLinear(c.B),
		A: c.A,
	}
}

// Encoded returns the color with RGB channels converted from linear to
// sRGB. Alpha passes through.
func (c Color) Encoded() Color {
	return Color{
		R: LinearToSRGB(c.R),
		G: LinearToSRGB(c.G),
		B: LinearToSRGB(c.B),
		A: c.A,
	}
}

// Premultiplied returns the color with RGB scaled by alpha.
func (c Color) Premultiplied() Color {
	return Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}
