package cells

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// toColorful converts a Color to a go-colorful RGB color, resolving ANSI and
// default colors to their approximate RGB values first.
func (c Color) toColorful() colorful.Color {
	r, g, b := c.ToRGBValues()
	return colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}
}

// fromColorful converts a go-colorful color back to an RGB Color, clamping
// components into the valid 0-255 range.
func fromColorful(cc colorful.Color) Color {
	clamp := func(v float64) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return RGBColor(clamp(cc.R), clamp(cc.G), clamp(cc.B))
}

// LCH returns the color's perceptually-uniform Lightness, Chroma, and Hue
// (HCL in go-colorful's terms, reordered to match the L/C/H convention).
// L is in [0,1], C is roughly [0,~0.4], H is in [0,360).
func (c Color) LCH() (l, ch, h float64) {
	h, ch, l = c.toColorful().Hcl()
	return l, ch, h
}

// LCHColor constructs a Color from perceptually-uniform Lightness, Chroma,
// and Hue coordinates.
func LCHColor(l, ch, h float64) Color {
	return fromColorful(colorful.Hcl(h, ch, l))
}

// Lighten returns a copy of the color with its perceptual lightness
// increased by amount (0-1), clamped to the valid range.
func (c Color) Lighten(amount float64) Color {
	l, ch, h := c.LCH()
	return LCHColor(clamp01(l+amount), ch, h)
}

// Darken returns a copy of the color with its perceptual lightness
// decreased by amount (0-1), clamped to the valid range.
func (c Color) Darken(amount float64) Color {
	return c.Lighten(-amount)
}

// Saturate returns a copy of the color with its chroma increased by amount.
func (c Color) Saturate(amount float64) Color {
	l, ch, h := c.LCH()
	newCh := ch + amount
	if newCh < 0 {
		newCh = 0
	}
	return LCHColor(l, newCh, h)
}

// Desaturate returns a copy of the color with its chroma decreased by amount.
func (c Color) Desaturate(amount float64) Color {
	return c.Saturate(-amount)
}

// HueShift rotates the color's hue by degrees, wrapping within [0,360).
func (c Color) HueShift(degrees float64) Color {
	l, ch, h := c.LCH()
	newH := math.Mod(h+degrees, 360)
	if newH < 0 {
		newH += 360
	}
	return LCHColor(l, ch, newH)
}

// MixPerceptual blends two colors in perceptual (LCh) space, t=0 returns a,
// t=1 returns b. Used by the animation engine to interpolate color
// transitions along the shortest perceptual path rather than linear RGB.
func MixPerceptual(a, b Color, t float64) Color {
	if a.IsDefault() || b.IsDefault() {
		if t < 0.5 {
			return a
		}
		return b
	}
	blended := a.toColorful().BlendHcl(b.toColorful(), t)
	return fromColorful(blended)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
