package gfxcolor

import (
	"math"
	"testing"
)

func TestSRGBRoundTrip(t *testing.T) {
	for _, c := range []float32{0, 0.001, 0.04045, 0.1, 0.5, 0.9, 1} {
		got := LinearToSRGB(SRGBToLinear(c))
		if math.Abs(float64(got-c)) > 1e-5 {
			t.Errorf("round trip of %v gave %v", c, got)
		}
	}
}

func TestSRGBEndpoints(t *testing.T) {
	if got := SRGBToLinear(0); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := SRGBToLinear(1); math.Abs(float64(got-1)) > 1e-6 {
		t.Errorf("expected 1, got %v", got)
	}
	// Below the breakpoint the curve is linear
	if got := SRGBToLinear(0.04); math.Abs(float64(got-0.04/12.92)) > 1e-7 {
		t.Errorf("expected linear segment, got %v", got)
	}
}

func TestLinearizedKeepsAlpha(t *testing.T) {
	c := RGBA(0.5, 0.25, 0.75, 0.6)
	lin := c.Linearized()
	if lin.A != 0.6 {
		t.Errorf("alpha changed: %v", lin.A)
	}
	if lin.R >= c.R {
		t.Errorf("mid-range sRGB should darken when linearized: %v >= %v", lin.R, c.R)
	}
}

func TestPremultiplied(t *testing.T) {
	c := RGBA(1, 0.5, 0.25, 0.5).Premultiplied()
	if c.R != 0.5 || c.G != 0.25 || c.B != 0.125 || c.A != 0.5 {
		t.Errorf("unexpected premultiplied color: %+v", c)
	}
}
