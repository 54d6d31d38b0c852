// Package colorfx converts decoded frames to display-native RGBA and applies a
// per-channel color multiplier.
package colorfx

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"
)

// ErrInvalidFrame indicates a frame buffer that does not match its declared
// geometry or pixel order.
var ErrInvalidFrame = errors.New("invalid frame")

// Order is the byte layout of a single pixel in a [Frame].
type Order string

const (
	// RGB is 3 bytes per pixel, red first.
	RGB Order = "rgb24"
	// BGR is 3 bytes per pixel, blue first.
	BGR Order = "bgr24"
	// RGBA is 4 bytes per pixel, red first, alpha last.
	RGBA Order = "rgba"
	// BGRA is 4 bytes per pixel, blue first, alpha last.
	BGRA Order = "bgra"
)

// Orders lists every supported [Order].
func Orders() []Order {
	return []Order{RGB, BGR, RGBA, BGRA}
}

// ParseOrder parses a pixel order name, case-insensitively.
func ParseOrder(s string) (Order, error) {
	o := Order(strings.ToLower(s))
	switch o {
	case RGB, BGR, RGBA, BGRA:
		return o, nil
	}

	return "", fmt.Errorf("%w: unknown pixel order %q", ErrInvalidFrame, s)
}

// BytesPerPixel returns the pixel stride for o, or 0 for an unknown order.
func (o Order) BytesPerPixel() int {
	switch o {
	case RGB, BGR:
		return 3
	case RGBA, BGRA:
		return 4
	}

	return 0
}

// redFirst reports whether the first byte of a pixel is the red channel.
func (o Order) redFirst() bool {
	return o == RGB || o == RGBA
}

// Frame is a decoded picture in the source's native pixel order. Rows are
// tightly packed.
type Frame struct {
	Order  Order
	Pix    []byte
	Width  int
	Height int
}

// Validate checks that Pix holds exactly Width*Height pixels.
func (f Frame) Validate() error {
	bpp := f.Order.BytesPerPixel()
	if bpp == 0 {
		return fmt.Errorf("%w: unknown pixel order %q", ErrInvalidFrame, f.Order)
	}

	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidFrame, f.Width, f.Height)
	}

	want := f.Width * f.Height * bpp
	if len(f.Pix) != want {
		return fmt.Errorf("%w: have %d bytes, want %d", ErrInvalidFrame, len(f.Pix), want)
	}

	return nil
}

// Multiplier scales the red, green, and blue channels of every pixel. The zero
// value blacks out the picture; use [Identity] for an unmodified picture.
type Multiplier [3]float64

// Identity leaves every pixel unchanged.
var Identity = Multiplier{1, 1, 1}

// Channel returns clamp(round(p*m), 0, 255).
func Channel(p uint8, m float64) uint8 {
	v := math.Round(float64(p) * m)

	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	}

	return uint8(v)
}

// Apply converts f to RGBA and scales each color channel by m. Alpha is forced
// to opaque.
func Apply(f Frame, m Multiplier) (*image.RGBA, error) {
	err := f.Validate()
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	ApplyInto(dst, f, m)

	return dst, nil
}

// ApplyInto is like [Apply] but writes into dst, which must have the same
// size as f. f must already be valid.
func ApplyInto(dst *image.RGBA, f Frame, m Multiplier) {
	bpp := f.Order.BytesPerPixel()

	ri, bi := 0, 2
	if !f.Order.redFirst() {
		ri, bi = 2, 0
	}

	// Lookup tables turn the per-pixel multiply into three loads.
	var lut [3][256]uint8
	for c := range lut {
		for p := range 256 {
			lut[c][p] = Channel(uint8(p), m[c])
		}
	}

	for y := range f.Height {
		src := f.Pix[y*f.Width*bpp : (y+1)*f.Width*bpp]
		row := dst.Pix[y*dst.Stride : y*dst.Stride+f.Width*4]

		for x := range f.Width {
			s := src[x*bpp : x*bpp+bpp]
			d := row[x*4 : x*4+4]
			d[0] = lut[0][s[ri]]
			d[1] = lut[1][s[1]]
			d[2] = lut[2][s[bi]]
			d[3] = 0xff
		}
	}
}

// FromImage copies img into an RGBA [Frame].
func FromImage(img image.Image) Frame {
	b := img.Bounds()
	f := Frame{
		Order:  RGBA,
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]byte, b.Dx()*b.Dy()*4),
	}

	i := 0

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			f.Pix[i] = uint8(r >> 8)
			f.Pix[i+1] = uint8(g >> 8)
			f.Pix[i+2] = uint8(bl >> 8)
			f.Pix[i+3] = uint8(a >> 8)
			i += 4
		}
	}

	return f
}
