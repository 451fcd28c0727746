package plane

import (
	"image"
	"image/color"
)

// Planes holds the three color channels of an RGB image as independent
// row-major float32 sample grids in [0,255], plus the alpha channel
// passed through untouched. Each plane is an owned, contiguous buffer;
// block processing slices into it without copying.
type Planes struct {
	Width, Height int

	// Colors are the R, G, B sample grids, in that channel order.
	Colors [3][]float32

	bounds image.Rectangle
	alpha  []uint8
}

// Split converts an image into three independent channel planes.
// Samples are the 8-bit channel values, so (*Planes).Image reproduces
// the input exactly for 8-bit sources as long as the planes are not
// modified in between.
func Split(src image.Image) *Planes {
	var p Planes
	p.bounds = src.Bounds()
	p.Width, p.Height = p.bounds.Dx(), p.bounds.Dy()
	area := p.Width * p.Height
	for i := range p.Colors {
		p.Colors[i] = make([]float32, area)
	}
	p.alpha = make([]uint8, area)

	idx := 0
	for y := p.bounds.Min.Y; y < p.bounds.Max.Y; y++ {
		for x := p.bounds.Min.X; x < p.bounds.Max.X; x++ {
			r32, g32, b32, a32 := src.At(x, y).RGBA()
			p.Colors[0][idx] = float32(r32 >> 8)
			p.Colors[1][idx] = float32(g32 >> 8)
			p.Colors[2][idx] = float32(b32 >> 8)
			p.alpha[idx] = uint8(a32 >> 8)
			idx++
		}
	}
	return &p
}

// New allocates zeroed opaque planes of the given size. Used to
// assemble an extracted watermark.
func New(width, height int) *Planes {
	var p Planes
	p.bounds = image.Rect(0, 0, width, height)
	p.Width, p.Height = width, height
	area := width * height
	for i := range p.Colors {
		p.Colors[i] = make([]float32, area)
	}
	p.alpha = make([]uint8, area)
	for i := range p.alpha {
		p.alpha[i] = 0xff
	}
	return &p
}

// Image joins the planes back into an RGBA image, rounding every sample
// to the nearest integer and clamping to [0,255].
func (p *Planes) Image() image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	idx := 0
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			dst.SetRGBA(x, y, color.RGBA{
				R: clip8(p.Colors[0][idx]),
				G: clip8(p.Colors[1][idx]),
				B: clip8(p.Colors[2][idx]),
				A: p.alpha[idx],
			})
			idx++
		}
	}
	return dst
}

// At8 returns the 8-bit sample of channel ch at (x, y), rounded and
// clamped the same way Image rounds it.
func (p *Planes) At8(ch, x, y int) uint8 {
	return clip8(p.Colors[ch][y*p.Width+x])
}

// Set8 stores an 8-bit sample into channel ch at (x, y).
func (p *Planes) Set8(ch, x, y int, v uint8) {
	p.Colors[ch][y*p.Width+x] = float32(v)
}

func clip8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
