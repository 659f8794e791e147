package tray

import (
	"fmt"
	"image"
	"image/color"
)

// IconImage is a raw RGBA raster, row-major, 4 bytes per pixel.
type IconImage struct {
	width, height int
	rgba          []byte
}

// NewIconImage validates the dimensions against the buffer and keeps a
// private copy of it.
func NewIconImage(width, height int, rgba []byte) (IconImage, error) {
	if width <= 0 || height <= 0 {
		return IconImage{}, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidImage, width, height)
	}
	if len(rgba)%4 != 0 {
		return IconImage{}, fmt.Errorf("%w: buffer length %d is not a multiple of 4", ErrInvalidImage, len(rgba))
	}
	if len(rgba) != width*height*4 {
		return IconImage{}, fmt.Errorf("%w: buffer length %d, want %d for %dx%d", ErrInvalidImage, len(rgba), width*height*4, width, height)
	}
	buf := make([]byte, len(rgba))
	copy(buf, rgba)
	return IconImage{width: width, height: height, rgba: buf}, nil
}

// IconImageFromImage flattens img into straight (non premultiplied) RGBA.
func IconImageFromImage(img image.Image) (IconImage, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	buf := make([]byte, 0, w*h*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			buf = append(buf, c.R, c.G, c.B, c.A)
		}
	}
	return NewIconImage(w, h, buf)
}

func (i IconImage) Width() int  { return i.width }
func (i IconImage) Height() int { return i.height }

// Pixels returns a copy of the RGBA buffer.
func (i IconImage) Pixels() []byte {
	buf := make([]byte, len(i.rgba))
	copy(buf, i.rgba)
	return buf
}

// IsZero reports whether i was not built through NewIconImage.
func (i IconImage) IsZero() bool {
	return i.width == 0 || i.height == 0
}
