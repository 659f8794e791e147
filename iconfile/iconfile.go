// Package iconfile turns image files into tray icons. PNG and BMP sources
// are decoded, scaled to the requested square size and flattened to RGBA.
package iconfile

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"

	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/AtOnline/trayhost/tray"
)

// Size is the edge length used when the caller has no preference. The shell
// scales it down for the notification area.
const Size = 32

// Load decodes the image at path and scales it to size x size.
func Load(path string, size int) (tray.IconImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return tray.IconImage{}, err
	}
	defer f.Close()

	img, err := Decode(f, size)
	if err != nil {
		return tray.IconImage{}, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func Decode(r io.Reader, size int) (tray.IconImage, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return tray.IconImage{}, fmt.Errorf("decode icon: %w", err)
	}
	return tray.IconImageFromImage(Scale(src, size))
}

// Scale resizes src to a size x size straight alpha image.
func Scale(src image.Image, size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Badge renders a filled circle on a transparent background, used when no
// icon file is configured.
func Badge(fill color.NRGBA, size int) (tray.IconImage, error) {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	radius := float64(size) / 2

	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			dx := float64(px) - radius + 0.5
			dy := float64(py) - radius + 0.5
			if math.Sqrt(dx*dx+dy*dy) <= radius {
				img.SetNRGBA(px, py, fill)
			}
		}
	}
	return tray.IconImageFromImage(img)
}
