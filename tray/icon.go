package tray

import "fmt"

// WinIcon is the input of the CreateIcon call: a 32bpp color (XOR) mask in
// BGRA order and an AND mask of one byte per pixel.
type WinIcon struct {
	W, H        int
	Planes, Bpp byte
	AndT, XorT  []byte
}

// Masks converts an RGBA raster into the two buffers CreateIcon expects.
// The AND byte of each pixel is 255-alpha; the XOR buffer has red and blue
// swapped and green and alpha untouched.
func Masks(img IconImage) (xor, and []byte) {
	xor = img.Pixels()
	and = make([]byte, 0, len(xor)/4)
	for i := 0; i+3 < len(xor); i += 4 {
		and = append(and, 255-xor[i+3])
		xor[i], xor[i+2] = xor[i+2], xor[i]
	}
	return xor, and
}

func NewWinIcon(img IconImage) *WinIcon {
	xor, and := Masks(img)
	return &WinIcon{
		W:      img.Width(),
		H:      img.Height(),
		Planes: 1,
		Bpp:    32,
		AndT:   and,
		XorT:   xor,
	}
}

// createIcon materialises img as a platform icon owned by the caller.
func createIcon(p Platform, img IconImage) (HICON, error) {
	if img.IsZero() {
		return 0, fmt.Errorf("%w: %w: empty image", ErrIconCreationFailed, ErrInvalidImage)
	}
	h, err := p.CreateIcon(NewWinIcon(img))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIconCreationFailed, err)
	}
	return h, nil
}

// loadDefaultIcon looks for the named icon resource of the executable and
// falls back on the stock application icon. Both are shared icons which
// must not be destroyed.
func loadDefaultIcon(p Platform, inst HINSTANCE) (HICON, error) {
	if h, err := p.LoadIcon(inst, DefaultIconResource); err == nil && h != 0 {
		return h, nil
	}
	h, err := p.LoadSystemIcon(IDI_APPLICATION)
	if err != nil {
		return 0, fmt.Errorf("failed to find icon: %w", err)
	}
	return h, nil
}
