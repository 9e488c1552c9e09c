package texture

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// BuildMipChain generates a full mip chain for an 8-bit RGBA image by
// successive halving. Level 0 references the source pixels directly.
func BuildMipChain(img *image.RGBA) []MipLevel {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	levels := make([]MipLevel, 0, NumMipLevels(w, h))
	levels = append(levels, MipLevel{
		Width:  uint32(w),
		Height: uint32(h),
		Layers: [][]byte{img.Pix},
	})

	prev := img
	for w > 1 || h > 1 {
		w = max(w/2, 1)
		h = max(h/2, 1)
		next := image.NewRGBA(image.Rect(0, 0, w, h))
		// CatmullRom is the best of the x/image scalers for downsampling;
		// mips are built once per load so the cost doesn't matter.
		xdraw.CatmullRom.Scale(next, next.Bounds(), prev, prev.Bounds(), xdraw.Src, nil)
		levels = append(levels, MipLevel{
			Width:  uint32(w),
			Height: uint32(h),
			Layers: [][]byte{next.Pix},
		})
		prev = next
	}
	return levels
}

// toRGBA converts any decoded image to tightly packed 8-bit RGBA.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == rgba.Bounds().Dx()*4 {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)
	return rgba
}
