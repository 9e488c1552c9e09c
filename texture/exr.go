package texture

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/mrjoshuak/go-openexr/exr"
)

// loadEXR reads an OpenEXR image into a single-mip RGBA32F texture.
// Scanline and tiled files are supported; half, float and uint channels
// are converted to float32.
func loadEXR(path string) (*Texture, error) {
	f, err := exr.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := f.Header(0)
	dw := h.DataWindow()
	width := int(dw.Width())
	height := int(dw.Height())
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%s: empty data window", path)
	}

	channels := h.Channels()
	fb, buffers := exr.AllocateChannels(channels, dw)

	if h.IsTiled() {
		tr, err := exr.NewTiledReader(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		tr.SetFrameBuffer(fb)
		if err := tr.ReadTiles(0, 0, h.NumXTiles(0)-1, h.NumYTiles(0)-1); err != nil {
			return nil, fmt.Errorf("reading tiles from %s: %w", path, err)
		}
	} else {
		sr, err := exr.NewScanlineReader(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		sr.SetFrameBuffer(fb)
		if err := sr.ReadPixels(int(dw.Min.Y), int(dw.Max.Y)); err != nil {
			return nil, fmt.Errorf("reading scanlines from %s: %w", path, err)
		}
	}

	// Locate the channels we can display. Luminance-only files map Y to RGB.
	chanData := func(name string) ([]byte, exr.PixelType, bool) {
		for i := 0; i < channels.Len(); i++ {
			ch := channels.At(i)
			if ch.Name == name {
				return buffers[name], ch.Type, true
			}
		}
		return nil, 0, false
	}

	numPixels := width * height
	pix := make([]float32, numPixels*4)
	hasAlpha := false

	fill := func(slot int, name string, fallback float32) {
		data, ptype, ok := chanData(name)
		if !ok {
			for i := 0; i < numPixels; i++ {
				pix[i*4+slot] = fallback
			}
			return
		}
		for i := 0; i < numPixels; i++ {
			pix[i*4+slot] = samplePixel(data, ptype, i)
		}
	}

	if _, _, hasR := chanData("R"); !hasR {
		if _, _, hasY := chanData("Y"); hasY {
			fill(0, "Y", 0)
			fill(1, "Y", 0)
			fill(2, "Y", 0)
		} else {
			return nil, fmt.Errorf("%s: no displayable channels (need R or Y)", path)
		}
	} else {
		fill(0, "R", 0)
		fill(1, "G", 0)
		fill(2, "B", 0)
	}
	if _, _, ok := chanData("A"); ok {
		fill(3, "A", 1)
		hasAlpha = true
	} else {
		fill(3, "", 1)
	}

	raw := make([]byte, len(pix)*4)
	for i, v := range pix {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(v))
	}

	// EXR data is linear; alpha, when present, is premultiplied by convention.
	flags := uint32(0)
	if hasAlpha {
		flags |= FlagHasAlpha | FlagPremulAlpha
	}

	tex := &Texture{
		Descriptor: Descriptor{
			Name:       path,
			FormatName: "OpenEXR (RGBA32F)",
			Target:     TargetPlain,
			Components: ComponentFloat,
			MipLevels: []MipLevel{{
				Width:  uint32(width),
				Height: uint32(height),
				Layers: [][]byte{raw},
			}},
			NumElements:      1,
			Flags:            flags,
			GLInternalFormat: glRGBA32F,
			GLFormat:         glRGBA,
			GLType:           glFloat,
		},
	}
	if err := tex.Validate(); err != nil {
		return nil, err
	}
	return tex, nil
}

// samplePixel reads pixel i from a raw channel buffer as float32.
func samplePixel(data []byte, ptype exr.PixelType, i int) float32 {
	switch ptype {
	case exr.PixelTypeHalf:
		return halfToFloat(binary.LittleEndian.Uint16(data[i*2:]))
	case exr.PixelTypeFloat:
		return math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	case exr.PixelTypeUint:
		return float32(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return 0
}

// halfToFloat expands an IEEE 754 half-precision value.
func halfToFloat(h uint16) float32 {
	sign := uint32(h>>15) << 31
	exp := uint32(h>>10) & 0x1f
	mant := uint32(h & 0x3ff)

	switch exp {
	case 0:
		if mant == 0 {
			return math.Float32frombits(sign)
		}
		// subnormal: renormalize
		for mant&0x400 == 0 {
			mant <<= 1
			exp--
		}
		exp++
		mant &= 0x3ff
	case 0x1f:
		return math.Float32frombits(sign | 0x7f800000 | mant<<13)
	}
	return math.Float32frombits(sign | (exp+112)<<23 | mant<<13)
}
