package texture

import (
	"fmt"
	"strconv"
)

// Target classifies the dimensionality of a texture.
type Target int

const (
	TargetPlain Target = iota
	TargetArray
	TargetCube
	TargetCubeArray
)

func (t Target) String() string {
	switch t {
	case TargetPlain:
		return "2D"
	case TargetArray:
		return "2D Array"
	case TargetCube:
		return "Cubemap"
	case TargetCubeArray:
		return "Cubemap Array"
	}
	return "unknown"
}

// IsCube reports whether the target has six faces per element.
func (t Target) IsCube() bool {
	return t == TargetCube || t == TargetCubeArray
}

// IsArray reports whether the target carries multiple array elements.
func (t Target) IsArray() bool {
	return t == TargetArray || t == TargetCubeArray
}

// ComponentKind classifies how sampled components must be interpreted.
type ComponentKind int

const (
	ComponentFloat ComponentKind = iota // normalized or floating point, usable directly
	ComponentUnsignedInt
	ComponentSignedInt
)

func (k ComponentKind) String() string {
	switch k {
	case ComponentFloat:
		return "float"
	case ComponentUnsignedInt:
		return "uint"
	case ComponentSignedInt:
		return "int"
	}
	return "unknown"
}

// Texture flags.
const (
	FlagHasAlpha uint32 = 1 << iota
	FlagPremulAlpha
	FlagSRGB
)

// MipLevel holds the pixel data of one mip level. Layers has one entry per
// cube face and/or array element, in layer-major face-minor order.
type MipLevel struct {
	Width  uint32
	Height uint32
	Layers [][]byte
}

// Descriptor describes a loaded texture: its shape, component
// interpretation and pixel data. It is read-only to the viewer core.
type Descriptor struct {
	Name       string
	FormatName string

	Target     Target
	Components ComponentKind
	// NormDivisor normalizes integer components for display,
	// e.g. 255 for 8-bit channels. Meaningful iff Components != ComponentFloat.
	NormDivisor float64

	MipLevels   []MipLevel
	NumElements int
	Flags       uint32

	// DefaultSwizzle, when non-empty, seeds the simple swizzle on load.
	DefaultSwizzle string

	// GL enums picked by the loader (internal format, pixel format, pixel type).
	GLInternalFormat int32
	GLFormat         uint32
	GLType           uint32
}

// GetSize returns the base (mip 0) dimensions.
func (d *Descriptor) GetSize() (w, h float32) {
	if len(d.MipLevels) > 0 {
		return float32(d.MipLevels[0].Width), float32(d.MipLevels[0].Height)
	}
	return 0, 0
}

// GetMipSize returns the dimensions of the given mip level.
func (d *Descriptor) GetMipSize(level int) (w, h float32) {
	if level < 0 || level >= len(d.MipLevels) {
		return 0, 0
	}
	return float32(d.MipLevels[level].Width), float32(d.MipLevels[level].Height)
}

func (d *Descriptor) GetNumMips() int { return len(d.MipLevels) }

func (d *Descriptor) GetNumElements() int {
	if d.NumElements < 1 {
		return 1
	}
	return d.NumElements
}

// GetNumCubemapFaces returns 6 for cube targets, 0 otherwise.
func (d *Descriptor) GetNumCubemapFaces() int {
	if d.Target.IsCube() {
		return 6
	}
	return 0
}

func (d *Descriptor) IsCubemap() bool { return d.Target.IsCube() }
func (d *Descriptor) IsArray() bool   { return d.Target.IsArray() }
func (d *Descriptor) HasAlpha() bool  { return d.Flags&FlagHasAlpha != 0 }
func (d *Descriptor) IsSRGB() bool    { return d.Flags&FlagSRGB != 0 }

// IntTexInfo returns the GLSL normalization divisor and signedness for
// integer-format textures. ok is false for float-format textures.
func (d *Descriptor) IntTexInfo() (divisor string, unsigned bool, ok bool) {
	switch d.Components {
	case ComponentUnsignedInt:
		return formatDivisor(d.NormDivisor), true, true
	case ComponentSignedInt:
		return formatDivisor(d.NormDivisor), false, true
	}
	return "", false, false
}

// formatDivisor renders a divisor as a GLSL float literal.
func formatDivisor(v float64) string {
	if v <= 0 {
		v = 255
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	for _, c := range s {
		if c == '.' {
			return s
		}
	}
	return s + ".0"
}

// Validate checks the invariants the viewer relies on: at least one mip,
// non-increasing mip sizes, and element count 1 for non-array targets.
func (d *Descriptor) Validate() error {
	if len(d.MipLevels) == 0 {
		return fmt.Errorf("texture %q has no mip levels", d.Name)
	}
	prevW, prevH := d.MipLevels[0].Width, d.MipLevels[0].Height
	if prevW == 0 || prevH == 0 {
		return fmt.Errorf("texture %q has a zero-sized base level", d.Name)
	}
	for i, m := range d.MipLevels[1:] {
		if m.Width > prevW || m.Height > prevH {
			return fmt.Errorf("texture %q: mip %d (%dx%d) larger than predecessor (%dx%d)",
				d.Name, i+1, m.Width, m.Height, prevW, prevH)
		}
		prevW, prevH = m.Width, m.Height
	}
	if !d.Target.IsArray() && d.GetNumElements() != 1 {
		return fmt.Errorf("texture %q: %s target with %d array elements",
			d.Name, d.Target, d.GetNumElements())
	}
	if d.Components != ComponentFloat && d.NormDivisor <= 0 {
		return fmt.Errorf("texture %q: integer format without normalization divisor", d.Name)
	}
	return nil
}

// NumMipLevels returns the length of a full mip chain for the given base size.
func NumMipLevels(w, h int) int {
	n := 1
	for w > 1 || h > 1 {
		w = max(w/2, 1)
		h = max(h/2, 1)
		n++
	}
	return n
}
