package texture

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GL enum aliases so the pure loader files stay free of gl imports.
const (
	glRGBA         = gl.RGBA
	glUnsignedByte = gl.UNSIGNED_BYTE
	glSRGB8Alpha8  = gl.SRGB8_ALPHA8
	glRGBA32F      = gl.RGBA32F
	glFloat        = gl.FLOAT
)

// glTarget maps the descriptor target to the GL texture target.
func (d *Descriptor) glTarget() uint32 {
	switch d.Target {
	case TargetArray:
		return gl.TEXTURE_2D_ARRAY
	case TargetCube:
		return gl.TEXTURE_CUBE_MAP
	case TargetCubeArray:
		return gl.TEXTURE_CUBE_MAP_ARRAY
	default:
		return gl.TEXTURE_2D
	}
}

// Upload creates the GL texture object and uploads every mip level and
// layer. Requires a current GL context.
func (t *Texture) Upload() error {
	if err := t.Validate(); err != nil {
		return err
	}

	target := t.Descriptor.glTarget()
	var handle uint32
	gl.GenTextures(1, &handle)
	gl.BindTexture(target, handle)

	for level, mip := range t.MipLevels {
		w := int32(mip.Width)
		h := int32(mip.Height)
		switch t.Target {
		case TargetPlain:
			gl.TexImage2D(gl.TEXTURE_2D, int32(level), t.GLInternalFormat,
				w, h, 0, t.GLFormat, t.GLType, gl.Ptr(&mip.Layers[0][0]))
		case TargetCube:
			for face := 0; face < 6; face++ {
				gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(face), int32(level),
					t.GLInternalFormat, w, h, 0, t.GLFormat, t.GLType,
					gl.Ptr(&mip.Layers[face][0]))
			}
		case TargetArray, TargetCubeArray:
			// 3D upload wants the layers contiguous.
			joined := make([]byte, 0, len(mip.Layers)*len(mip.Layers[0]))
			for _, l := range mip.Layers {
				joined = append(joined, l...)
			}
			gl.TexImage3D(target, int32(level), t.GLInternalFormat,
				w, h, int32(len(mip.Layers)), 0, t.GLFormat, t.GLType,
				gl.Ptr(&joined[0]))
		}
	}

	gl.TexParameteri(target, gl.TEXTURE_MAX_LEVEL, int32(len(t.MipLevels)-1))

	// Tiled view mode relies on repeat wrapping; cube sampling never
	// reaches the border thanks to seamless filtering.
	wrap := int32(gl.REPEAT)
	if t.Target.IsCube() {
		wrap = gl.CLAMP_TO_EDGE
	}
	gl.TexParameteri(target, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(target, gl.TEXTURE_WRAP_T, wrap)
	if t.Target.IsCube() {
		gl.TexParameteri(target, gl.TEXTURE_WRAP_R, wrap)
	}

	if glErr := gl.GetError(); glErr != gl.NO_ERROR {
		gl.DeleteTextures(1, &handle)
		return fmt.Errorf("uploading %q failed: GL error 0x%04x", t.Name, glErr)
	}

	t.GLHandle = handle
	t.GLTarget = target
	return nil
}

// SetFilter switches between nearest and linear filtering, using the
// mipmapped minification variants when the texture has more than one level.
func (t *Texture) SetFilter(linear bool) {
	if t.GLHandle == 0 {
		return
	}
	gl.BindTexture(t.GLTarget, t.GLHandle)
	filter := int32(gl.NEAREST)
	if linear {
		filter = gl.LINEAR
	}
	if t.GetNumMips() == 1 {
		gl.TexParameteri(t.GLTarget, gl.TEXTURE_MIN_FILTER, filter)
		gl.TexParameteri(t.GLTarget, gl.TEXTURE_MAG_FILTER, filter)
	} else {
		mipFilter := int32(gl.NEAREST_MIPMAP_NEAREST)
		if linear {
			mipFilter = gl.LINEAR_MIPMAP_LINEAR
		}
		gl.TexParameteri(t.GLTarget, gl.TEXTURE_MIN_FILTER, mipFilter)
		gl.TexParameteri(t.GLTarget, gl.TEXTURE_MAG_FILTER, filter)
	}
}

// PinMipLevel restricts sampling to a single mip level by setting base and
// max level to the same value. A negative level restores the full range.
func (t *Texture) PinMipLevel(level int) {
	if t.GLHandle == 0 || t.GetNumMips() == 1 {
		return
	}
	numMips := t.GetNumMips()
	if level >= numMips {
		level = numMips - 1
	}
	baseLevel, maxLevel := level, level
	if level < 0 {
		baseLevel = 0
		maxLevel = numMips - 1
	}
	gl.BindTexture(t.GLTarget, t.GLHandle)
	gl.TexParameteri(t.GLTarget, gl.TEXTURE_BASE_LEVEL, int32(baseLevel))
	gl.TexParameteri(t.GLTarget, gl.TEXTURE_MAX_LEVEL, int32(maxLevel))
}

// Release frees the GL texture object. Safe to call on a zero texture.
func (t *Texture) Release() {
	if t.GLHandle != 0 {
		gl.DeleteTextures(1, &t.GLHandle)
		t.GLHandle = 0
	}
}
