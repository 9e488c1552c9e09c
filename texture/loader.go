package texture

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	// Decoders for the formats the viewer accepts via image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// isOpaque reports whether every pixel is fully opaque. All stdlib image
// types provide Opaque; anything else is treated as opaque.
func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return true
}

// Load reads a texture file into a Texture. The GL object is not created
// here; call Upload once a context is current.
func Load(path string) (*Texture, error) {
	if strings.EqualFold(filepath.Ext(path), ".exr") {
		return loadEXR(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return LoadImage(f, path)
}

// LoadImage decodes any registered image format from r into an 8-bit RGBA
// texture with a generated mip chain.
func LoadImage(r io.Reader, name string) (*Texture, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	rgba := toRGBA(img)
	hasAlpha := !isOpaque(img)

	// 8-bit images are assumed to hold sRGB data, like every common
	// authoring tool produces.
	flags := FlagSRGB
	internalFormat := int32(glSRGB8Alpha8)
	if hasAlpha {
		flags |= FlagHasAlpha
	}

	tex := &Texture{
		Descriptor: Descriptor{
			Name:             name,
			FormatName:       strings.ToUpper(format) + " (RGBA8)",
			Target:           TargetPlain,
			Components:       ComponentFloat,
			MipLevels:        BuildMipChain(rgba),
			NumElements:      1,
			Flags:            flags,
			GLInternalFormat: internalFormat,
			GLFormat:         glRGBA,
			GLType:           glUnsignedByte,
		},
	}
	if err := tex.Validate(); err != nil {
		return nil, err
	}
	return tex, nil
}

// LoadCubemap builds a cubemap texture from six face files in the order
// +X, -X, +Y, -Y, +Z, -Z. All faces must share the same square size.
func LoadCubemap(paths [6]string) (*Texture, error) {
	var faces [6]*image.RGBA
	hasAlpha := false
	for i, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("opening cube face %d (%s): %w", i, p, err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decoding cube face %d (%s): %w", i, p, err)
		}
		faces[i] = toRGBA(img)
		if !isOpaque(img) {
			hasAlpha = true
		}
		if faces[i].Bounds() != faces[0].Bounds() {
			return nil, fmt.Errorf("cube face %d (%s) size %v differs from face 0 %v",
				i, p, faces[i].Bounds().Size(), faces[0].Bounds().Size())
		}
	}
	w := faces[0].Bounds().Dx()
	h := faces[0].Bounds().Dy()
	if w != h {
		return nil, fmt.Errorf("cube faces must be square, got %dx%d", w, h)
	}

	// Build a chain per face, then regroup per mip level.
	chains := make([][]MipLevel, 6)
	for i, face := range faces {
		chains[i] = BuildMipChain(face)
	}
	levels := make([]MipLevel, len(chains[0]))
	for m := range levels {
		levels[m] = MipLevel{
			Width:  chains[0][m].Width,
			Height: chains[0][m].Height,
			Layers: make([][]byte, 6),
		}
		for i := 0; i < 6; i++ {
			levels[m].Layers[i] = chains[i][m].Layers[0]
		}
	}

	flags := FlagSRGB
	if hasAlpha {
		flags |= FlagHasAlpha
	}
	tex := &Texture{
		Descriptor: Descriptor{
			Name:             paths[0],
			FormatName:       "Cubemap (RGBA8)",
			Target:           TargetCube,
			Components:       ComponentFloat,
			MipLevels:        levels,
			NumElements:      1,
			Flags:            flags,
			GLInternalFormat: glSRGB8Alpha8,
			GLFormat:         glRGBA,
			GLType:           glUnsignedByte,
		},
	}
	if err := tex.Validate(); err != nil {
		return nil, err
	}
	return tex, nil
}
