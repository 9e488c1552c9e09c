// Package layout computes the quads a frame draws: which mip, slice and
// cube face goes where on screen, for each view mode. Everything here is
// pure geometry; no GL.
package layout

import (
	"math"

	"texview/texture"
)

// ViewMode selects how the texture's mip levels are arranged on screen.
type ViewMode int

const (
	Single ViewMode = iota
	MipsCompact
	MipsRow
	MipsColumn
	Tiled
)

func (m ViewMode) String() string {
	switch m {
	case Single:
		return "Single"
	case MipsCompact:
		return "MipMaps Compact"
	case MipsRow:
		return "MipMaps in Row"
	case MipsColumn:
		return "MipMaps in Column"
	case Tiled:
		return "Tiled"
	}
	return "unknown"
}

// CompactAspectThreshold decides whether the true-size compact layout
// advances horizontally first (aspect at or below it) or vertically.
// The value is empirical; override before computing a draw list if a
// different bias works better for your content.
var CompactAspectThreshold float32 = 1.2

// Vec2 is a 2D point or extent in texture-space pixels.
type Vec2 struct {
	X, Y float32
}

// DrawInstruction places one textured quad. MipLevel -1 means "whatever
// mip selection is globally active" (single/tiled/cube quads); a specific
// level must be pinned before drawing. Face is -1 for non-cube quads.
type DrawInstruction struct {
	MipLevel    int
	ArrayIndex  int
	Face        int
	Pos         Vec2
	Size        Vec2
	TexCoordMax Vec2
}

// Params carries the view-state fields the layout depends on.
type Params struct {
	Mode         ViewMode
	SameSize     bool
	Spacing      int
	TilesX       int
	TilesY       int
	CrossVariant int
	ArrayIndex   int
}

// Cube face indices, matching the GL cube map face order.
const (
	FaceXPos = 0
	FaceXNeg = 1
	FaceYPos = 2
	FaceYNeg = 3
	FaceZPos = 4
	FaceZNeg = 5
)

// middleFaces is the default cyclic order of the cross's equatorial row.
var middleFaces = [4]int{FaceXNeg, FaceZPos, FaceXPos, FaceZNeg}

// ComputeDrawList returns the quads for one frame, in draw order. A cube
// texture always lays out as a cross, regardless of the configured mode.
func ComputeDrawList(desc *texture.Descriptor, p Params) []DrawInstruction {
	texW, texH := desc.GetSize()
	spacing := float32(p.Spacing)

	if desc.IsCubemap() {
		return cubeCross(texW, texH, spacing, p)
	}

	switch p.Mode {
	case Single:
		return []DrawInstruction{{
			MipLevel: -1, ArrayIndex: p.ArrayIndex, Face: -1,
			Size:        Vec2{texW, texH},
			TexCoordMax: Vec2{1, 1},
		}}
	case Tiled:
		tilesX := float32(p.TilesX)
		tilesY := float32(p.TilesY)
		return []DrawInstruction{{
			MipLevel: -1, ArrayIndex: p.ArrayIndex, Face: -1,
			Size:        Vec2{texW * tilesX, texH * tilesY},
			TexCoordMax: Vec2{tilesX, tilesY},
		}}
	}

	if p.SameSize {
		return mipsSameSize(desc, texW, texH, spacing, p)
	}
	return mipsTrueSize(desc, texW, texH, spacing, p)
}

// cubeCross arranges the six faces as a cross: +Y on top, the equatorial
// faces in the middle row (cycled by the cross variant), -Y at the bottom.
func cubeCross(texW, texH, spacing float32, p Params) []DrawInstruction {
	offset := texW + spacing // faces are square, texW == texH
	size := Vec2{texW, texH}
	list := make([]DrawInstruction, 0, 6)

	quad := func(face int, pos Vec2) DrawInstruction {
		return DrawInstruction{
			MipLevel: -1, ArrayIndex: p.ArrayIndex, Face: face,
			Pos: pos, Size: size, TexCoordMax: Vec2{1, 1},
		}
	}

	list = append(list, quad(FaceYPos, Vec2{offset, 0}))
	for i := 0; i < 4; i++ {
		face := middleFaces[(p.CrossVariant+i)%4]
		list = append(list, quad(face, Vec2{float32(i) * offset, offset}))
	}
	list = append(list, quad(FaceYNeg, Vec2{offset, 2 * offset}))
	return list
}

// mipsSameSize shows every mip at the base size.
func mipsSameSize(desc *texture.Descriptor, texW, texH, spacing float32, p Params) []DrawInstruction {
	numMips := desc.GetNumMips()
	list := make([]DrawInstruction, 0, numMips)

	if p.Mode == MipsCompact {
		// Aim for a near-square overall shape, rounding the column count
		// up because displays are wide.
		numHor := int(math.Ceil(math.Sqrt(float64(numMips) * float64(texH) / float64(texW))))
		var posX, posY float32
		hOffset := texW + spacing
		vOffset := texH + spacing
		for i := 0; i < numMips; i++ {
			list = append(list, DrawInstruction{
				MipLevel: i, ArrayIndex: p.ArrayIndex, Face: -1,
				Pos: Vec2{posX, posY}, Size: Vec2{texW, texH}, TexCoordMax: Vec2{1, 1},
			})
			if (i+1)%numHor == 0 {
				posY += vOffset
				// serpentine: flip horizontal direction every row so the
				// next mip sits right below the last one of this row
				hOffset = -hOffset
			} else {
				posX += hOffset
			}
		}
		return list
	}

	var hOffset, vOffset float32
	if p.Mode == MipsRow {
		hOffset = texW + spacing
	} else {
		vOffset = texH + spacing
	}
	var posX, posY float32
	for i := 0; i < numMips; i++ {
		list = append(list, DrawInstruction{
			MipLevel: i, ArrayIndex: p.ArrayIndex, Face: -1,
			Pos: Vec2{posX, posY}, Size: Vec2{texW, texH}, TexCoordMax: Vec2{1, 1},
		})
		posX += hOffset
		posY += vOffset
	}
	return list
}

// mipsTrueSize shows every mip at its own size.
func mipsTrueSize(desc *texture.Descriptor, texW, texH, spacing float32, p Params) []DrawInstruction {
	numMips := desc.GetNumMips()
	list := make([]DrawInstruction, 0, numMips)

	if p.Mode == MipsCompact {
		toRight := texW/texH <= CompactAspectThreshold // otherwise down first

		// Clamp the spacing to half the current mip's dimension so it isn't
		// absurdly big next to the smallest mips, but keep at least 2 pixels
		// unless the configured spacing is smaller than that.
		minSpace := min(float32(2), spacing)

		var posX, posY float32
		for i := 0; i < numMips; i++ {
			w, h := desc.GetMipSize(i)
			list = append(list, DrawInstruction{
				MipLevel: i, ArrayIndex: p.ArrayIndex, Face: -1,
				Pos: Vec2{posX, posY}, Size: Vec2{w, h}, TexCoordMax: Vec2{1, 1},
			})
			if (toRight && i&1 == 0) || (!toRight && i&1 == 1) {
				posX += max(minSpace, min(spacing, w*0.5)) + w
			} else {
				posY += max(minSpace, min(spacing, h*0.5)) + h
			}
		}
		return list
	}

	inRow := p.Mode == MipsRow
	var posX, posY float32
	for i := 0; i < numMips; i++ {
		w, h := desc.GetMipSize(i)
		list = append(list, DrawInstruction{
			MipLevel: i, ArrayIndex: p.ArrayIndex, Face: -1,
			Pos: Vec2{posX, posY}, Size: Vec2{w, h}, TexCoordMax: Vec2{1, 1},
		})
		if inRow {
			posX += spacing + w
		} else {
			posY += spacing + h
		}
	}
	return list
}
