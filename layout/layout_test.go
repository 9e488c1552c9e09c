package layout

import (
	"testing"

	"texview/texture"
)

// testDesc builds a descriptor with a full mip chain down from the base
// size. Layout only looks at shapes, so the levels carry no pixel data.
func testDesc(target texture.Target, w, h uint32) *texture.Descriptor {
	d := &texture.Descriptor{
		Target:      target,
		Components:  texture.ComponentFloat,
		NumElements: 1,
	}
	for {
		d.MipLevels = append(d.MipLevels, texture.MipLevel{Width: w, Height: h})
		if w == 1 && h == 1 {
			return d
		}
		w = max(w/2, 1)
		h = max(h/2, 1)
	}
}

// truncated keeps only the first n mip levels.
func truncated(d *texture.Descriptor, n int) *texture.Descriptor {
	d.MipLevels = d.MipLevels[:n]
	return d
}

func TestDrawListSingle(t *testing.T) {
	desc := testDesc(texture.TargetPlain, 64, 32)
	list := ComputeDrawList(desc, Params{Mode: Single, ArrayIndex: 3})
	if len(list) != 1 {
		t.Fatalf("got %d instructions, want 1", len(list))
	}
	inst := list[0]
	if inst.MipLevel != -1 || inst.Face != -1 || inst.ArrayIndex != 3 {
		t.Errorf("selection fields = (%d,%d,%d), want (-1,3,-1)",
			inst.MipLevel, inst.ArrayIndex, inst.Face)
	}
	if inst.Size != (Vec2{64, 32}) || inst.TexCoordMax != (Vec2{1, 1}) {
		t.Errorf("size %v texcoord %v, want {64 32} {1 1}", inst.Size, inst.TexCoordMax)
	}
}

func TestDrawListTiled(t *testing.T) {
	desc := testDesc(texture.TargetPlain, 64, 64)
	list := ComputeDrawList(desc, Params{Mode: Tiled, TilesX: 3, TilesY: 2})
	if len(list) != 1 {
		t.Fatalf("got %d instructions, want 1", len(list))
	}
	inst := list[0]
	if inst.Size != (Vec2{192, 128}) {
		t.Errorf("size = %v, want {192 128}", inst.Size)
	}
	if inst.TexCoordMax != (Vec2{3, 2}) {
		t.Errorf("texcoord max = %v, want {3 2}", inst.TexCoordMax)
	}
}

func TestDrawListMipsRowAndColumn(t *testing.T) {
	desc := truncated(testDesc(texture.TargetPlain, 64, 64), 4)

	row := ComputeDrawList(desc, Params{Mode: MipsRow, SameSize: true, Spacing: 2})
	if len(row) != 4 {
		t.Fatalf("row: got %d instructions, want 4", len(row))
	}
	for i, inst := range row {
		if inst.MipLevel != i {
			t.Errorf("row[%d].MipLevel = %d, want %d", i, inst.MipLevel, i)
		}
		if want := (Vec2{float32(i) * 66, 0}); inst.Pos != want {
			t.Errorf("row[%d].Pos = %v, want %v", i, inst.Pos, want)
		}
		if inst.Size != (Vec2{64, 64}) {
			t.Errorf("row[%d].Size = %v, want base size", i, inst.Size)
		}
	}

	col := ComputeDrawList(desc, Params{Mode: MipsColumn, SameSize: true, Spacing: 2})
	for i, inst := range col {
		if want := (Vec2{0, float32(i) * 66}); inst.Pos != want {
			t.Errorf("col[%d].Pos = %v, want %v", i, inst.Pos, want)
		}
	}
}

func TestDrawListMipsRowTrueSize(t *testing.T) {
	desc := truncated(testDesc(texture.TargetPlain, 64, 64), 4)
	list := ComputeDrawList(desc, Params{Mode: MipsRow, SameSize: false, Spacing: 2})
	wantPos := []Vec2{{0, 0}, {66, 0}, {100, 0}, {118, 0}}
	wantW := []float32{64, 32, 16, 8}
	for i, inst := range list {
		if inst.Pos != wantPos[i] {
			t.Errorf("list[%d].Pos = %v, want %v", i, inst.Pos, wantPos[i])
		}
		if inst.Size.X != wantW[i] {
			t.Errorf("list[%d].Size.X = %v, want %v", i, inst.Size.X, wantW[i])
		}
	}
}

// TestDrawListCompactSerpentine: same-size compact walks a serpentine so
// successive mips stay adjacent at row turns.
func TestDrawListCompactSerpentine(t *testing.T) {
	desc := truncated(testDesc(texture.TargetPlain, 64, 64), 4)
	list := ComputeDrawList(desc, Params{Mode: MipsCompact, SameSize: true, Spacing: 2})
	want := []Vec2{{0, 0}, {66, 0}, {66, 66}, {0, 66}}
	if len(list) != len(want) {
		t.Fatalf("got %d instructions, want %d", len(list), len(want))
	}
	for i, inst := range list {
		if inst.Pos != want[i] {
			t.Errorf("list[%d].Pos = %v, want %v", i, inst.Pos, want[i])
		}
	}
}

// TestDrawListCompactTrueSize checks the alternating advance direction and
// the spacing clamp against the shrinking mip sizes.
func TestDrawListCompactTrueSize(t *testing.T) {
	desc := truncated(testDesc(texture.TargetPlain, 64, 64), 4)
	list := ComputeDrawList(desc, Params{Mode: MipsCompact, SameSize: false, Spacing: 10})
	// square aspect advances right first; spacing 10 clamps to half the
	// mip dimension once the mips get small (16 -> 8px gap)
	want := []Vec2{{0, 0}, {74, 0}, {74, 42}, {98, 42}}
	for i, inst := range list {
		if inst.Pos != want[i] {
			t.Errorf("list[%d].Pos = %v, want %v", i, inst.Pos, want[i])
		}
	}
}

func TestDrawListCompactTrueSizeWideGoesDownFirst(t *testing.T) {
	desc := truncated(testDesc(texture.TargetPlain, 256, 64), 2)
	list := ComputeDrawList(desc, Params{Mode: MipsCompact, SameSize: false, Spacing: 2})
	if list[1].Pos.X != 0 {
		t.Errorf("wide texture second mip at X=%v, want 0 (below the first)", list[1].Pos.X)
	}
	if list[1].Pos.Y != 66 {
		t.Errorf("wide texture second mip at Y=%v, want 66", list[1].Pos.Y)
	}
}

func TestDrawListCubeCross(t *testing.T) {
	desc := testDesc(texture.TargetCube, 64, 64)

	// cube textures lay out as a cross whatever mode is set
	list := ComputeDrawList(desc, Params{Mode: MipsRow, Spacing: 2})
	if len(list) != 6 {
		t.Fatalf("got %d instructions, want 6", len(list))
	}

	wantFace := []int{FaceYPos, FaceXNeg, FaceZPos, FaceXPos, FaceZNeg, FaceYNeg}
	wantPos := []Vec2{{66, 0}, {0, 66}, {66, 66}, {132, 66}, {198, 66}, {66, 132}}
	for i, inst := range list {
		if inst.Face != wantFace[i] {
			t.Errorf("list[%d].Face = %d, want %d", i, inst.Face, wantFace[i])
		}
		if inst.Pos != wantPos[i] {
			t.Errorf("list[%d].Pos = %v, want %v", i, inst.Pos, wantPos[i])
		}
		if inst.MipLevel != -1 {
			t.Errorf("list[%d].MipLevel = %d, want -1", i, inst.MipLevel)
		}
	}
}

func TestDrawListCubeCrossVariant(t *testing.T) {
	desc := testDesc(texture.TargetCube, 64, 64)
	list := ComputeDrawList(desc, Params{Mode: Single, CrossVariant: 1})
	wantMiddle := []int{FaceZPos, FaceXPos, FaceZNeg, FaceXNeg}
	for i, want := range wantMiddle {
		if got := list[1+i].Face; got != want {
			t.Errorf("middle[%d].Face = %d, want %d", i, got, want)
		}
	}
	if list[0].Face != FaceYPos || list[5].Face != FaceYNeg {
		t.Errorf("poles = %d,%d, want +Y,-Y", list[0].Face, list[5].Face)
	}
}
