package viewer

import (
	"testing"

	"texview/layout"
	"texview/texture"
)

func plainDesc(w, h uint32, mips int, flags uint32) *texture.Descriptor {
	d := &texture.Descriptor{
		Target:      texture.TargetPlain,
		Components:  texture.ComponentFloat,
		NumElements: 1,
		Flags:       flags,
	}
	for i := 0; i < mips; i++ {
		d.MipLevels = append(d.MipLevels, texture.MipLevel{Width: w, Height: h})
		w = max(w/2, 1)
		h = max(h/2, 1)
	}
	return d
}

func TestNewStateDefaults(t *testing.T) {
	s := NewState()
	if s.ZoomLevel != 1.0 || s.PanX != 10 || s.PanY != 10 {
		t.Errorf("view transform = (%v, %v, %v), want (1, 10, 10)", s.ZoomLevel, s.PanX, s.PanY)
	}
	if s.Mode != layout.Single || !s.SameSize || s.Spacing != 2 {
		t.Errorf("mode defaults = (%v, %v, %d)", s.Mode, s.SameSize, s.Spacing)
	}
	if s.MipLevel != -1 {
		t.Errorf("MipLevel = %d, want -1 (automatic)", s.MipLevel)
	}
	if s.OverrideSRGB != -1 || s.OverrideAlpha != -1 {
		t.Errorf("overrides = (%d, %d), want auto", s.OverrideSRGB, s.OverrideAlpha)
	}
}

func TestSetZoomClamps(t *testing.T) {
	s := NewState()
	s.SetZoom(1000)
	if s.ZoomLevel != MaxZoom {
		t.Errorf("ZoomLevel = %v, want %v", s.ZoomLevel, MaxZoom)
	}
	s.SetZoom(0)
	if s.ZoomLevel != MinZoom {
		t.Errorf("ZoomLevel = %v, want %v", s.ZoomLevel, MinZoom)
	}
}

func TestSetViewModeHalvesZoomLeavingSingle(t *testing.T) {
	s := NewState()
	s.SetZoom(2.0)
	s.SetViewMode(layout.MipsRow)
	if s.ZoomLevel != 1.0 {
		t.Errorf("ZoomLevel after leaving Single = %v, want 1.0", s.ZoomLevel)
	}
	s.SetViewMode(layout.MipsColumn)
	if s.ZoomLevel != 1.0 {
		t.Errorf("ZoomLevel after mode change within mips = %v, want unchanged", s.ZoomLevel)
	}
	s.SetViewMode(layout.Single)
	if s.ZoomLevel != 1.0 {
		t.Errorf("ZoomLevel after returning to Single = %v, want unchanged", s.ZoomLevel)
	}
}

func TestSetArrayIndexClamps(t *testing.T) {
	desc := &texture.Descriptor{
		Target:      texture.TargetArray,
		NumElements: 4,
		MipLevels:   []texture.MipLevel{{Width: 8, Height: 8}},
	}
	s := NewState()
	s.SetArrayIndex(7, desc)
	if s.ArrayIndex != 3 {
		t.Errorf("ArrayIndex = %d, want 3", s.ArrayIndex)
	}
	s.SetArrayIndex(-2, desc)
	if s.ArrayIndex != 0 {
		t.Errorf("ArrayIndex = %d, want 0", s.ArrayIndex)
	}
}

func TestSetSpacingAndTilesClamp(t *testing.T) {
	s := NewState()
	s.SetSpacing(-3)
	if s.Spacing != 0 {
		t.Errorf("Spacing = %d, want 0", s.Spacing)
	}
	s.SetTiles(0, 5)
	if s.TilesX != 1 || s.TilesY != 5 {
		t.Errorf("tiles = (%d, %d), want (1, 5)", s.TilesX, s.TilesY)
	}
}

func TestSetCrossVariantWraps(t *testing.T) {
	s := NewState()
	s.SetCrossVariant(5)
	if s.CrossVariant != 1 {
		t.Errorf("CrossVariant = %d, want 1", s.CrossVariant)
	}
	s.SetCrossVariant(-1)
	if s.CrossVariant != 3 {
		t.Errorf("CrossVariant = %d, want 3", s.CrossVariant)
	}
}

func TestSwizzleDirtySemantics(t *testing.T) {
	s := NewState()
	s.TakeShaderDirty()

	// simple-form edits rebuild immediately
	s.SetSimpleSwizzle("bgra")
	if !s.TakeShaderDirty() {
		t.Error("simple swizzle edit did not mark the shader dirty")
	}
	if s.TakeShaderDirty() {
		t.Error("dirty flag not cleared by the previous take")
	}

	// free-form edits apply only on commit
	s.SetUseSimpleSwizzle(false)
	s.TakeShaderDirty()
	s.SetFreeformSwizzle("c = vec4(c.rrr, 1.0);\n")
	if s.TakeShaderDirty() {
		t.Error("free-form keystroke marked the shader dirty before commit")
	}
	s.CommitSwizzle()
	if !s.TakeShaderDirty() {
		t.Error("commit did not mark the shader dirty")
	}
	if got := s.ActiveColorExpression(); got != "c = vec4(c.rrr, 1.0);\n" {
		t.Errorf("ActiveColorExpression() = %q", got)
	}
}

func TestSwitchingToFreeformDoesNotApply(t *testing.T) {
	s := NewState()
	s.TakeShaderDirty()

	// uncommitted editor text must not reach the shader on the mode toggle
	s.SetFreeformSwizzle("c = vec4(c.bgr, 1.0);\n")
	s.SetUseSimpleSwizzle(false)
	if s.TakeShaderDirty() {
		t.Error("entering free-form marked the shader dirty without a commit")
	}
	if s.FreeformSwizzle != "c = vec4(c.bgr, 1.0);\n" {
		t.Errorf("FreeformSwizzle = %q, editor text lost", s.FreeformSwizzle)
	}

	// returning to the simple form applies immediately
	s.SetUseSimpleSwizzle(true)
	if !s.TakeShaderDirty() {
		t.Error("returning to the simple form did not mark the shader dirty")
	}
}

func TestSetUseSimpleSwizzleSeedsEmpty(t *testing.T) {
	s := NewState()
	s.SetUseSimpleSwizzle(false)
	if s.SimpleSwizzle != "rgba" {
		t.Errorf("SimpleSwizzle = %q, want seeded rgba", s.SimpleSwizzle)
	}
	if s.FreeformSwizzle == "" {
		t.Error("FreeformSwizzle not seeded from the simple form")
	}
}

func TestApplyTextureDefaults(t *testing.T) {
	t.Run("alpha texture", func(t *testing.T) {
		s := NewState()
		s.ApplyTextureDefaults(plainDesc(64, 64, 4, texture.FlagHasAlpha))
		if s.SimpleSwizzle != "rgba" {
			t.Errorf("SimpleSwizzle = %q, want rgba", s.SimpleSwizzle)
		}
		if s.Spacing != 2 {
			t.Errorf("Spacing = %d, want 2", s.Spacing)
		}
	})

	t.Run("opaque texture forces alpha to one", func(t *testing.T) {
		s := NewState()
		s.ApplyTextureDefaults(plainDesc(64, 64, 4, 0))
		if s.SimpleSwizzle != "rgb1" {
			t.Errorf("SimpleSwizzle = %q, want rgb1", s.SimpleSwizzle)
		}
	})

	t.Run("descriptor seed wins", func(t *testing.T) {
		desc := plainDesc(64, 64, 1, 0)
		desc.DefaultSwizzle = "rrr1"
		s := NewState()
		s.ApplyTextureDefaults(desc)
		if s.SimpleSwizzle != "rrr1" {
			t.Errorf("SimpleSwizzle = %q, want rrr1", s.SimpleSwizzle)
		}
	})

	t.Run("cube drops the spacing", func(t *testing.T) {
		desc := plainDesc(64, 64, 1, 0)
		desc.Target = texture.TargetCube
		s := NewState()
		s.ApplyTextureDefaults(desc)
		if s.Spacing != 0 {
			t.Errorf("Spacing = %d, want 0 for cubes", s.Spacing)
		}
	})

	t.Run("mip selection", func(t *testing.T) {
		s := NewState()
		s.ApplyTextureDefaults(plainDesc(64, 64, 4, 0))
		if s.MipLevel != -1 {
			t.Errorf("automatic mip selection lost, MipLevel = %d", s.MipLevel)
		}
		s.SetMipLevel(3)
		s.ApplyTextureDefaults(plainDesc(64, 64, 4, 0))
		if s.MipLevel != 0 {
			t.Errorf("fixed mip selection should reset to 0, got %d", s.MipLevel)
		}
	})
}

func TestHandleDrag(t *testing.T) {
	s := NewState()
	s.PanelWidth = 100

	// a drag starting over the panel never pans, even once the cursor
	// leaves the panel region with the button still held
	s.HandleDrag(50, 50, true)
	s.HandleDrag(500, 500, true)
	s.HandleDrag(600, 600, true)
	if s.PanX != 10 || s.PanY != 10 {
		t.Errorf("panel drag moved the pan to (%v, %v)", s.PanX, s.PanY)
	}
	if s.Dragging() {
		t.Error("Dragging() = true for a hold the panel captured")
	}
	s.HandleDrag(600, 600, false)

	// a drag in the view area accumulates deltas
	s.HandleDrag(200, 200, true)
	s.HandleDrag(230, 180, true)
	if s.PanX != 40 || s.PanY != -10 {
		t.Errorf("pan = (%v, %v), want (40, -10)", s.PanX, s.PanY)
	}
	if !s.Dragging() {
		t.Error("Dragging() = false during a drag")
	}
	s.HandleDrag(230, 180, false)
	if s.Dragging() {
		t.Error("Dragging() = true after release")
	}

	// collapsing the panel frees its region for dragging
	s.PanelCollapsed = true
	s.HandleDrag(50, 50, true)
	s.HandleDrag(60, 50, true)
	if s.PanX != 50 {
		t.Errorf("pan X = %v, want 50", s.PanX)
	}
}

// TestFreshSessionFrame walks the state a fresh session produces for its
// first frame after loading an RGBA texture.
func TestFreshSessionFrame(t *testing.T) {
	desc := plainDesc(256, 128, 4, texture.FlagHasAlpha|texture.FlagSRGB)
	s := NewState()
	s.ApplyTextureDefaults(desc)

	if !s.TakeShaderDirty() {
		t.Fatal("a fresh load must trigger a shader build")
	}
	if got := s.ActiveColorExpression(); got != "c = vec4(c.r, c.g, c.b, c.a);\n" {
		t.Errorf("ActiveColorExpression() = %q", got)
	}

	list := layout.ComputeDrawList(desc, s.LayoutParams())
	if len(list) != 1 {
		t.Fatalf("got %d instructions, want 1", len(list))
	}
	inst := list[0]
	if inst.Pos != (layout.Vec2{}) || inst.Size != (layout.Vec2{X: 256, Y: 128}) {
		t.Errorf("quad = %v at %v, want base size at origin", inst.Size, inst.Pos)
	}
	if s.ZoomLevel != 1.0 || s.PanX != 10 || s.PanY != 10 {
		t.Errorf("view transform = (%v, %v, %v), want (1, 10, 10)", s.ZoomLevel, s.PanX, s.PanY)
	}
}
