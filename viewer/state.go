// Package viewer owns the mutable view state of a session: zoom, pan,
// view mode, mip/slice selection and the color expression. All user
// actions are discrete commands on State; the layout and shader packages
// stay pure functions of it.
package viewer

import (
	"texview/layout"
	"texview/shader"
	"texview/texture"
)

// Zoom slider range; the scroll-wheel stepping stays inside it too.
const (
	MinZoom = 0.0125
	MaxZoom = 50.0
)

// Default pan offset so the texture doesn't sit flush in the corner.
const defaultPan = 10.0

// State aggregates everything the user can change. Fields are exported as
// the read/write surface for a GUI panel layer; anything with a side
// effect beyond plain storage has a command method.
type State struct {
	ZoomLevel float64
	PanX      float64
	PanY      float64

	Mode             layout.ViewMode
	SameSize         bool
	Spacing          int
	TilesX, TilesY   int
	CrossVariant     int
	MipLevel         int // -1: automatic GPU-selected LOD
	ArrayIndex       int
	LinearFilter     bool
	OverrideSRGB     int // -1 auto, 0 force off, 1 force on
	OverrideAlpha    int
	BackgroundColor  [4]float32
	PanelWidth       float64 // screen region reserved for the GUI panel
	PanelCollapsed   bool
	SimpleSwizzle    string
	FreeformSwizzle  string
	UseSimpleSwizzle bool

	dragging     bool
	dragRejected bool
	lastDragX    float64
	lastDragY    float64
	shaderDirty  bool
}

// NewState returns the state a fresh session starts with.
func NewState() *State {
	return &State{
		ZoomLevel:        1.0,
		PanX:             defaultPan,
		PanY:             defaultPan,
		Mode:             layout.Single,
		SameSize:         true,
		Spacing:          2,
		TilesX:           2,
		TilesY:           2,
		MipLevel:         -1,
		OverrideSRGB:     -1,
		OverrideAlpha:    -1,
		BackgroundColor:  [4]float32{0.45, 0.55, 0.60, 1.0},
		UseSimpleSwizzle: true,
	}
}

// LayoutParams projects the state onto the layout engine's inputs.
func (s *State) LayoutParams() layout.Params {
	return layout.Params{
		Mode:         s.Mode,
		SameSize:     s.SameSize,
		Spacing:      s.Spacing,
		TilesX:       s.TilesX,
		TilesY:       s.TilesY,
		CrossVariant: s.CrossVariant,
		ArrayIndex:   s.ArrayIndex,
	}
}

// ActiveColorExpression returns the color expression the shader must
// reflect: the compiled simple swizzle, or the committed free-form text.
func (s *State) ActiveColorExpression() string {
	if s.UseSimpleSwizzle {
		return shader.CompileSimple(s.SimpleSwizzle)
	}
	return s.FreeformSwizzle
}

// TakeShaderDirty reports whether the shader must be rebuilt and clears
// the flag. The renderer calls it once per frame.
func (s *State) TakeShaderDirty() bool {
	d := s.shaderDirty
	s.shaderDirty = false
	return d
}

// SetViewMode switches the arrangement. Leaving Single zooms out so more
// of the multi-quad layout fits on screen.
func (s *State) SetViewMode(m layout.ViewMode) {
	if s.Mode == layout.Single && m != layout.Single {
		s.SetZoom(s.ZoomLevel * 0.5)
	}
	s.Mode = m
}

// SetZoom clamps and stores the zoom level.
func (s *State) SetZoom(zoom float64) {
	s.ZoomLevel = min(max(zoom, MinZoom), MaxZoom)
}

// StepZoom advances the zoom one scroll-wheel notch.
func (s *State) StepZoom(increase bool) {
	s.SetZoom(StepZoom(s.ZoomLevel, increase))
}

// ResetView restores the default zoom and pan.
func (s *State) ResetView() {
	s.ZoomLevel = 1.0
	s.PanX = defaultPan
	s.PanY = defaultPan
}

// FitToWindow zooms so the texture (cross-expanded for cubes) exactly fits
// the framebuffer area left of the panel, centering the slack axis.
func (s *State) FitToWindow(displayW, displayH float64, desc *texture.Descriptor) {
	w, h := desc.GetSize()
	panelW := s.PanelWidth
	if s.PanelCollapsed {
		panelW = 0
	}
	s.ZoomLevel, s.PanX, s.PanY = FitZoom(displayW, displayH, panelW, w, h, desc.IsCubemap())
}

// SetMipLevel selects a fixed mip level, -1 for automatic.
func (s *State) SetMipLevel(level int) {
	if level < -1 {
		level = -1
	}
	s.MipLevel = level
}

// SetArrayIndex selects the array slice, clamped to the texture.
func (s *State) SetArrayIndex(index int, desc *texture.Descriptor) {
	s.ArrayIndex = min(max(index, 0), desc.GetNumElements()-1)
}

// SetSpacing sets the gap between layout quads, in texture pixels.
func (s *State) SetSpacing(spacing int) {
	s.Spacing = max(spacing, 0)
}

// SetTiles sets the repeat counts of the tiled view mode.
func (s *State) SetTiles(x, y int) {
	s.TilesX = max(x, 1)
	s.TilesY = max(y, 1)
}

// SetCrossVariant cycles the cubemap cross's equatorial faces.
func (s *State) SetCrossVariant(v int) {
	s.CrossVariant = ((v % 4) + 4) % 4
}

// SetSimpleSwizzle updates the four-character swizzle; simple-form edits
// apply immediately.
func (s *State) SetSimpleSwizzle(swizzle string) {
	if len(swizzle) > 4 {
		swizzle = swizzle[:4]
	}
	s.SimpleSwizzle = swizzle
	if s.UseSimpleSwizzle {
		s.shaderDirty = true
	}
}

// SetFreeformSwizzle stores free-form expression text. It takes effect
// only on CommitSwizzle, never per keystroke.
func (s *State) SetFreeformSwizzle(text string) {
	s.FreeformSwizzle = text
}

// CommitSwizzle applies the current free-form expression.
func (s *State) CommitSwizzle() {
	s.shaderDirty = true
}

// SetUseSimpleSwizzle switches between the simple and free-form
// expression. Switching to free-form with no simple swizzle ever set seeds
// the default first so the editor isn't empty. The free-form text itself
// only takes effect on CommitSwizzle, so entering free-form leaves the
// current program alone; returning to the simple form applies immediately.
func (s *State) SetUseSimpleSwizzle(useSimple bool) {
	s.UseSimpleSwizzle = useSimple
	if !useSimple {
		if s.SimpleSwizzle == "" {
			s.SimpleSwizzle = "rgba"
		}
		if s.FreeformSwizzle == "" {
			s.FreeformSwizzle = shader.CompileSimple(s.SimpleSwizzle)
		}
		return
	}
	s.shaderDirty = true
}

// ApplyTextureDefaults resets the per-texture state after a load: swizzle
// seed, spacing, slice and mip selection.
func (s *State) ApplyTextureDefaults(desc *texture.Descriptor) {
	if desc.DefaultSwizzle != "" {
		s.SimpleSwizzle = desc.DefaultSwizzle
		if len(s.SimpleSwizzle) > 4 {
			s.SimpleSwizzle = s.SimpleSwizzle[:4]
		}
	} else {
		s.SimpleSwizzle = shader.DefaultSimple(desc.HasAlpha())
	}
	s.UseSimpleSwizzle = true
	s.FreeformSwizzle = ""
	s.shaderDirty = true

	if desc.IsCubemap() {
		s.Spacing = 0
	} else {
		s.Spacing = 2
	}
	s.ArrayIndex = 0
	// keep automatic mip selection if it was active, otherwise start at 0
	if s.MipLevel != -1 {
		s.MipLevel = 0
	}
}

// HandleDrag accumulates pointer movement into the pan offset while the
// primary button is held. A drag that begins over the panel region is
// ignored for the whole hold, even after the cursor leaves the panel; the
// panel captures it instead.
func (s *State) HandleDrag(x, y float64, buttonDown bool) {
	if !buttonDown {
		s.dragging = false
		s.dragRejected = false
		return
	}
	if s.dragRejected {
		return
	}
	if !s.dragging {
		if !s.PanelCollapsed && x < s.PanelWidth {
			s.dragRejected = true
			return
		}
		s.dragging = true
		s.lastDragX = x
		s.lastDragY = y
		return
	}
	s.PanX += x - s.lastDragX
	s.PanY += y - s.lastDragY
	s.lastDragX = x
	s.lastDragY = y
}

// Dragging reports whether a pan drag is in progress.
func (s *State) Dragging() bool { return s.dragging }
