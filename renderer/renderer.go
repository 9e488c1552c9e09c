// Package renderer drives the frame loop: it turns the view state into a
// draw list, pins mip ranges, and submits one textured quad per
// instruction with the currently synthesized program.
package renderer

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"

	"texview/graphics"
	"texview/layout"
	"texview/shader"
	"texview/texture"
	"texview/viewer"
)

const floatsPerVertex = 6 // vec2 position + vec4 texcoord

// Renderer owns the GL resources of a viewer session: the quad buffers,
// the active texture and the active shader program.
type Renderer struct {
	context graphics.Context
	state   *viewer.State
	tex     *texture.Texture
	synth   *shader.Synthesizer

	quadVAO uint32
	quadVBO uint32

	locViewport int32
	locZoom     int32
	locPan      int32

	glDebug bool
}

// New creates a renderer on the given context and wires the input
// bindings: scroll-wheel zoom, drag pan, R to reset, F to fit.
func New(ctx graphics.Context, state *viewer.State, glDebug bool) (*Renderer, error) {
	ctx.MakeCurrent()
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	r := &Renderer{
		context: ctx,
		state:   state,
		synth:   &shader.Synthesizer{},
		glDebug: glDebug,
	}

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, 6*floatsPerVertex*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(shader.AttribPos)
	gl.VertexAttribPointer(shader.AttribPos, 2, gl.FLOAT, false, floatsPerVertex*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(shader.AttribTexCoord)
	gl.VertexAttribPointer(shader.AttribTexCoord, 4, gl.FLOAT, false, floatsPerVertex*4, gl.PtrOffset(2*4))
	gl.BindVertexArray(0)

	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	ctx.RegisterKeyHandler('R', state.ResetView)
	ctx.RegisterKeyHandler('F', func() {
		if r.tex != nil {
			w, h := ctx.GetFramebufferSize()
			state.FitToWindow(float64(w), float64(h), &r.tex.Descriptor)
		}
	})
	ctx.RegisterScrollHandler(func(xoffset, yoffset float64) {
		if yoffset != 0 {
			state.StepZoom(yoffset > 0)
		}
	})

	return r, nil
}

// Texture returns the currently loaded texture, nil before the first load.
func (r *Renderer) Texture() *texture.Texture { return r.tex }

// LoadTexture loads a file and swaps it in. On any failure the previous
// texture and program stay active.
func (r *Renderer) LoadTexture(path string) error {
	tex, err := texture.Load(path)
	if err != nil {
		return err
	}
	return r.install(tex, filepath.Base(path))
}

// LoadCubemap assembles a cubemap from six face files and swaps it in.
func (r *Renderer) LoadCubemap(paths [6]string) error {
	tex, err := texture.LoadCubemap(paths)
	if err != nil {
		return err
	}
	return r.install(tex, filepath.Base(paths[0]))
}

func (r *Renderer) install(tex *texture.Texture, title string) error {
	if err := tex.Upload(); err != nil {
		return err
	}
	tex.SetFilter(r.state.LinearFilter)

	old := r.tex
	r.tex = tex
	if old != nil {
		old.Release()
	}

	r.state.ApplyTextureDefaults(&tex.Descriptor)
	tex.PinMipLevel(r.state.MipLevel)
	r.context.SetTitle("Texture Viewer - " + title)

	if tex.IsCubemap() {
		w, h := r.context.GetFramebufferSize()
		r.state.FitToWindow(float64(w), float64(h), &tex.Descriptor)
	}

	// ApplyTextureDefaults marked the shader dirty; the rebuild happens
	// right here, so drain the flag before the frame loop sees it.
	r.state.TakeShaderDirty()
	r.rebuildShader()
	return nil
}

// SetFilter switches the texture filter and reapplies it to the texture.
func (r *Renderer) SetFilter(linear bool) {
	r.state.LinearFilter = linear
	if r.tex != nil {
		r.tex.SetFilter(linear)
	}
}

// rebuildShader builds the program variant for the current texture shape
// and color expression. A failed build keeps the previous program active.
func (r *Renderer) rebuildShader() {
	if r.tex == nil {
		return
	}
	expr := r.state.ActiveColorExpression()
	if r.glDebug {
		vertexSrc, fragmentSrc := shader.Synthesize(&r.tex.Descriptor, expr)
		log.Printf("synthesized vertex shader:\n%s", vertexSrc)
		log.Printf("synthesized fragment shader:\n%s", fragmentSrc)
	}
	if err := r.synth.Rebuild(&r.tex.Descriptor, expr); err != nil {
		log.Printf("ERROR: %v", err)
		return
	}

	program := r.synth.Program()
	gl.UseProgram(program)
	r.locViewport = gl.GetUniformLocation(program, gl.Str("uViewport\x00"))
	r.locZoom = gl.GetUniformLocation(program, gl.Str("uZoom\x00"))
	r.locPan = gl.GetUniformLocation(program, gl.Str("uPan\x00"))
	if loc := gl.GetUniformLocation(program, gl.Str("tex0\x00")); loc != -1 {
		gl.Uniform1i(loc, 0)
	}
}

// Run executes the frame loop until the window closes. One frame is:
// poll input, mutate state, rebuild the shader if needed, draw, present.
func (r *Renderer) Run() {
	for !r.context.ShouldClose() {
		x, y := r.context.CursorPos()
		r.state.HandleDrag(x, y, r.context.MouseDown())

		if r.state.TakeShaderDirty() {
			r.rebuildShader()
		}

		r.drawFrame()
		r.context.EndFrame()

		if r.glDebug {
			r.logGLErrors()
		}
	}
}

func (r *Renderer) drawFrame() {
	fbWidth, fbHeight := r.context.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	bg := r.state.BackgroundColor
	gl.ClearColor(bg[0]*bg[3], bg[1]*bg[3], bg[2]*bg[3], bg[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if r.tex == nil || r.synth.Program() == 0 {
		return
	}
	tex := r.tex

	enableBlend := tex.HasAlpha()
	if r.state.OverrideAlpha != -1 {
		enableBlend = r.state.OverrideAlpha == 1
	}
	if enableBlend {
		gl.Enable(gl.BLEND)
	} else {
		gl.Disable(gl.BLEND)
	}

	// sRGB-format textures need the sRGB framebuffer conversion enabled
	// to display correctly; linear ones need it off.
	enableSRGB := tex.IsSRGB()
	if r.state.OverrideSRGB != -1 {
		enableSRGB = r.state.OverrideSRGB == 1
	}
	if enableSRGB {
		gl.Enable(gl.FRAMEBUFFER_SRGB)
	} else {
		gl.Disable(gl.FRAMEBUFFER_SRGB)
	}

	scaleX, scaleY := r.context.GetContentScale()
	panelOffset := float32(0)
	if !r.state.PanelCollapsed {
		panelOffset = float32(r.state.PanelWidth) * scaleX
	}
	winW := float32(fbWidth) - panelOffset
	gl.Viewport(int32(panelOffset), 0, int32(winW), int32(fbHeight))

	gl.UseProgram(r.synth.Program())
	gl.Uniform2f(r.locViewport, winW, float32(fbHeight))
	gl.Uniform1f(r.locZoom, float32(r.state.ZoomLevel))
	gl.Uniform2f(r.locPan, float32(r.state.PanX)*scaleX, float32(r.state.PanY)*scaleY)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(tex.GLTarget, tex.GLHandle)
	gl.BindVertexArray(r.quadVAO)

	for _, inst := range layout.ComputeDrawList(&tex.Descriptor, r.state.LayoutParams()) {
		level := inst.MipLevel
		if level < 0 {
			level = r.state.MipLevel
		}
		tex.PinMipLevel(level)
		r.drawQuad(inst)
	}

	gl.BindVertexArray(0)
	// leave sRGB conversion off so anything drawn after us looks right
	gl.Disable(gl.FRAMEBUFFER_SRGB)
}

// drawQuad submits one instruction as two triangles.
func (r *Renderer) drawQuad(inst layout.DrawInstruction) {
	var texCoords [4][4]float32
	index := float32(inst.ArrayIndex)
	if inst.Face >= 0 {
		dirs := layout.MapCorners(inst.Face, layout.Vec2{}, inst.TexCoordMax, r.state.CrossVariant)
		for i, d := range dirs {
			texCoords[i] = [4]float32{d[0], d[1], d[2], index}
		}
	} else {
		maxS := inst.TexCoordMax.X
		maxT := inst.TexCoordMax.Y
		texCoords = [4][4]float32{
			{0, 0, index, 0},
			{0, maxT, index, 0},
			{maxS, maxT, index, 0},
			{maxS, 0, index, 0},
		}
	}

	corners := [4][2]float32{
		{inst.Pos.X, inst.Pos.Y},
		{inst.Pos.X, inst.Pos.Y + inst.Size.Y},
		{inst.Pos.X + inst.Size.X, inst.Pos.Y + inst.Size.Y},
		{inst.Pos.X + inst.Size.X, inst.Pos.Y},
	}

	vertices := make([]float32, 0, 6*floatsPerVertex)
	for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
		vertices = append(vertices, corners[i][0], corners[i][1])
		vertices = append(vertices, texCoords[i][0], texCoords[i][1], texCoords[i][2], texCoords[i][3])
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

func (r *Renderer) logGLErrors() {
	for {
		glErr := gl.GetError()
		if glErr == gl.NO_ERROR {
			return
		}
		log.Printf("GL error 0x%04x", glErr)
	}
}

// Shutdown releases every GL resource the renderer owns.
func (r *Renderer) Shutdown() {
	r.synth.Release()
	if r.tex != nil {
		r.tex.Release()
	}
	gl.DeleteBuffers(1, &r.quadVBO)
	gl.DeleteVertexArrays(1, &r.quadVAO)
	r.context.Shutdown()
}
