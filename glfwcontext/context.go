package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	options "texview/options"
)

// Context wraps the GLFW window and dispatches key and scroll input to
// registered handlers.
type Context struct {
	window       *glfw.Window
	keyCallbacks map[glfw.Key]func()
	scrollFn     func(xoffset, yoffset float64)
}

// New creates the viewer window and its GL context.
func New(opts *options.ViewerOptions) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.SRGBCapable, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if opts.GLDebug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}

	win, err := glfw.CreateWindow(*opts.Width, *opts.Height, "Texture Viewer", nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func()),
	}
	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetScrollCallback(c.glfwScrollCallback)
	return c, nil
}

// RegisterKeyHandler binds a function to a key press. Letter keys are
// addressed by their uppercase ASCII value, which matches GLFW's keycodes.
func (c *Context) RegisterKeyHandler(key rune, f func()) {
	c.keyCallbacks[glfw.Key(key)] = f
}

// RegisterScrollHandler binds a function to scroll-wheel input.
func (c *Context) RegisterScrollHandler(f func(xoffset, yoffset float64)) {
	c.scrollFn = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

func (c *Context) glfwScrollCallback(w *glfw.Window, xoffset, yoffset float64) {
	if c.scrollFn != nil {
		c.scrollFn(xoffset, yoffset)
	}
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync
}

func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) GetContentScale() (float32, float32) {
	return c.window.GetContentScale()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

func (c *Context) SetTitle(title string) {
	c.window.SetTitle(title)
}

func (c *Context) CursorPos() (float64, float64) {
	return c.window.GetCursorPos()
}

func (c *Context) MouseDown() bool {
	return c.window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts GLFW down. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
