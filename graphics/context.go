package graphics

// Context is the window/GL-context surface the renderer draws through.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	// EndFrame presents the frame and polls pending input events.
	EndFrame()
	GetFramebufferSize() (int, int)
	// GetContentScale returns the window's DPI scale factors.
	GetContentScale() (float32, float32)
	Time() float64
	SetTitle(title string)

	// CursorPos returns the pointer position in window coordinates.
	CursorPos() (float64, float64)
	// MouseDown reports whether the primary button is held.
	MouseDown() bool

	// RegisterKeyHandler binds a function to a key press. Letter keys use
	// their uppercase ASCII value.
	RegisterKeyHandler(key rune, f func())
	// RegisterScrollHandler binds a function to scroll-wheel input.
	RegisterScrollHandler(f func(xoffset, yoffset float64))
}
