// Package texture loads texture files into descriptors and GPU-resident
// texture objects for the viewer.
package texture

// Texture couples a Descriptor with its GPU-side object. The GL handle is
// zero until Upload is called; replacing a texture is load-then-swap, the
// old GL object is released only after the new one exists.
type Texture struct {
	Descriptor

	GLHandle uint32
	GLTarget uint32
}
