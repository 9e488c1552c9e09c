package options

// ViewerOptions aggregates the command-line configuration of a viewer run.
type ViewerOptions struct {
	Width        *int
	Height       *int
	LinearFilter *bool
	// CubeFaces holds six comma-separated face paths (+X,-X,+Y,-Y,+Z,-Z)
	// to assemble a cubemap instead of loading a single file.
	CubeFaces *string
	// GLDebug is read once at startup from the TEXVIEW_GLDEBUG
	// environment variable.
	GLDebug bool
}
