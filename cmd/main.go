package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"

	glfwcontext "texview/glfwcontext"
	options "texview/options"
	renderer "texview/renderer"
	viewer "texview/viewer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := &options.ViewerOptions{
		Width:        flag.Int("width", 1280, "Window width"),
		Height:       flag.Int("height", 720, "Window height"),
		LinearFilter: flag.Bool("linear", false, "Start with linear filtering instead of nearest"),
		CubeFaces:    flag.String("cube", "", "Six comma-separated face files (+X,-X,+Y,-Y,+Z,-Z) to view as a cubemap"),
	}
	var help = flag.Bool("help", false, "Show help message")
	flag.Parse()

	if *help {
		fmt.Println("Texture Viewer")
		fmt.Println("Usage: texview [options] [texturefile]")
		fmt.Println("Zoom with the mouse wheel, pan by dragging, R resets the view, F fits to window.")
		flag.PrintDefaults()
		return
	}

	if env := os.Getenv("TEXVIEW_GLDEBUG"); env != "" {
		if v, err := strconv.Atoi(env); err == nil && v != 0 {
			opts.GLDebug = true
			log.Printf("TEXVIEW_GLDEBUG set, enabling OpenGL debug logging")
		}
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	ctx, err := glfwcontext.New(opts)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}

	state := viewer.NewState()
	state.LinearFilter = *opts.LinearFilter

	r, err := renderer.New(ctx, state, opts.GLDebug)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Shutdown()

	if *opts.CubeFaces != "" {
		parts := strings.Split(*opts.CubeFaces, ",")
		if len(parts) != 6 {
			log.Fatalf("-cube wants six comma-separated files, got %d", len(parts))
		}
		var paths [6]string
		copy(paths[:], parts)
		if err := r.LoadCubemap(paths); err != nil {
			log.Printf("Couldn't load cubemap: %v", err)
		}
	} else if flag.NArg() > 0 {
		if err := r.LoadTexture(flag.Arg(0)); err != nil {
			log.Printf("Couldn't load texture %q: %v", flag.Arg(0), err)
		}
	}

	r.Run()
}
