package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"texview/texture"
)

// Attribute locations every synthesized program uses.
const (
	AttribPos      = 0
	AttribTexCoord = 1
)

// BuildError reports a failed shader compile or link, carrying the full
// concatenated source and the driver's info log for diagnosis.
type BuildError struct {
	Stage  string // "vertex", "fragment" or "link"
	Source string
	Log    string
}

func (e *BuildError) Error() string {
	if e.Stage == "link" {
		return fmt.Sprintf("linking shader program failed: %s", e.Log)
	}
	return fmt.Sprintf("compiling %s shader failed: %s\nSource BEGIN\n%s\nSource END", e.Stage, e.Log, e.Source)
}

func compileStage(source, stage string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, &BuildError{Stage: stage, Source: source, Log: strings.TrimRight(logText, "\x00")}
	}
	return shader, nil
}

func linkProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	// fixed attribute slots so the renderer's VAO survives program swaps
	gl.BindAttribLocation(program, AttribPos, gl.Str("inPos\x00"))
	gl.BindAttribLocation(program, AttribTexCoord, gl.Str("inTexCoord\x00"))
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		gl.DeleteProgram(program)
		return 0, &BuildError{Stage: "link", Log: strings.TrimRight(logText, "\x00")}
	}
	return program, nil
}

// Synthesizer owns the currently active shader program. Rebuild replaces
// it atomically: on any failure the previous program stays installed.
type Synthesizer struct {
	program uint32
}

// Program returns the active program handle, 0 if none was built yet.
func (s *Synthesizer) Program() uint32 { return s.program }

// Rebuild synthesizes and builds the program variant for the given texture
// shape and color expression. The old program is deleted only after the
// new one linked.
func (s *Synthesizer) Rebuild(desc *texture.Descriptor, colorExpr string) error {
	vertexSrc, fragmentSrc := Synthesize(desc, colorExpr)

	vertexShader, err := compileStage(vertexSrc, "vertex", gl.VERTEX_SHADER)
	if err != nil {
		return err
	}
	fragmentShader, err := compileStage(fragmentSrc, "fragment", gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return err
	}

	program, err := linkProgram(vertexShader, fragmentShader)
	// The stage objects aren't needed once linked (or failed).
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)
	if err != nil {
		return err
	}

	if s.program != 0 {
		gl.DeleteProgram(s.program)
	}
	s.program = program
	return nil
}

// Release frees the active program.
func (s *Synthesizer) Release() {
	if s.program != 0 {
		gl.DeleteProgram(s.program)
		s.program = 0
	}
}
