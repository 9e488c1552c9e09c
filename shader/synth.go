package shader

import (
	"fmt"
	"strings"

	"texview/texture"
)

// The shader is assembled from ordered segments so each variant decision
// (sampler type, coordinate width, integer normalization, color
// expression) stays an isolated splice point.

const glslVersion = "#version 330 core\n"

// samplerCubeArray is only core from GLSL 400; on 330 the extension
// directive has to follow the version line immediately.
const cubeArrayExtension = "#extension GL_ARB_texture_cube_map_array : enable\n"

const vertexShaderBody = `uniform vec2 uViewport;
uniform float uZoom;
uniform vec2 uPan;
in vec2 inPos;
in vec4 inTexCoord;
out vec4 texCoord;
void main()
{
	vec2 p = (inPos * uZoom + uPan) / uViewport * 2.0 - 1.0;
	gl_Position = vec4(p.x, -p.y, 0.0, 1.0);
	texCoord = inTexCoord;
}
`

const fragShaderStart = `in vec4 texCoord;
out vec4 OutColor;
void main()
{
`

// Single-space indent so the splice reads well in the expression editor.
const fragShaderEnd = ` OutColor = c;
}
`

// SamplerType returns the GLSL sampler declaration parts for a texture
// shape: the u/i prefix for integer formats and the base+postfix type.
func SamplerType(desc *texture.Descriptor) string {
	prefix := ""
	if _, unsigned, isInt := desc.IntTexInfo(); isInt {
		prefix = "i"
		if unsigned {
			prefix = "u"
		}
	}
	base := "sampler2D"
	if desc.IsCubemap() {
		base = "samplerCube"
	}
	postfix := ""
	if desc.IsArray() {
		postfix = "Array"
	}
	return prefix + base + postfix
}

// CoordWidth returns how many texture-coordinate components the sampler
// consumes: 2 for plain 2D, 3 for cube or array, 4 for cube array.
func CoordWidth(desc *texture.Descriptor) int {
	n := 2
	if desc.IsCubemap() {
		n = 3
	}
	if desc.IsArray() {
		n++
	}
	return n
}

// SampleExpression builds the fragment lines that sample the texture into
// `vec4 c`, normalizing integer formats by the descriptor's divisor. It is
// exported so the expression editor can display the fixed preamble.
func SampleExpression(desc *texture.Descriptor) string {
	coords := "stpq"[:CoordWidth(desc)]
	divisor, unsigned, isInt := desc.IntTexInfo()
	if !isInt {
		return fmt.Sprintf(" vec4 c = texture( tex0, texCoord.%s );\n", coords)
	}
	prefix := "i"
	if unsigned {
		prefix = "u"
	}
	// Integer textures (GL_RGBA_INTEGER etc.) sample as (u)ivec4 and need
	// normalization to display anything useful.
	var b strings.Builder
	fmt.Fprintf(&b, " %svec4 v = texture( tex0, texCoord.%s );\n", prefix, coords)
	fmt.Fprintf(&b, " vec4 c = vec4(v) / %s;\n", divisor)
	return b.String()
}

// Synthesize assembles the vertex and fragment sources for a texture shape
// and color expression. Pure; testable without a GL context.
func Synthesize(desc *texture.Descriptor, colorExpr string) (vertexSrc, fragmentSrc string) {
	version := glslVersion
	if desc.Target == texture.TargetCubeArray {
		version += cubeArrayExtension
	}

	samplerUniform := fmt.Sprintf("uniform %s tex0;\n", SamplerType(desc))

	fragmentSrc = strings.Join([]string{
		version,
		samplerUniform,
		fragShaderStart,
		SampleExpression(desc),
		colorExpr,
		fragShaderEnd,
	}, "")

	return glslVersion + vertexShaderBody, fragmentSrc
}
