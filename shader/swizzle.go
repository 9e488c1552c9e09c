// Package shader synthesizes and owns the GLSL program the viewer renders
// with. Source generation is pure; only program building touches GL.
package shader

import (
	"fmt"
	"log"
)

// CompileSimple translates a simple four-character swizzle ("b1ga", "rgb1",
// ...) into the color assignment spliced into the fragment shader.
// Positions select the output R, G, B and A channel; valid characters are
// r/g/b/a, their x/y/z/w aliases, and the literals 0 and 1. Empty or
// truncated input leaves the remaining slots at their defaults (0 for
// color, 1 for alpha). Invalid characters are logged and fall back to the
// slot default.
func CompileSimple(simple string) string {
	args := [4]string{"0.0", "0.0", "0.0", "1.0"}
	for i := 0; i < 4 && i < len(simple); i++ {
		c := simple[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		switch c {
		case '0':
			args[i] = "0.0"
		case '1':
			args[i] = "1.0"
		case 'r', 'x':
			args[i] = "c.r"
		case 'g', 'y':
			args[i] = "c.g"
		case 'b', 'z':
			args[i] = "c.b"
		case 'a', 'w':
			args[i] = "c.a"
		case 0:
			// embedded NUL terminates the swizzle, rest stays at default
			i = 4
		default:
			log.Printf("Invalid character %q in swizzle!", simple[i])
		}
	}
	return fmt.Sprintf("c = vec4(%s, %s, %s, %s);\n", args[0], args[1], args[2], args[3])
}

// DefaultSimple returns the swizzle a freshly loaded texture starts with.
func DefaultSimple(hasAlpha bool) string {
	if hasAlpha {
		return "rgba"
	}
	return "rgb1"
}
