package layout

// MapCorners converts a quad's 2D texture-coordinate corners into the
// direction vectors that sample the given cube face. Corners are returned
// in the quad winding order (min/min, min/max, max/max, max/min).
//
// The per-face formulas are the standard cubemap convention: the rescaled
// 2D coordinates land in two of the three axes with face-specific signs,
// the remaining axis is fixed at ±1. A wrong sign shows up as a mirrored
// or misoriented face.
//
// When the cross's equatorial row is cycled by rotationVariant, the two
// pole faces rotate with it: +Y by rotationVariant corner steps, -Y by
// (4 - rotationVariant) steps, keeping the poles consistent with the new
// equatorial arrangement.
func MapCorners(face int, tcMin, tcMax Vec2, rotationVariant int) [4][3]float32 {
	// rescale from [0,1] to [-1,1]
	minX := tcMin.X*2 - 1
	minY := tcMin.Y*2 - 1
	maxX := tcMax.X*2 - 1
	maxY := tcMax.Y*2 - 1

	corners := [4]Vec2{
		{minX, minY},
		{minX, maxY},
		{maxX, maxY},
		{maxX, minY},
	}

	var dirs [4][3]float32
	for i, c := range corners {
		switch face {
		case FaceXPos:
			dirs[i] = [3]float32{1, -c.Y, -c.X}
		case FaceXNeg:
			dirs[i] = [3]float32{-1, -c.Y, c.X}
		case FaceYPos:
			dirs[i] = [3]float32{c.X, 1, c.Y}
		case FaceYNeg:
			dirs[i] = [3]float32{c.X, -1, -c.Y}
		case FaceZPos:
			dirs[i] = [3]float32{c.X, -c.Y, 1}
		case FaceZNeg:
			dirs[i] = [3]float32{-c.X, -c.Y, -1}
		}
	}

	if rotationVariant > 0 && (face == FaceYPos || face == FaceYNeg) {
		steps := rotationVariant
		if face == FaceYNeg {
			steps = 4 - rotationVariant
		}
		var rotated [4][3]float32
		for i := range rotated {
			rotated[i] = dirs[(i+steps)%4]
		}
		dirs = rotated
	}

	return dirs
}
