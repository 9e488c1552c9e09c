package layout

import "testing"

func fullQuad(face, variant int) [4][3]float32 {
	return MapCorners(face, Vec2{0, 0}, Vec2{1, 1}, variant)
}

// TestMapCornersDominantAxis verifies that every corner direction has the
// face's axis fixed at the face's sign, and that the other two axes stay
// inside [-1,1].
func TestMapCornersDominantAxis(t *testing.T) {
	tests := []struct {
		face string
		id   int
		axis int
		sign float32
	}{
		{"+X", FaceXPos, 0, 1},
		{"-X", FaceXNeg, 0, -1},
		{"+Y", FaceYPos, 1, 1},
		{"-Y", FaceYNeg, 1, -1},
		{"+Z", FaceZPos, 2, 1},
		{"-Z", FaceZNeg, 2, -1},
	}
	for _, tt := range tests {
		t.Run(tt.face, func(t *testing.T) {
			for variant := 0; variant < 4; variant++ {
				for i, dir := range fullQuad(tt.id, variant) {
					if dir[tt.axis] != tt.sign {
						t.Errorf("variant %d corner %d: axis %d = %v, want %v",
							variant, i, tt.axis, dir[tt.axis], tt.sign)
					}
					for a := 0; a < 3; a++ {
						if a == tt.axis {
							continue
						}
						if dir[a] < -1 || dir[a] > 1 {
							t.Errorf("variant %d corner %d: axis %d = %v out of range", variant, i, a, dir[a])
						}
					}
				}
			}
		})
	}
}

// TestMapCornersDistinct checks that the four corner directions of a full
// quad are pairwise distinct on every face. A duplicate would collapse the
// quad along one axis.
func TestMapCornersDistinct(t *testing.T) {
	for face := FaceXPos; face <= FaceZNeg; face++ {
		dirs := fullQuad(face, 0)
		for i := 0; i < 4; i++ {
			for j := i + 1; j < 4; j++ {
				if dirs[i] == dirs[j] {
					t.Errorf("face %d: corners %d and %d both map to %v", face, i, j, dirs[i])
				}
			}
		}
	}
}

// TestMapCornersEquatorialIgnoreVariant: cycling the cross only re-seats the
// equatorial faces, it never changes how each one samples.
func TestMapCornersEquatorialIgnoreVariant(t *testing.T) {
	for _, face := range []int{FaceXPos, FaceXNeg, FaceZPos, FaceZNeg} {
		base := fullQuad(face, 0)
		for variant := 1; variant < 4; variant++ {
			if got := fullQuad(face, variant); got != base {
				t.Errorf("face %d variant %d: got %v, want %v", face, variant, got, base)
			}
		}
	}
}

// TestMapCornersPoleRotation: the poles rotate with the cross variant, +Y by
// the variant's corner steps and -Y by the complement.
func TestMapCornersPoleRotation(t *testing.T) {
	rotate := func(dirs [4][3]float32, steps int) [4][3]float32 {
		var out [4][3]float32
		for i := range out {
			out[i] = dirs[(i+steps)%4]
		}
		return out
	}

	basePos := fullQuad(FaceYPos, 0)
	baseNeg := fullQuad(FaceYNeg, 0)
	for variant := 1; variant < 4; variant++ {
		if got, want := fullQuad(FaceYPos, variant), rotate(basePos, variant); got != want {
			t.Errorf("+Y variant %d: got %v, want %v", variant, got, want)
		}
		if got, want := fullQuad(FaceYNeg, variant), rotate(baseNeg, 4-variant); got != want {
			t.Errorf("-Y variant %d: got %v, want %v", variant, got, want)
		}
	}
}

// TestMapCornersPartialQuad: tiled sub-quads rescale into the same [-1,1]
// face plane, so the max corner of a half quad lands at the plane's center.
func TestMapCornersPartialQuad(t *testing.T) {
	dirs := MapCorners(FaceZPos, Vec2{0, 0}, Vec2{0.5, 0.5}, 0)
	want := [4][3]float32{
		{-1, 1, 1},
		{-1, 0, 1},
		{0, 0, 1},
		{0, 1, 1},
	}
	if dirs != want {
		t.Errorf("MapCorners(+Z, half quad) = %v, want %v", dirs, want)
	}
}
