package viewer

import "math"

// StepZoom advances one scroll-wheel notch. The step size depends on the
// current magnitude: ±0.5 above 2.0, ±0.25 in [1.0,2.0), ±0.125 in
// [0.125,1.0) and ×/÷ √2 below that. The result is then snapped to the
// nearest half (zoom ≥ 1) or eighth (0.25 < zoom < 1) when close enough,
// so continuous scrolling lands on clean values without losing the smooth
// feel at the extremes.
func StepZoom(zl float64, increase bool) float64 {
	if increase {
		switch {
		case zl >= 2.0:
			zl += 0.5
		case zl >= 1.0:
			zl += 0.25
		case zl >= 0.125:
			zl += 0.125
		default:
			zl *= math.Sqrt2
		}
	} else {
		switch {
		case zl <= 0.125:
			zl /= math.Sqrt2
		case zl <= 1.0:
			zl -= 0.125
		case zl <= 2.0:
			zl -= 0.25
		default:
			zl -= 0.5
		}
	}

	if zl >= 1.0 {
		nearestHalf := math.Round(zl*2.0) * 0.5
		if math.Abs(nearestHalf-zl) <= math.Min(0.25, 0.1*zl) {
			return nearestHalf
		}
	} else if zl > 0.25 {
		nearestEighth := math.Round(zl*8.0) * 0.125
		if math.Abs(nearestEighth-zl) <= 0.05 {
			return nearestEighth
		}
	}
	return zl
}

// FitZoom computes the zoom and pan that make the content exactly fill the
// limiting axis of the framebuffer area left of the panel, centering the
// other axis. Cube textures are shown as a cross lying on its side, so
// their footprint is 4 faces wide and 3 high.
func FitZoom(displayW, displayH, panelW float64, texW, texH float32, isCube bool) (zoom, panX, panY float64) {
	tw := float64(texW)
	th := float64(texH)
	if isCube {
		tw *= 4.0
		th *= 3.0
	}
	winW := displayW - panelW
	zw := winW / tw
	zh := displayH / th
	if zw < zh {
		return zw, 0, math.Floor(0.5 * (displayH/zw - th))
	}
	if !isCube {
		panX = math.Floor(0.5 * (winW/zh - tw))
	}
	return zh, panX, 0
}
