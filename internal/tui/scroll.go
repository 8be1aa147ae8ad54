package tui

import "github.com/xonecas/glancr/internal/constants"

// previewOffset returns the first preview line to show for a scroll target
// (1-based, 0 = none). Matches near the top of the file do not scroll, nor
// does anything when the whole preview fits; otherwise the match is kept a
// few lines below the top edge.
func previewOffset(target, total, height int) int {
	if target < constants.ScrollFreeLines || total <= height {
		return 0
	}
	off := target - constants.ScrollContextLines
	return min(max(off, 0), max(total-height, 0))
}
