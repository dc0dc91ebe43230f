package subtitle

// ScrollTarget returns the offset that centers line active in a viewport:
// the height of every earlier line plus half the active line, minus half
// the viewport, clamped to [0, total-viewport]. Heights are in rows.
func ScrollTarget(heights []int, active, viewport int) int {
	if active < 0 || active >= len(heights) {
		return 0
	}
	total, before := 0, 0
	for i, h := range heights {
		if i < active {
			before += h
		}
		total += h
	}
	target := before + heights[active]/2 - viewport/2
	return max(0, min(target, total-viewport))
}
