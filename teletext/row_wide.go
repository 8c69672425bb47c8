package teletext

import "liiga-teletext/api"

// renderWideGames draws the visible games in two columns: the first
// ⌈n/2⌉ games go left, the rest right. Each column advances its own
// vertical cursor using normal-mode formatting at the fixed wide column
// width. Returns the larger of the two end cursors.
func renderWideGames(f *Frame, y int, games []api.Game, linksEnabled bool) int {
	split := (len(games) + 1) / 2
	left, right := games[:split], games[split:]

	layout := NewLayout(WideColumnWidth, games)
	rightOff := WideColumnWidth + WideColumnGap

	leftY := y
	for _, g := range left {
		leftY = renderNormalGame(f, 0, leftY, g, layout, linksEnabled, true)
	}
	rightY := y
	for _, g := range right {
		rightY = renderNormalGame(f, rightOff, rightY, g, layout, linksEnabled, true)
	}

	if rightY > leftY {
		return rightY
	}
	return leftY
}
