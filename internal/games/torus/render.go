package torus

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/vovakirdan/torus2048/internal/core"
	"github.com/vovakirdan/torus2048/internal/engine"
)

const (
	cellWidth  = 7 // Width of each cell including its left border
	cellHeight = 2 // Height of each cell including its top border
	hudHeight  = 3

	boardW = engine.Size*cellWidth + 1
	boardH = engine.Size*cellHeight + 1

	minScreenW = boardW + 4
	minScreenH = hudHeight + 1 + boardH + 2
)

// tileColors maps tile values to colours; larger values use the last entry.
var tileColors = []core.Color{
	core.ColorWhite,         // 2
	core.ColorBrightWhite,   // 4
	core.ColorYellow,        // 8
	core.ColorOrange,        // 16
	core.ColorBrightRed,     // 32
	core.ColorRed,           // 64
	core.ColorBrightYellow,  // 128
	core.ColorBrightGreen,   // 256
	core.ColorGreen,         // 512
	core.ColorBrightCyan,    // 1024
	core.ColorBrightMagenta, // 2048
	core.ColorMagenta,
}

// TileColor returns the colour used for a tile value.
func TileColor(value int) core.Color {
	if value < 2 {
		return core.ColorDefault
	}
	i := int(math.Log2(float64(value))) - 1
	return tileColors[min(i, len(tileColors)-1)]
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.manager == nil {
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX)
	renderGridLines(dst, boardX, boardY)
	g.renderTiles(dst, boardX, boardY)
	g.renderFooter(dst, boardY+boardH)
	g.renderOverlays(dst, boardX, boardY)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
}

// renderHUD draws the title, score and best score.
func (g *Game) renderHUD(dst *core.Screen, boardX int) {
	dst.DrawTextCenteredColored(0, "TORUS 2048", core.ColorBrightYellow)

	score := fmt.Sprintf("Score: %d", g.manager.Score())
	dst.DrawText(boardX, 1, score)

	best := fmt.Sprintf("Best: %d", max(g.meta.BestScore, g.manager.Score()))
	dst.DrawText(boardX+boardW-utf8.RuneCountInString(best), 1, best)

	info := fmt.Sprintf("%s  Max: %d  Moves: %d", Info(g.mode).Mode, g.manager.Grid().MaxValue(), g.moves)
	dst.DrawTextColored(boardX+(boardW-utf8.RuneCountInString(info))/2, 2, info, core.ColorGray)
}

// renderGridLines draws the 4x4 cell borders.
func renderGridLines(dst *core.Screen, boardX, boardY int) {
	const n = engine.Size
	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == n:
				corner = '┐'
			case y == n && x == 0:
				corner = '└'
			case y == n && x == n:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == n:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == n:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// renderTiles draws tiles at their cells, or in flight while sliding.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	if g.anim.sliding() {
		for _, s := range g.anim.slides {
			fx, fy := g.anim.position(s)
			drawTile(dst, boardX, boardY, fx, fy, s.value, false)
		}
		return
	}

	g.manager.Grid().EachCell(func(pos engine.Position, tile *engine.Tile) {
		if tile == nil {
			return
		}
		drawTile(dst, boardX, boardY, float64(pos.X), float64(pos.Y), tile.Value, g.anim.highlighted(pos))
	})
}

// drawTile writes a value centred in the cell at fractional cell
// coordinates (fx, fy). Tiles between cells wrap around the board.
func drawTile(dst *core.Screen, boardX, boardY int, fx, fy float64, value int, highlight bool) {
	inner := cellWidth - 1
	text := strconv.Itoa(value)
	if highlight {
		text = "*" + text + "*"
	}
	if len(text) > inner {
		text = strconv.Itoa(value)
	}

	// Offsets within the board interior, wrapped so a tile crossing an
	// edge reappears on the opposite side.
	col := wrapChars(int(math.Round(fx*cellWidth)), engine.Size*cellWidth)
	row := wrapChars(int(math.Round(fy*cellHeight)), engine.Size*cellHeight)
	x := boardX + 1 + col + (inner-len(text))/2
	y := boardY + 1 + row

	color := TileColor(value)
	if highlight {
		color = core.ColorBrightWhite
	}
	dst.DrawTextColored(x, y, text, color)
}

func wrapChars(v, span int) int {
	return ((v % span) + span) % span
}

func (g *Game) renderFooter(dst *core.Screen, y int) {
	dst.DrawTextCenteredColored(y+1, "Edges wrap around", core.ColorGray)
}

// renderOverlays draws pause, win and game over messages over the board.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	switch {
	case g.paused:
		drawOverlay(dst, centerX, centerY, core.ColorCyan, "PAUSED", "Press P to resume")
	case !g.showMessage:
	case g.meta.Over:
		maxStr := fmt.Sprintf("Max tile: %d", g.manager.Grid().MaxValue())
		drawOverlay(dst, centerX, centerY, core.ColorBrightRed, "GAME OVER", maxStr, "R: restart")
	case g.meta.Won:
		drawOverlay(dst, centerX, centerY, core.ColorBrightGreen, "YOU WIN!", "C: keep playing", "R: restart")
	}
}

// drawOverlay draws a bordered box with centred lines.
func drawOverlay(dst *core.Screen, centerX, centerY int, color core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	box := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)

	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		dst.DrawTextColored(x, box.Y+1+i, line, color)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/HJKL: Move | C: Continue | P: Pause | R: Restart | Q: Quit"
}
