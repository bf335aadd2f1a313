package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/space-voyager/internal/core"
	"github.com/vovakirdan/space-voyager/internal/session"
)

const (
	hudRows    = 1   // Score line above the playfield
	helpRows   = 1   // Key help below the playfield
	cellAspect = 2.0 // A terminal cell is about twice as tall as it is wide
)

// Viewport maps world units onto a block of terminal cells. The world
// origin sits at the block's center; Y grows upward in the world and
// downward on screen.
type Viewport struct {
	W, H       int     // Size of the playfield block in cells
	Top        int     // Screen row of the block's first line
	HalfHeight float64 // World units visible above and below the origin
}

// NewViewport fits a playfield of the given half height into a terminal
// of width x height cells, leaving room for the HUD and the help line.
func NewViewport(width, height int, halfHeight float64) Viewport {
	h := height - hudRows - helpRows
	if h < 1 {
		h = 1
	}
	if width < 1 {
		width = 1
	}
	if halfHeight <= 0 {
		halfHeight = 1
	}
	return Viewport{W: width, H: h, Top: hudRows, HalfHeight: halfHeight}
}

func (v Viewport) rowsPerUnit() float64 {
	return float64(v.H) / (2 * v.HalfHeight)
}

func (v Viewport) colsPerUnit() float64 {
	return v.rowsPerUnit() * cellAspect
}

// Playfield returns the world bounds visible through the viewport.
func (v Viewport) Playfield() core.Playfield {
	return core.Playfield{
		HalfWidth:  float64(v.W) / (2 * v.colsPerUnit()),
		HalfHeight: v.HalfHeight,
	}
}

// ToCell returns the screen cell containing world point p.
func (v Viewport) ToCell(p core.Vec2) (x, y int) {
	x = int(math.Floor(p.X*v.colsPerUnit() + float64(v.W)/2))
	y = int(math.Floor((v.HalfHeight-p.Y)*v.rowsPerUnit())) + v.Top
	return x, y
}

// BoxToRect returns the cells covered by b. Every visible box covers at
// least one cell.
func (v Viewport) BoxToRect(b core.AABB) core.Rect {
	cpu, rpu := v.colsPerUnit(), v.rowsPerUnit()
	lo, hi := b.Min(), b.Max()

	x0 := int(math.Floor(lo.X*cpu + float64(v.W)/2))
	x1 := int(math.Ceil(hi.X*cpu + float64(v.W)/2))
	y0 := int(math.Floor((v.HalfHeight-hi.Y)*rpu)) + v.Top
	y1 := int(math.Ceil((v.HalfHeight-lo.Y)*rpu)) + v.Top

	return core.NewRect(x0, y0, core.Max(x1-x0, 1), core.Max(y1-y0, 1))
}

// obstacleColors cycles through the catalog by variant index.
var obstacleColors = []core.Color{core.ColorRed, core.ColorOrange, core.ColorMagenta}

// DrawFrame projects a snapshot onto the screen.
func DrawFrame(s *core.Screen, snap session.Snapshot, v Viewport, paused bool) {
	s.Clear()

	drawStars(s, v, snap.Elapsed)

	for _, o := range snap.Obstacles {
		glyph := '#'
		if o.Variant >= 0 && o.Variant < len(snap.Variants) {
			for _, r := range snap.Variants[o.Variant].Glyph {
				glyph = r
				break
			}
		}
		color := obstacleColors[o.Variant%len(obstacleColors)]
		s.FillRect(v.BoxToRect(o.AABB()), glyph, color)
	}

	if snap.HasPlayer && snap.State != session.StateMenu {
		glyph, color := '▶', core.ColorCyan
		if !snap.PlayerAlive {
			glyph, color = '*', core.ColorYellow
		}
		s.FillRect(v.BoxToRect(snap.Player), glyph, color)
	}

	drawHUD(s, snap, paused)

	switch snap.State {
	case session.StateMenu:
		drawMessage(s, v, core.ColorCyan,
			"SPACE VOYAGER",
			fmt.Sprintf("best %.0f", snap.HighScore),
			"",
			"press space to launch",
		)
	case session.StateGameOver:
		lines := []string{
			"GAME OVER",
			fmt.Sprintf("score %.0f", snap.Score),
			fmt.Sprintf("best  %.0f", snap.HighScore),
		}
		if snap.Score > 0 && snap.Score >= snap.HighScore {
			lines = append(lines, "new best!")
		}
		lines = append(lines, "", "space to fly again")
		drawMessage(s, v, core.ColorRed, lines...)
	}
}

// drawHUD writes the score line.
func drawHUD(s *core.Screen, snap session.Snapshot, paused bool) {
	s.DrawHLine(0, 0, s.Width(), ' ')
	hud := fmt.Sprintf(" SCORE %7.0f   SPEED %5.2f   BEST %7.0f", snap.Score, snap.Speed, snap.HighScore)
	s.DrawTextColored(0, 0, hud, core.ColorBrightWhite)
	if paused {
		msg := "PAUSED "
		s.DrawTextColored(s.Width()-len(msg), 0, msg, core.ColorYellow)
	}
}

// drawStars scatters a parallax starfield that drifts with elapsed time.
func drawStars(s *core.Screen, v Viewport, elapsed float64) {
	if v.W < 2 {
		return
	}
	shift := int(elapsed * 4)
	for row := 0; row < v.H; row++ {
		// A prime stride spreads one star per row across the width.
		x := (row*37 + 11 - shift) % v.W
		if x < 0 {
			x += v.W
		}
		s.SetColored(x, v.Top+row, '.', core.ColorGray)
	}
}

// drawMessage draws a centered box with the given lines.
func drawMessage(s *core.Screen, v Viewport, c core.Color, lines ...string) {
	w := 0
	for _, l := range lines {
		w = core.Max(w, len([]rune(l)))
	}
	w += 4
	h := len(lines) + 2

	x := (v.W - w) / 2
	y := v.Top + (v.H-h)/2
	box := core.NewRect(x, y, w, h)

	s.FillRect(box, ' ', core.ColorDefault)
	s.DrawBox(box)
	for i, l := range lines {
		lx := x + (w-len([]rune(l)))/2
		s.DrawTextColored(lx, y+1+i, l, c)
	}
}
