package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/space-voyager/internal/core"
	"github.com/vovakirdan/space-voyager/internal/session"
	"github.com/vovakirdan/space-voyager/internal/spawn"
)

func TestViewportPlayfield(t *testing.T) {
	// 22 rows leave 20 for the field: 2 rows and 4 columns per unit.
	v := NewViewport(80, 22, 5)

	if v.H != 20 || v.Top != hudRows {
		t.Fatalf("viewport = %+v, expected H=20 Top=%d", v, hudRows)
	}
	pf := v.Playfield()
	if pf.HalfWidth != 10 || pf.HalfHeight != 5 {
		t.Errorf("Playfield() = %+v, expected 10x5", pf)
	}
}

func TestViewportToCell(t *testing.T) {
	v := NewViewport(80, 22, 5)

	tests := []struct {
		name string
		p    core.Vec2
		x, y int
	}{
		{"origin", core.V(0, 0), 40, 11},
		{"top left", core.V(-10, 5), 0, 1},
		{"y up is screen up", core.V(0, 2), 40, 7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := v.ToCell(tc.p)
			if x != tc.x || y != tc.y {
				t.Errorf("ToCell(%v) = (%d, %d), expected (%d, %d)", tc.p, x, y, tc.x, tc.y)
			}
		})
	}
}

func TestViewportBoxToRect(t *testing.T) {
	v := NewViewport(80, 22, 5)

	r := v.BoxToRect(core.NewAABB(core.V(0, 0), core.V(1, 0.5)))
	if r != core.NewRect(36, 10, 8, 2) {
		t.Errorf("BoxToRect() = %+v, expected {36 10 8 2}", r)
	}

	// Tiny boxes still cover a cell.
	r = v.BoxToRect(core.NewAABB(core.V(0.1, 0.1), core.V(0, 0)))
	if r.W < 1 || r.H < 1 {
		t.Errorf("BoxToRect() = %+v, expected at least 1x1", r)
	}
}

func TestViewportDegenerateSizes(t *testing.T) {
	v := NewViewport(0, 1, 0)
	if v.W < 1 || v.H < 1 || v.HalfHeight <= 0 {
		t.Errorf("NewViewport() = %+v, expected positive extents", v)
	}
}

func screenContains(s *core.Screen, text string) bool {
	for y := 0; y < s.Height(); y++ {
		if strings.Contains(s.Row(y), text) {
			return true
		}
	}
	return false
}

func TestDrawFrameStates(t *testing.T) {
	v := NewViewport(80, 24, 5)
	screen := core.NewScreen(80, 23)

	tests := []struct {
		name  string
		snap  session.Snapshot
		want  string
		avoid string
	}{
		{
			name:  "menu",
			snap:  session.Snapshot{State: session.StateMenu, HasPlayer: true, PlayerAlive: true},
			want:  "SPACE VOYAGER",
			avoid: "GAME OVER",
		},
		{
			name:  "game over",
			snap:  session.Snapshot{State: session.StateGameOver, Score: 12, HighScore: 12, HasPlayer: true},
			want:  "new best!",
			avoid: "SPACE VOYAGER",
		},
		{
			name:  "playing",
			snap:  session.Snapshot{State: session.StatePlaying, Score: 3, Speed: 5, HasPlayer: true, PlayerAlive: true},
			want:  "SCORE",
			avoid: "GAME OVER",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			DrawFrame(screen, tc.snap, v, false)
			if !screenContains(screen, tc.want) {
				t.Errorf("screen missing %q:\n%s", tc.want, screen.String())
			}
			if screenContains(screen, tc.avoid) {
				t.Errorf("screen unexpectedly shows %q", tc.avoid)
			}
		})
	}
}

func TestDrawFramePaused(t *testing.T) {
	v := NewViewport(80, 24, 5)
	screen := core.NewScreen(80, 23)

	DrawFrame(screen, session.Snapshot{State: session.StatePlaying}, v, true)

	if !strings.Contains(screen.Row(0), "PAUSED") {
		t.Errorf("HUD = %q, expected PAUSED", screen.Row(0))
	}
}

func TestDrawFrameObstaclesAndPlayer(t *testing.T) {
	v := NewViewport(80, 22, 5)
	screen := core.NewScreen(80, 21)

	snap := session.Snapshot{
		State:       session.StatePlaying,
		HasPlayer:   true,
		PlayerAlive: true,
		Player:      core.NewAABB(core.V(-5, 0), core.V(0.25, 0.25)),
		Variants:    []spawn.Variant{{Name: "scout", Half: core.V(0.5, 0.5), Glyph: "<"}},
		Obstacles: []spawn.Obstacle{
			{ID: 1, Position: core.V(5, 0), Half: core.V(0.5, 0.5), Variant: 0},
		},
	}
	DrawFrame(screen, snap, v, false)

	ox, oy := v.ToCell(core.V(5, 0))
	if got := screen.GetCell(ox, oy); got.Rune != '<' || got.Color != core.ColorRed {
		t.Errorf("obstacle cell = %+v, expected red '<'", got)
	}
	px, py := v.ToCell(core.V(-5, 0))
	if got := screen.GetCell(px, py); got.Rune != '▶' || got.Color != core.ColorCyan {
		t.Errorf("player cell = %+v, expected cyan '▶'", got)
	}
}
