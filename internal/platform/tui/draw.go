package tui

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tiltcart/internal/core"
	"github.com/vovakirdan/tiltcart/internal/course"
	"github.com/vovakirdan/tiltcart/internal/sim"
)

// hudRows is how many screen rows the HUD occupies above the world view.
const hudRows = 2

// viewport maps world coordinates inside the camera bounds onto the
// drawable screen region. X and Y scale independently; terminal cells are
// taller than wide, so the vertical squash also roughly corrects the
// aspect.
type viewport struct {
	bounds  core.FRect
	originY int
	w, h    int
}

func newViewport(cam sim.CameraState, screenW, screenH int) viewport {
	b := cam.Bounds
	if cam.Zoom != 0 && cam.Zoom != 1 {
		// Zoom shrinks the visible window around the bounds center.
		cw, ch := b.W/cam.Zoom, b.H/cam.Zoom
		c := b.Center()
		b = core.FRect{X: c.X - cw/2, Y: c.Y - ch/2, W: cw, H: ch}
	}
	return viewport{bounds: b, originY: hudRows, w: screenW, h: screenH - hudRows}
}

// cell projects a world point to a screen cell.
func (v viewport) cell(p core.Vec2) (int, int) {
	x := int((p.X - v.bounds.X) / v.bounds.W * float64(v.w))
	y := int((p.Y-v.bounds.Y)/v.bounds.H*float64(v.h)) + v.originY
	return x, y
}

// rect projects a world-space box centered at pos to a screen rectangle.
func (v viewport) rect(pos core.Vec2, w, h float64) core.Rect {
	x0, y0 := v.cell(core.V(pos.X-w/2, pos.Y-h/2))
	x1, y1 := v.cell(core.V(pos.X+w/2, pos.Y+h/2))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return core.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func surfaceColor(s sim.SurfaceType) core.Color {
	switch s {
	case sim.SurfaceSlippery:
		return core.ColorBrightCyan
	case sim.SurfaceSticky:
		return core.ColorGreen
	case sim.SurfaceBouncy:
		return core.ColorBrightMagenta
	case sim.SurfaceRough:
		return core.ColorYellow
	case sim.SurfaceMetal:
		return core.ColorGray
	default:
		return core.ColorWhite
	}
}

// drawSession renders one frame of a running session.
func drawSession(s *sim.Session, scr *core.Screen, pilot *KeyboardPilot) {
	scr.Clear()

	view := newViewport(s.Camera(), scr.Width(), scr.Height())

	drawCourse(s, scr, view)
	drawMechanisms(s, scr, view)
	drawCollectibles(s, scr, view)
	drawCart(s, scr, view)
	drawFade(s, scr)
	drawHUD(s, scr, pilot)
}

func drawCourse(s *sim.Session, scr *core.Screen, view viewport) {
	for ai := range s.Course().Areas {
		area := &s.Course().Areas[ai]

		for _, ob := range area.Obstacles {
			r := view.rect(ob.Pos, ob.W, ob.H)
			switch ob.Kind {
			case course.ObstacleSpike:
				fillRect(scr, r, '▲', core.ColorBrightRed)
			case course.ObstacleBumper:
				fillRect(scr, r, '◉', core.ColorBrightMagenta)
			default:
				fillRect(scr, r, '█', surfaceColor(sim.SurfaceFromName(ob.Surface)))
			}
		}

		ck := area.Checkpoint
		fx, fy := view.cell(ck.Pos)
		color := core.ColorGray
		if s.Checkpoints().Activated(ai) {
			color = core.ColorBrightGreen
		}
		scr.SetCell(fx, fy, '⚑', color)
		scr.SetCell(fx, fy+1, '│', color)
	}
}

func drawMechanisms(s *sim.Session, scr *core.Screen, view viewport) {
	for _, m := range s.Mechanisms() {
		w, h := m.Size()
		r := view.rect(m.Body().Position(), w, h)

		color := core.ColorGray
		switch m.State {
		case sim.MechActive, sim.MechTransitioning:
			color = core.ColorBrightYellow
		case sim.MechReturning:
			color = core.ColorYellow
		case sim.MechCooldown:
			color = core.ColorBlue
		}

		fill := '═'
		switch m.Kind {
		case sim.MechConveyor:
			fill = '»'
		case sim.MechFan:
			fill = '≈'
		case sim.MechLauncher:
			fill = '▀'
		}
		fillRect(scr, r, fill, color)
	}
}

func drawCollectibles(s *sim.Session, scr *core.Screen, view viewport) {
	for _, c := range s.Collectibles() {
		x, y := view.cell(c.Pos)
		switch c.Kind {
		case "gem":
			scr.SetCell(x, y, '◆', core.ColorBrightCyan)
		case "life":
			scr.SetCell(x, y, '♥', core.ColorBrightRed)
		default:
			scr.SetCell(x, y, '$', core.ColorBrightYellow)
		}
	}
}

func drawCart(s *sim.Session, scr *core.Screen, view viewport) {
	lives := s.Lives()

	// Invincibility blink: hide the cart on alternating windows.
	if lives.IsInvincible(s.Tick()) && (s.Tick()/6)%2 == 1 {
		return
	}

	cart := s.Cart()
	x, y := view.cell(cart.Pos)

	body := core.ColorBrightBlue
	if lives.Crashed {
		body = core.ColorRed
	}
	scr.SetCell(x-1, y, '▐', body)
	scr.SetCell(x, y, '█', body)
	scr.SetCell(x+1, y, '▌', body)

	wheel := 'o'
	if cart.Wheels[0].Slip || cart.Wheels[1].Slip {
		wheel = '*'
	}
	scr.SetCell(x-1, y+1, wheel, core.ColorWhite)
	scr.SetCell(x+1, y+1, wheel, core.ColorWhite)
}

// drawFade masks the world with the respawn fade. Opacity 1 shows
// everything; lower opacities black out progressively more scanline
// cells until the screen is dark at 0.
func drawFade(s *sim.Session, scr *core.Screen) {
	opacity := s.Lives().Respawn.FadeOpacity
	if opacity >= 1 {
		return
	}

	step := 1 + int(opacity*4)
	for y := hudRows; y < scr.Height(); y++ {
		for x := 0; x < scr.Width(); x++ {
			if (x+y*2)%step != 0 && opacity > 0 {
				continue
			}
			scr.Set(x, y, ' ')
		}
	}
}

func drawHUD(s *sim.Session, scr *core.Screen, pilot *KeyboardPilot) {
	lives := s.Lives()
	areaName := s.Course().Areas[s.CurrentArea()].Name

	hearts := strings.Repeat("♥", lives.Current) + strings.Repeat("·", lives.Max-lives.Current)
	scr.DrawTextColor(1, 0, hearts, core.ColorBrightRed)

	score := fmt.Sprintf("score %d", s.Score())
	scr.DrawTextColor(lives.Max+3, 0, score, core.ColorBrightYellow)

	right := fmt.Sprintf("%s · %s", s.Course().Name, areaName)
	scr.DrawTextColor(scr.Width()-len([]rune(right))-1, 0, right, core.ColorCyan)

	scr.DrawTextColor(1, 1, tiltMeter(pilot.Tilt()), core.ColorWhite)

	switch {
	case lives.GameOver:
		scr.DrawTextCentered(1, "GAME OVER — r to restart, q to quit")
	case s.Complete():
		scr.DrawTextCentered(1, "COURSE COMPLETE! — r to restart, q to quit")
	case s.Paused():
		scr.DrawTextCentered(1, "PAUSED — p to resume")
	case lives.Crashed:
		scr.DrawTextCentered(1, fmt.Sprintf("crashed: %s", lives.CrashReason))
	}
}

// tiltMeter renders the synthesized tilt as a small gauge.
func tiltMeter(tilt float64) string {
	const width = 11
	meter := []rune(strings.Repeat("─", width))
	meter[width/2] = '┼'
	idx := width/2 + int(tilt*float64(width/2))
	if idx < 0 {
		idx = 0
	}
	if idx >= width {
		idx = width - 1
	}
	meter[idx] = '●'
	return "[" + string(meter) + "]"
}

func fillRect(scr *core.Screen, r core.Rect, fill rune, color core.Color) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			scr.SetCell(x, y, fill, color)
		}
	}
}
