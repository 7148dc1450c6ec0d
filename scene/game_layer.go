package scene

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/pawbs/common"
	"github.com/milk9111/pawbs/input"
	"github.com/milk9111/pawbs/layer"
	"github.com/milk9111/pawbs/prefabs"
)

// GameLayer runs the simulation: one physics step per frame followed by the
// step's contact events.
type GameLayer struct {
	s  *Session
	in input.State
	bg color.Color
	// world-space render target, scaled onto the screen by the camera zoom
	view *ebiten.Image
}

func NewGameLayer(s *Session) *GameLayer {
	return &GameLayer{
		s:  s,
		bg: prefabs.ColorOr(s.Spec.Colors.Background, color.NRGBA{R: 0x15, G: 0x18, B: 0x20, A: 0xff}),
	}
}

func (g *GameLayer) Kind() layer.Kind { return layer.Primary }

func (g *GameLayer) PollEvents() {
	g.in = g.s.Input()
}

// Update returns the translator's error when a sensor fires without a tag.
func (g *GameLayer) Update() error {
	s := g.s
	s.gameFrames++
	g.reload()
	if g.in.DebugToggle {
		s.Debug = !s.Debug
	}

	s.Player.Update(g.in)
	s.World.Step(common.FrameDT)
	if err := s.Translator.Translate(s.World.SensorEvents()); err != nil {
		return err
	}

	x, y := s.Player.Center()
	s.Camera.Update(x, y)
	return nil
}

func (g *GameLayer) reload() {
	names, err := g.s.Watcher.Drain()
	if err != nil {
		g.s.logger.Warn("watcher", "err", err)
	}
	for _, name := range names {
		g.s.ApplySpec(name)
	}
}

func (g *GameLayer) Draw(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	s := g.s
	viewW, viewH := s.Camera.ViewSize()
	view := g.viewImage(int(math.Ceil(viewW)), int(math.Ceil(viewH)))
	view.Fill(g.bg)

	camX, camY := s.Camera.ViewTopLeft()
	s.Level.Draw(view, camX, camY)
	s.Player.Draw(view, camX, camY)
	if s.Debug {
		s.World.DebugDraw(view, camX, camY)
	}

	zoom := s.Camera.Zoom()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(zoom, zoom)
	screen.DrawImage(view, op)
}

// viewImage reuses the render target until a zoom change resizes the view.
func (g *GameLayer) viewImage(w, h int) *ebiten.Image {
	if g.view != nil {
		b := g.view.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return g.view
		}
		g.view.Deallocate()
	}
	g.view = ebiten.NewImage(w, h)
	return g.view
}

func (g *GameLayer) Destroy() {
	if g.view != nil {
		g.view.Deallocate()
		g.view = nil
	}
	g.s.logger.Debug("game layer destroyed", "frames", g.s.gameFrames)
}
