package scene

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/pawbs/layer"
)

// HUD is an overlay with the ground contact count and the last checkpoint
// tag. In debug mode it adds movement state, position and FPS.
type HUD struct {
	s    *Session
	text string
}

func NewHUD(s *Session) *HUD {
	return &HUD{s: s}
}

func (h *HUD) Kind() layer.Kind { return layer.Overlay }

func (h *HUD) PollEvents() {}

func (h *HUD) Update() error {
	h.text = h.status()
	return nil
}

func (h *HUD) status() string {
	s := h.s
	cp := s.LastCheckpoint()
	if cp == "" {
		cp = "none"
	}
	text := fmt.Sprintf("ground: %d  checkpoint: %s", s.Player.Ground.Count(), cp)
	if s.Debug {
		x, y := s.Player.Center()
		text += fmt.Sprintf("\nstate: %s  pos: %.0f,%.0f  FPS: %.2f",
			s.Player.Movement.State, x, y, ebiten.ActualFPS())
	}
	return text
}

func (h *HUD) Draw(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	ebitenutil.DebugPrintAt(screen, h.text, 8, 8)
}

func (h *HUD) Destroy() {}
