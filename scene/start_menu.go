package scene

import (
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/pawbs/input"
	"github.com/milk9111/pawbs/layer"
)

// StartMenuLayer offers Start and Quit. Enter starts, Escape quits.
type StartMenuLayer struct {
	s  *Session
	ui *ebitenui.UI
	in input.State
}

// NewStartMenuLayer wraps ui, which may be nil to run keyboard-only.
func NewStartMenuLayer(s *Session, ui *ebitenui.UI) *StartMenuLayer {
	return &StartMenuLayer{s: s, ui: ui}
}

func (m *StartMenuLayer) Kind() layer.Kind { return layer.Primary }

func (m *StartMenuLayer) PollEvents() {
	m.in = m.s.Input()
}

func (m *StartMenuLayer) Update() error {
	if m.ui != nil {
		m.ui.Update()
	}
	switch {
	case m.in.Confirm:
		m.s.BeginGame()
	case m.in.Back:
		m.s.Quit()
	}
	return nil
}

func (m *StartMenuLayer) Draw(screen *ebiten.Image) {
	if m.ui == nil || screen == nil {
		return
	}
	m.ui.Draw(screen)
}

func (m *StartMenuLayer) Destroy() {
	m.ui = nil
}
