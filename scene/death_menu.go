package scene

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/milk9111/pawbs/common"
	"github.com/milk9111/pawbs/input"
	"github.com/milk9111/pawbs/layer"
)

// DeathMenuLayer fades in a red backdrop while the game layer is suspended
// and offers Continue. Confirm or jump also continues.
type DeathMenuLayer struct {
	s     *Session
	ui    *ebitenui.UI
	in    input.State
	fade  *gween.Tween
	alpha float32
}

// NewDeathMenuLayer wraps ui, which may be nil to run keyboard-only.
func NewDeathMenuLayer(s *Session, ui *ebitenui.UI) *DeathMenuLayer {
	d := &DeathMenuLayer{s: s, ui: ui}
	d.Restart()
	return d
}

// Restart replays the fade-in, used when the menu is resumed.
func (d *DeathMenuLayer) Restart() {
	d.fade = gween.New(0, 1, float32(d.s.Spec.FadeSeconds), ease.OutQuad)
	d.alpha = 0
}

func (d *DeathMenuLayer) Kind() layer.Kind { return layer.Primary }

func (d *DeathMenuLayer) PollEvents() {
	d.in = d.s.Input()
}

func (d *DeathMenuLayer) Update() error {
	d.alpha, _ = d.fade.Update(float32(common.FrameDT))
	if d.ui != nil {
		d.ui.Update()
	}
	if d.in.Confirm || d.in.JumpPressed {
		d.s.Continue()
	}
	return nil
}

func (d *DeathMenuLayer) Draw(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	dim := color.NRGBA{R: 0x20, G: 0x00, B: 0x00, A: uint8(160 * d.alpha)}
	vector.FillRect(screen, 0, 0, common.BaseWidth, common.BaseHeight, dim, false)
	if d.ui != nil {
		d.ui.Draw(screen)
	}
}

func (d *DeathMenuLayer) Destroy() {
	d.ui = nil
}
