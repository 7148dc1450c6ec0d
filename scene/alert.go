package scene

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/milk9111/pawbs/common"
	"github.com/milk9111/pawbs/layer"
)

const (
	alertFadeIn  = 0.2
	alertFadeOut = 0.3
)

// CheckpointAlertLayer flashes a banner and pops itself when its tween
// sequence ends.
type CheckpointAlertLayer struct {
	s      *Session
	seq    *gween.Sequence
	alpha  float32
	popped bool
	face   ebtext.Face
}

func NewCheckpointAlertLayer(s *Session) *CheckpointAlertLayer {
	a := &CheckpointAlertLayer{s: s, face: basicFace()}
	a.Restart()
	return a
}

// Restart replays the banner from the start.
func (a *CheckpointAlertLayer) Restart() {
	hold := float32(a.s.Spec.AlertSeconds) - alertFadeIn - alertFadeOut
	if hold < 0 {
		hold = 0
	}
	a.seq = gween.NewSequence(
		gween.New(0, 1, alertFadeIn, ease.OutQuad),
		gween.New(1, 1, hold, ease.Linear),
		gween.New(1, 0, alertFadeOut, ease.InQuad),
	)
	a.alpha = 0
	a.popped = false
}

func (a *CheckpointAlertLayer) Kind() layer.Kind { return layer.Overlay }

func (a *CheckpointAlertLayer) PollEvents() {}

func (a *CheckpointAlertLayer) Update() error {
	if a.popped {
		return nil
	}
	var done bool
	a.alpha, _, done = a.seq.Update(float32(common.FrameDT))
	if done {
		a.popped = true
		a.s.Layers.RequestPop(layer.CheckpointAlert)
	}
	return nil
}

func (a *CheckpointAlertLayer) Draw(screen *ebiten.Image) {
	if screen == nil || a.alpha <= 0 {
		return
	}
	const w, h = 240, 40
	x := float32(common.BaseWidth-w) / 2
	y := float32(64)
	vector.FillRect(screen, x, y, w, h, color.NRGBA{A: uint8(180 * a.alpha)}, false)

	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(float64(x)+70, float64(y)+14)
	op.ColorScale.ScaleAlpha(a.alpha)
	ebtext.Draw(screen, "Checkpoint!", a.face, op)
}

func (a *CheckpointAlertLayer) Destroy() {}
