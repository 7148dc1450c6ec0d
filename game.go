package main

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/pawbs/common"
	"github.com/milk9111/pawbs/input"
	"github.com/milk9111/pawbs/logging"
	"github.com/milk9111/pawbs/scene"
)

// Game adapts a Session to ebiten. An error out of the layer stack halts the
// loop: layers stop running and the error stays on screen until the player
// dismisses it.
type Game struct {
	session *scene.Session
	errs    *logging.ErrorLog
	input   input.Source
	logger  *log.Logger

	halted error
}

func NewGame(session *scene.Session, errs *logging.ErrorLog, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	return &Game{
		session: session,
		errs:    errs,
		input:   input.Poll,
		logger:  logger,
	}
}

func (g *Game) Update() error {
	if g.halted != nil {
		in := g.input()
		if in.Confirm || in.Back {
			return ebiten.Termination
		}
		return nil
	}
	if g.session.Quitting() {
		return ebiten.Termination
	}

	// pops requested last tick land here, after that tick's Draw if any
	layers := g.session.Layers
	layers.FlushPops()
	layers.PollEvents()
	if err := layers.Update(); err != nil {
		g.halt(err)
	}
	return nil
}

func (g *Game) halt(err error) {
	g.halted = err
	g.logger.Error("halting", "err", err)
	g.errs.Record(err)
}

// Halted returns the error that stopped the frame loop, if any.
func (g *Game) Halted() error {
	return g.halted
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.halted != nil {
		screen.Fill(color.NRGBA{R: 0x30, G: 0x08, B: 0x08, A: 0xff})
		msg := fmt.Sprintf("fatal error:\n\n%v\n\npress Enter or Escape to exit", g.halted)
		ebitenutil.DebugPrintAt(screen, msg, 32, 32)
		return
	}
	g.session.Layers.Draw(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

// Close tears down the layer stack and the error log.
func (g *Game) Close() {
	g.session.Close()
	if err := g.errs.Close(); err != nil {
		g.logger.Warn("error log close", "err", err)
	}
}
