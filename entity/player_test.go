package entity

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/milk9111/pawbs/contact"
	"github.com/milk9111/pawbs/event"
	"github.com/milk9111/pawbs/input"
	"github.com/milk9111/pawbs/physics"
	"github.com/milk9111/pawbs/prefabs"
)

type rig struct {
	world      *physics.World
	player     *Player
	translator *contact.Translator
}

func newRig(t *testing.T) *rig {
	t.Helper()
	logger := log.New(io.Discard)
	world := physics.NewWorld(physics.Config{Gravity: 1400}, logger)
	world.AddStaticBox(physics.BB{X: 0, Y: 200, W: 400, H: 32})
	p := NewPlayer(world, prefabs.DefaultPlayerSpec(), 100, 150, logger)
	d := event.NewDispatcher[contact.Event]()
	p.Subscribe(d)
	return &rig{
		world:      world,
		player:     p,
		translator: contact.NewTranslator(d, contact.Lookups{p.Tags()}, logger),
	}
}

func (r *rig) step(t *testing.T, in input.State) {
	t.Helper()
	r.player.Update(in)
	r.world.Step(1.0 / 60.0)
	if err := r.translator.Translate(r.world.SensorEvents()); err != nil {
		t.Fatalf("translate: %v", err)
	}
}

func TestPlayerLandsAndJumps(t *testing.T) {
	r := newRig(t)
	for i := 0; i < 120 && !r.player.Ground.OnGround(); i++ {
		r.step(t, input.State{})
	}
	if !r.player.Ground.OnGround() {
		t.Fatalf("expected player grounded after falling onto the floor")
	}

	r.step(t, input.State{JumpPressed: true})
	if _, vy := r.world.Velocity(r.player.Body); vy >= 0 {
		t.Fatalf("expected upward velocity after jump, got %v", vy)
	}
	for i := 0; i < 10 && r.player.Ground.OnGround(); i++ {
		r.step(t, input.State{})
	}
	if r.player.Ground.OnGround() {
		t.Fatalf("expected player airborne after jumping")
	}
}

func TestPlayerFootTagged(t *testing.T) {
	r := newRig(t)
	tag, ok := r.player.Tags().Tag(r.player.Foot)
	if !ok || tag != FootTag {
		t.Fatalf("expected foot tagged %q, got %q", FootTag, tag)
	}
	if !r.world.IsSensor(r.player.Foot) {
		t.Fatalf("expected foot to be a sensor")
	}
}

func TestDeadPlayerIgnoresInput(t *testing.T) {
	r := newRig(t)
	r.player.SetDead(true)
	r.player.Update(input.State{MoveX: 1})
	if vx, _ := r.world.Velocity(r.player.Body); vx != 0 {
		t.Fatalf("expected dead player to ignore input, got vx=%v", vx)
	}
	if !r.player.Dead() {
		t.Fatalf("expected dead")
	}
}

func TestPlayerTeleport(t *testing.T) {
	r := newRig(t)
	for i := 0; i < 30; i++ {
		r.step(t, input.State{MoveX: 1})
	}
	r.player.Teleport(64, 315)
	if x, y := r.player.Center(); x != 64 || y != 315 {
		t.Fatalf("expected center (64, 315), got (%v, %v)", x, y)
	}
	if vx, vy := r.world.Velocity(r.player.Body); vx != 0 || vy != 0 {
		t.Fatalf("expected zero velocity, got (%v, %v)", vx, vy)
	}
}
