package layer

import (
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// fakeLayer records every lifecycle call into a shared journal.
type fakeLayer struct {
	name     string
	kind     Kind
	journal  *[]string
	onUpdate func()
	err      error
	destroys int
}

func (f *fakeLayer) Kind() Kind { return f.kind }

func (f *fakeLayer) PollEvents() { *f.journal = append(*f.journal, f.name+".poll") }

func (f *fakeLayer) Update() error {
	*f.journal = append(*f.journal, f.name+".update")
	if f.onUpdate != nil {
		f.onUpdate()
	}
	return f.err
}

func (f *fakeLayer) Draw(*ebiten.Image) { *f.journal = append(*f.journal, f.name+".draw") }

func (f *fakeLayer) Destroy() {
	f.destroys++
	*f.journal = append(*f.journal, f.name+".destroy")
}

func newTestManager() *Manager {
	return NewManager(log.New(io.Discard))
}

func TestSelfPopIsDeferred(t *testing.T) {
	m := newTestManager()
	var journal []string
	alert := &fakeLayer{name: "alert", kind: Overlay, journal: &journal}
	alert.onUpdate = func() { m.RequestPop(CheckpointAlert) }
	if err := m.Push(CheckpointAlert, alert); err != nil {
		t.Fatalf("push: %v", err)
	}

	if err := m.Frame(nil); err != nil {
		t.Fatalf("frame: %v", err)
	}
	want := []string{"alert.poll", "alert.update", "alert.draw", "alert.destroy"}
	if !reflect.DeepEqual(journal, want) {
		t.Fatalf("expected %v, got %v", want, journal)
	}
	if m.Contains(CheckpointAlert) {
		t.Fatalf("expected alert gone after the frame")
	}

	journal = nil
	if err := m.Frame(nil); err != nil {
		t.Fatalf("frame: %v", err)
	}
	if len(journal) != 0 {
		t.Fatalf("expected no calls on the next frame, got %v", journal)
	}
	if alert.destroys != 1 {
		t.Fatalf("expected destroy exactly once, got %d", alert.destroys)
	}
}

func TestDrawOrderOverlaysLast(t *testing.T) {
	cases := []struct {
		name  string
		order []ID
	}{
		{"primary_first", []ID{Game, HUD}},
		{"overlay_first", []ID{HUD, Game}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := newTestManager()
			var journal []string
			layers := map[ID]*fakeLayer{
				Game: {name: "game", kind: Primary, journal: &journal},
				HUD:  {name: "hud", kind: Overlay, journal: &journal},
			}
			for _, id := range c.order {
				if err := m.Push(id, layers[id]); err != nil {
					t.Fatalf("push: %v", err)
				}
			}
			m.Draw(nil)
			want := []string{"game.draw", "hud.draw"}
			if !reflect.DeepEqual(journal, want) {
				t.Fatalf("expected %v, got %v", want, journal)
			}
		})
	}
}

func TestDrawOrderMixedStack(t *testing.T) {
	m := newTestManager()
	var journal []string
	m.Push(HUD, &fakeLayer{name: "hud", kind: Overlay, journal: &journal})
	m.Push(Game, &fakeLayer{name: "game", kind: Primary, journal: &journal})
	m.Push(CheckpointAlert, &fakeLayer{name: "alert", kind: Overlay, journal: &journal})
	m.Push(DeathMenu, &fakeLayer{name: "death", kind: Primary, journal: &journal})

	m.Draw(nil)
	want := []string{"game.draw", "death.draw", "hud.draw", "alert.draw"}
	if !reflect.DeepEqual(journal, want) {
		t.Fatalf("expected %v, got %v", want, journal)
	}
}

func TestSuspendResume(t *testing.T) {
	m := newTestManager()
	var journal []string
	m.Push(Game, &fakeLayer{name: "game", kind: Primary, journal: &journal})
	m.Push(HUD, &fakeLayer{name: "hud", kind: Overlay, journal: &journal})
	m.Push(CheckpointAlert, &fakeLayer{name: "alert", kind: Overlay, journal: &journal})

	if err := m.Suspend(Game); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	m.SuspendOverlays()
	if err := m.Frame(nil); err != nil {
		t.Fatalf("frame: %v", err)
	}
	if len(journal) != 0 {
		t.Fatalf("expected suspended layers to be skipped, got %v", journal)
	}
	if !m.Contains(Game) || m.Enabled(Game) {
		t.Fatalf("expected game present and suspended")
	}

	m.ResumeOverlays()
	m.Resume(Game)
	m.Update()
	want := []string{"game.update", "hud.update", "alert.update"}
	if !reflect.DeepEqual(journal, want) {
		t.Fatalf("expected %v, got %v", want, journal)
	}
}

func TestUnknownKeys(t *testing.T) {
	m := newTestManager()
	if err := m.Suspend(DeathMenu); !errors.Is(err, ErrUnknownLayer) {
		t.Fatalf("expected ErrUnknownLayer, got %v", err)
	}
	if err := m.Resume(DeathMenu); !errors.Is(err, ErrUnknownLayer) {
		t.Fatalf("expected ErrUnknownLayer, got %v", err)
	}
	m.RequestPop(DeathMenu)
	m.FlushPops()
	if m.Len() != 0 {
		t.Fatalf("expected empty stack, got %d", m.Len())
	}
	if _, ok := m.Get(DeathMenu); ok {
		t.Fatalf("expected no layer for unknown key")
	}
}

func TestDuplicatePushKeepsExisting(t *testing.T) {
	m := newTestManager()
	var journal []string
	first := &fakeLayer{name: "first", kind: Primary, journal: &journal}
	second := &fakeLayer{name: "second", kind: Primary, journal: &journal}

	if err := m.Push(DeathMenu, first); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := m.Push(DeathMenu, second); !errors.Is(err, ErrDuplicateLayer) {
		t.Fatalf("expected ErrDuplicateLayer, got %v", err)
	}
	got, _ := m.Get(DeathMenu)
	if got != first {
		t.Fatalf("expected original layer kept")
	}
	if m.Len() != 1 {
		t.Fatalf("expected 1 layer, got %d", m.Len())
	}
}

func TestDoublePopDestroysOnce(t *testing.T) {
	m := newTestManager()
	var journal []string
	l := &fakeLayer{name: "menu", kind: Primary, journal: &journal}
	m.Push(StartMenu, l)
	m.RequestPop(StartMenu)
	m.RequestPop(StartMenu)
	if !m.PendingPop(StartMenu) {
		t.Fatalf("expected pop pending")
	}
	m.FlushPops()
	if l.destroys != 1 {
		t.Fatalf("expected destroy once, got %d", l.destroys)
	}
	if m.PendingPop(StartMenu) {
		t.Fatalf("expected queue drained")
	}
}

func TestCancelPopKeepsLayer(t *testing.T) {
	m := newTestManager()
	var journal []string
	menu := &fakeLayer{name: "death", kind: Primary, journal: &journal}
	hud := &fakeLayer{name: "hud", kind: Overlay, journal: &journal}
	m.Push(DeathMenu, menu)
	m.Push(HUD, hud)

	m.RequestPop(DeathMenu)
	m.RequestPop(HUD)
	m.RequestPop(DeathMenu)
	if !m.CancelPop(DeathMenu) {
		t.Fatalf("expected a queued pop to cancel")
	}
	if m.PendingPop(DeathMenu) {
		t.Fatalf("expected every queued pop of death_menu withdrawn")
	}
	if !m.PendingPop(HUD) {
		t.Fatalf("expected other pops left queued")
	}
	if m.CancelPop(DeathMenu) {
		t.Fatalf("expected nothing left to cancel")
	}

	m.FlushPops()
	if menu.destroys != 0 || !m.Contains(DeathMenu) {
		t.Fatalf("expected death menu kept, destroys=%d", menu.destroys)
	}
	if hud.destroys != 1 || m.Contains(HUD) {
		t.Fatalf("expected hud popped, destroys=%d", hud.destroys)
	}
}

func TestPushDuringUpdateWaitsForNextPhase(t *testing.T) {
	m := newTestManager()
	var journal []string
	menu := &fakeLayer{name: "death", kind: Primary, journal: &journal}
	game := &fakeLayer{name: "game", kind: Primary, journal: &journal}
	game.onUpdate = func() {
		m.Suspend(Game)
		m.Push(DeathMenu, menu)
	}
	m.Push(Game, game)

	m.Frame(nil)
	want := []string{"game.poll", "game.update", "death.draw"}
	if !reflect.DeepEqual(journal, want) {
		t.Fatalf("expected %v, got %v", want, journal)
	}
	if ids := m.IDs(); !reflect.DeepEqual(ids, []ID{Game, DeathMenu}) {
		t.Fatalf("expected push order [game death_menu], got %v", ids)
	}
}

func TestUpdateErrorStopsPass(t *testing.T) {
	m := newTestManager()
	var journal []string
	boom := errors.New("boom")
	m.Push(Game, &fakeLayer{name: "game", kind: Primary, journal: &journal, err: boom})
	m.Push(HUD, &fakeLayer{name: "hud", kind: Overlay, journal: &journal})

	err := m.Update()
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if !reflect.DeepEqual(journal, []string{"game.update"}) {
		t.Fatalf("expected pass to stop at the failing layer, got %v", journal)
	}
}

func TestCloseDestroysEverything(t *testing.T) {
	m := newTestManager()
	var journal []string
	m.Push(Game, &fakeLayer{name: "game", kind: Primary, journal: &journal})
	m.Push(HUD, &fakeLayer{name: "hud", kind: Overlay, journal: &journal})
	m.RequestPop(HUD)
	m.Close()

	want := []string{"hud.destroy", "game.destroy"}
	if !reflect.DeepEqual(journal, want) {
		t.Fatalf("expected %v, got %v", want, journal)
	}
	m.FlushPops()
	if m.Len() != 0 || len(journal) != 2 {
		t.Fatalf("expected nothing left after close")
	}
}

func TestIDString(t *testing.T) {
	if Game.String() != "game" || ID(99).String() != "unknown" {
		t.Fatalf("unexpected id names %s %s", Game, ID(99))
	}
	if Overlay.String() != "overlay" {
		t.Fatalf("expected overlay, got %s", Overlay)
	}
}
