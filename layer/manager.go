package layer

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// ErrDuplicateLayer is returned by Push when the key is already taken.
	ErrDuplicateLayer = errors.New("layer already pushed")
	// ErrUnknownLayer is returned when a key is not on the stack.
	ErrUnknownLayer = errors.New("layer not on stack")
)

type entry struct {
	id      ID
	layer   Layer
	enabled bool
}

// Manager is the ordered layer stack. There is one per process; it is built
// at startup, passed to whoever needs it, and closed at exit.
//
// Layers are visited in push order. Pops are queued and only applied by
// FlushPops, which the frame loop calls once per tick between Draw and the
// next Update, so a layer is never destroyed while the stack is being walked.
type Manager struct {
	entries []*entry
	pops    []ID
	logger  *log.Logger
}

// NewManager creates an empty stack.
func NewManager(logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{logger: logger.WithPrefix("layers")}
}

// Push adds l enabled under id. A taken key is rejected and the existing
// layer is kept.
func (m *Manager) Push(id ID, l Layer) error {
	if m == nil || l == nil {
		return nil
	}
	if m.find(id) != nil {
		m.logger.Error("push rejected", "layer", id, "err", ErrDuplicateLayer)
		return fmt.Errorf("layers: push %s: %w", id, ErrDuplicateLayer)
	}
	m.entries = append(m.entries, &entry{id: id, layer: l, enabled: true})
	m.logger.Debug("pushed", "layer", id, "kind", l.Kind())
	return nil
}

// RequestPop queues id for removal at the next FlushPops.
func (m *Manager) RequestPop(id ID) {
	if m == nil {
		return
	}
	m.pops = append(m.pops, id)
}

// FlushPops destroys and removes every queued layer, in request order. Keys
// that are gone by then are logged and skipped.
func (m *Manager) FlushPops() {
	if m == nil || len(m.pops) == 0 {
		return
	}
	pops := m.pops
	m.pops = nil
	for _, id := range pops {
		idx := m.index(id)
		if idx < 0 {
			m.logger.Error("pop", "layer", id, "err", ErrUnknownLayer)
			continue
		}
		e := m.entries[idx]
		m.entries = append(m.entries[:idx:idx], m.entries[idx+1:]...)
		e.layer.Destroy()
		m.logger.Debug("popped", "layer", id)
	}
}

// CancelPop withdraws every queued pop of id and reports whether there was
// one. A layer revived before the flush uses it to stay on the stack.
func (m *Manager) CancelPop(id ID) bool {
	if m == nil || len(m.pops) == 0 {
		return false
	}
	kept := m.pops[:0]
	for _, p := range m.pops {
		if p != id {
			kept = append(kept, p)
		}
	}
	cancelled := len(kept) != len(m.pops)
	m.pops = kept
	if cancelled {
		m.logger.Debug("pop cancelled", "layer", id)
	}
	return cancelled
}

// PendingPop reports whether id is queued for removal.
func (m *Manager) PendingPop(id ID) bool {
	if m == nil {
		return false
	}
	for _, p := range m.pops {
		if p == id {
			return true
		}
	}
	return false
}

// Suspend stops polling, updating and drawing id without removing it.
func (m *Manager) Suspend(id ID) error {
	return m.setEnabled(id, false, "suspend")
}

// Resume re-enables a suspended layer.
func (m *Manager) Resume(id ID) error {
	return m.setEnabled(id, true, "resume")
}

func (m *Manager) setEnabled(id ID, enabled bool, op string) error {
	if m == nil {
		return nil
	}
	e := m.find(id)
	if e == nil {
		m.logger.Error(op, "layer", id, "err", ErrUnknownLayer)
		return fmt.Errorf("layers: %s %s: %w", op, id, ErrUnknownLayer)
	}
	e.enabled = enabled
	return nil
}

// SuspendOverlays suspends every overlay layer.
func (m *Manager) SuspendOverlays() {
	m.setOverlays(false)
}

// ResumeOverlays resumes every overlay layer.
func (m *Manager) ResumeOverlays() {
	m.setOverlays(true)
}

func (m *Manager) setOverlays(enabled bool) {
	if m == nil {
		return
	}
	for _, e := range m.entries {
		if e.layer.Kind() == Overlay {
			e.enabled = enabled
		}
	}
}

// Contains reports whether id is on the stack, enabled or not.
func (m *Manager) Contains(id ID) bool {
	return m.find(id) != nil
}

// Enabled reports whether id is on the stack and enabled.
func (m *Manager) Enabled(id ID) bool {
	e := m.find(id)
	return e != nil && e.enabled
}

// Get returns the layer pushed under id.
func (m *Manager) Get(id ID) (Layer, bool) {
	e := m.find(id)
	if e == nil {
		return nil, false
	}
	return e.layer, true
}

// IDs returns the keys on the stack in push order.
func (m *Manager) IDs() []ID {
	if m == nil {
		return nil
	}
	ids := make([]ID, 0, len(m.entries))
	for _, e := range m.entries {
		ids = append(ids, e.id)
	}
	return ids
}

// Len returns the number of layers on the stack.
func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// PollEvents polls every enabled layer.
func (m *Manager) PollEvents() {
	for _, e := range m.snapshot() {
		if e.enabled {
			e.layer.PollEvents()
		}
	}
}

// Update updates every enabled layer. The enabled flag is read as each layer
// is reached, so a layer suspended earlier in the pass is skipped. The first
// error stops the pass and is returned.
func (m *Manager) Update() error {
	for _, e := range m.snapshot() {
		if !e.enabled {
			continue
		}
		if err := e.layer.Update(); err != nil {
			return fmt.Errorf("layers: update %s: %w", e.id, err)
		}
	}
	return nil
}

// Draw draws enabled primaries, then enabled overlays.
func (m *Manager) Draw(screen *ebiten.Image) {
	entries := m.snapshot()
	for _, kind := range []Kind{Primary, Overlay} {
		for _, e := range entries {
			if e.enabled && e.layer.Kind() == kind {
				e.layer.Draw(screen)
			}
		}
	}
}

// Frame runs one full frame: poll, update, draw, then flush pops. Pops are
// flushed even when update fails.
func (m *Manager) Frame(screen *ebiten.Image) error {
	m.PollEvents()
	err := m.Update()
	if err == nil {
		m.Draw(screen)
	}
	m.FlushPops()
	return err
}

// Close destroys every remaining layer, most recent first, and drops queued
// pops.
func (m *Manager) Close() {
	if m == nil {
		return
	}
	for i := len(m.entries) - 1; i >= 0; i-- {
		m.entries[i].layer.Destroy()
	}
	m.entries = nil
	m.pops = nil
}

// snapshot copies the entry list so pushes made by a layer show up from the
// next phase on.
func (m *Manager) snapshot() []*entry {
	if m == nil || len(m.entries) == 0 {
		return nil
	}
	out := make([]*entry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *Manager) find(id ID) *entry {
	idx := m.index(id)
	if idx < 0 {
		return nil
	}
	return m.entries[idx]
}

func (m *Manager) index(id ID) int {
	if m == nil {
		return -1
	}
	for i, e := range m.entries {
		if e.id == id {
			return i
		}
	}
	return -1
}
