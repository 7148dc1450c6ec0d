package scene

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/milk9111/pawbs/common"
	"github.com/milk9111/pawbs/contact"
	"github.com/milk9111/pawbs/entity"
	"github.com/milk9111/pawbs/event"
	"github.com/milk9111/pawbs/input"
	"github.com/milk9111/pawbs/layer"
	"github.com/milk9111/pawbs/level"
	"github.com/milk9111/pawbs/physics"
	"github.com/milk9111/pawbs/prefabs"
	"github.com/milk9111/pawbs/save"
)

// Options configures a Session.
type Options struct {
	Map     *level.Map
	Game    prefabs.GameSpec
	Player  prefabs.PlayerSpec
	Camera  prefabs.CameraSpec
	Saves   *save.Store
	Watcher *prefabs.Watcher
	// Input defaults to input.Poll.
	Input     input.Source
	Factories Factories
	// Fresh ignores the saved checkpoint.
	Fresh  bool
	Debug  bool
	Logger *log.Logger
}

// Session is the process-wide game context. It owns the layer stack and,
// once the game starts, the physics world, level and player.
type Session struct {
	Layers   *layer.Manager
	Contacts *event.Dispatcher[contact.Event]

	Map        *level.Map
	World      *physics.World
	Level      *level.Instance
	Player     *entity.Player
	Camera     *entity.Camera
	Translator *contact.Translator

	Saves     *save.Store
	Watcher   *prefabs.Watcher
	Input     input.Source
	Factories Factories
	Spec      prefabs.GameSpec
	Debug     bool

	playerSpec prefabs.PlayerSpec
	cameraSpec prefabs.CameraSpec
	respawn    save.Checkpoint
	lastTag    string
	gameFrames int
	quitting   bool
	logger     *log.Logger
}

// NewSession creates the layer stack and picks the player's starting point:
// the saved checkpoint when it belongs to this map, otherwise the map spawn.
func NewSession(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	src := opts.Input
	if src == nil {
		src = input.Poll
	}
	s := &Session{
		Layers:     layer.NewManager(logger),
		Contacts:   event.NewDispatcher[contact.Event](),
		Map:        opts.Map,
		Saves:      opts.Saves,
		Watcher:    opts.Watcher,
		Input:      src,
		Factories:  opts.Factories.withDefaults(),
		Spec:       opts.Game.WithDefaults(),
		Debug:      opts.Debug,
		playerSpec: opts.Player.WithDefaults(),
		cameraSpec: opts.Camera.WithDefaults(),
		logger:     logger.WithPrefix("session"),
	}
	s.respawn = s.startingPoint(opts.Fresh)
	return s
}

func (s *Session) startingPoint(fresh bool) save.Checkpoint {
	var spawn save.Checkpoint
	if s.Map != nil {
		spawn.MapPath = s.Map.Path
		spawn.X, spawn.Y = s.Map.SpawnX, s.Map.SpawnY
		if !s.Map.HasSpawn {
			w, h := s.Map.PixelSize()
			spawn.X, spawn.Y = w/2, h/2
		}
	}
	if fresh {
		return spawn
	}
	cp, err := s.Saves.Load()
	switch {
	case errors.Is(err, save.ErrNoCheckpoint):
		return spawn
	case err != nil:
		s.logger.Warn("could not load checkpoint", "err", err)
		return spawn
	case cp.MapPath != spawn.MapPath:
		s.logger.Info("saved checkpoint is for another map", "saved", cp.MapPath, "map", spawn.MapPath)
		return spawn
	}
	s.logger.Info("resuming from checkpoint", "x", cp.X, "y", cp.Y)
	return cp
}

// Start pushes the start menu.
func (s *Session) Start() {
	s.Layers.Push(layer.StartMenu, s.Factories.StartMenu(s))
}

// BeginGame builds the world and player, installs the contact subscriptions
// and swaps the start menu for the game and HUD layers.
func (s *Session) BeginGame() {
	if s.World != nil {
		return
	}
	s.World = physics.NewWorld(physics.Config{
		Gravity:    s.Spec.Gravity,
		Iterations: s.Spec.Iterations,
	}, s.logger)
	s.Level = level.Build(s.Map, s.World, s.logger)
	s.Level.SetPalette(level.Palette{
		Solid:      prefabs.ColorOr(s.Spec.Colors.Solid, nil),
		Hazard:     prefabs.ColorOr(s.Spec.Colors.Hazard, nil),
		Checkpoint: prefabs.ColorOr(s.Spec.Colors.Checkpoint, nil),
	})

	s.Player = entity.NewPlayer(s.World, s.playerSpec, s.respawn.X, s.respawn.Y, s.logger)
	if c := prefabs.ColorOr(s.Spec.Colors.Player, nil); c != nil {
		s.Player.Color = c
	}
	s.Camera = entity.NewCamera(common.BaseWidth, common.BaseHeight, s.cameraSpec)
	s.Camera.SetWorldBounds(s.Map.PixelSize())
	s.Camera.SnapTo(s.respawn.X, s.respawn.Y)

	s.Translator = contact.NewTranslator(s.Contacts, contact.Lookups{s.Level.Tags(), s.Player.Tags()}, s.logger)
	s.subscribe()

	if s.Layers.Contains(layer.StartMenu) {
		s.Layers.RequestPop(layer.StartMenu)
	}
	s.Layers.Push(layer.Game, s.Factories.Game(s))
	s.Layers.Push(layer.HUD, s.Factories.HUD(s))
}

func (s *Session) subscribe() {
	s.Contacts.Subscribe("trace", event.Prefix(""), func(evt contact.Event) {
		s.logger.Debug("contact", "tag", evt.Tag, "began", evt.Began, "shape", evt.Shape)
	})
	s.Player.Subscribe(s.Contacts)
	s.Contacts.Subscribe(level.HazardPrefix, event.Contains(level.HazardPrefix), func(evt contact.Event) {
		if evt.Began {
			s.Kill()
		}
	})
	for _, cp := range s.Level.Checkpoints() {
		s.Contacts.Subscribe(cp.Tag, nil, s.onCheckpoint)
	}
}

// onCheckpoint saves the player's position, then retires the checkpoint:
// its sensor and subscription are removed so it fires once.
func (s *Session) onCheckpoint(evt contact.Event) {
	if !evt.Began || s.Player.Dead() {
		return
	}
	x, y := s.Player.Center()
	s.respawn = save.Checkpoint{MapPath: s.Map.Path, X: x, Y: y}
	if err := s.Saves.Save(s.respawn); err != nil {
		s.logger.Error("checkpoint not saved", "tag", evt.Tag, "err", err)
	}
	s.Level.DisableCheckpoint(evt.Tag)
	s.Contacts.Unsubscribe(evt.Tag)
	s.lastTag = evt.Tag
	s.showAlert()
}

func (s *Session) showAlert() {
	s.Layers.CancelPop(layer.CheckpointAlert)
	if !s.Layers.Contains(layer.CheckpointAlert) {
		s.Layers.Push(layer.CheckpointAlert, s.Factories.CheckpointAlert(s))
		return
	}
	if l, ok := s.Layers.Get(layer.CheckpointAlert); ok {
		if r, ok := l.(restarter); ok {
			r.Restart()
		}
	}
	s.Layers.Resume(layer.CheckpointAlert)
}

// restarter is implemented by layers that replay an animation when reused.
type restarter interface {
	Restart()
}

// Kill moves the player to the dead state: the game layer and every overlay
// are suspended and the death menu is pushed, or resumed if it is already
// on the stack. A death menu still queued for removal by Continue is kept.
func (s *Session) Kill() {
	if s.Player == nil {
		return
	}
	if !s.Player.Dead() {
		s.logger.Info("player died")
	}
	s.Player.SetDead(true)
	s.Layers.Suspend(layer.Game)
	s.Layers.SuspendOverlays()
	s.Layers.CancelPop(layer.DeathMenu)
	if s.Layers.Contains(layer.DeathMenu) {
		if l, ok := s.Layers.Get(layer.DeathMenu); ok {
			if r, ok := l.(restarter); ok {
				r.Restart()
			}
		}
		s.Layers.Resume(layer.DeathMenu)
		return
	}
	s.Layers.Push(layer.DeathMenu, s.Factories.DeathMenu(s))
}

// Continue brings the player back at the last checkpoint.
func (s *Session) Continue() {
	if s.Player == nil || !s.Player.Dead() {
		return
	}
	s.Layers.Resume(layer.Game)
	s.Layers.ResumeOverlays()
	s.Layers.RequestPop(layer.DeathMenu)
	s.Player.Teleport(s.respawn.X, s.respawn.Y)
	s.Player.SetDead(false)
	s.Camera.SnapTo(s.respawn.X, s.respawn.Y)
	s.logger.Info("respawned", "x", s.respawn.X, "y", s.respawn.Y)
}

// Dead reports whether the player is dead.
func (s *Session) Dead() bool {
	return s.Player.Dead()
}

// Respawn returns where Continue will place the player.
func (s *Session) Respawn() save.Checkpoint {
	return s.respawn
}

// LastCheckpoint returns the tag of the most recent checkpoint reached.
func (s *Session) LastCheckpoint() string {
	return s.lastTag
}

// GameFrames counts game layer updates.
func (s *Session) GameFrames() int {
	return s.gameFrames
}

// Quit asks the frame loop to stop.
func (s *Session) Quit() {
	s.quitting = true
}

func (s *Session) Quitting() bool {
	return s.quitting
}

// ApplySpec hot-reloads a changed spec file by name.
func (s *Session) ApplySpec(name string) {
	switch name {
	case prefabs.PlayerSpecFile:
		spec, err := prefabs.LoadSpec[prefabs.PlayerSpec](name)
		if err != nil {
			s.logger.Error("reload", "spec", name, "err", err)
			return
		}
		s.playerSpec = spec.WithDefaults()
		s.Player.Apply(s.playerSpec)
	case prefabs.CameraSpecFile:
		spec, err := prefabs.LoadSpec[prefabs.CameraSpec](name)
		if err != nil {
			s.logger.Error("reload", "spec", name, "err", err)
			return
		}
		s.cameraSpec = spec.WithDefaults()
		s.Camera.Apply(s.cameraSpec)
	default:
		s.logger.Info("spec changed, restart to apply", "spec", name)
		return
	}
	s.logger.Info("reloaded", "spec", name)
}

// Close destroys every layer and stops the watcher.
func (s *Session) Close() {
	s.Layers.Close()
	if err := s.Watcher.Close(); err != nil {
		s.logger.Warn("watcher close", "err", err)
	}
}
