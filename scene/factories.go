package scene

import "github.com/milk9111/pawbs/layer"

// Factories build the layers a Session pushes. Any nil entry falls back to
// the default, which for menus includes the ebitenui widgets.
type Factories struct {
	StartMenu       func(s *Session) layer.Layer
	Game            func(s *Session) layer.Layer
	DeathMenu       func(s *Session) layer.Layer
	CheckpointAlert func(s *Session) layer.Layer
	HUD             func(s *Session) layer.Layer
}

// DefaultFactories returns the layers used by the real game.
func DefaultFactories() Factories {
	return Factories{
		StartMenu: func(s *Session) layer.Layer {
			return NewStartMenuLayer(s, newStartMenuUI(s.Spec.Title, s.BeginGame, s.Quit))
		},
		Game: func(s *Session) layer.Layer { return NewGameLayer(s) },
		DeathMenu: func(s *Session) layer.Layer {
			return NewDeathMenuLayer(s, newDeathMenuUI(s.Continue, s.Quit))
		},
		CheckpointAlert: func(s *Session) layer.Layer { return NewCheckpointAlertLayer(s) },
		HUD:             func(s *Session) layer.Layer { return NewHUD(s) },
	}
}

func (f Factories) withDefaults() Factories {
	d := DefaultFactories()
	if f.StartMenu == nil {
		f.StartMenu = d.StartMenu
	}
	if f.Game == nil {
		f.Game = d.Game
	}
	if f.DeathMenu == nil {
		f.DeathMenu = d.DeathMenu
	}
	if f.CheckpointAlert == nil {
		f.CheckpointAlert = d.CheckpointAlert
	}
	if f.HUD == nil {
		f.HUD = d.HUD
	}
	return f
}
