package layer

import "github.com/hajimehoshi/ebiten/v2"

// Kind is a layer's draw class. Overlays always render after every primary.
type Kind int

const (
	Primary Kind = iota
	Overlay
)

func (k Kind) String() string {
	switch k {
	case Primary:
		return "primary"
	case Overlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// ID keys a layer in the Manager.
type ID int

const (
	StartMenu ID = iota
	Game
	DeathMenu
	CheckpointAlert
	HUD
)

func (id ID) String() string {
	switch id {
	case StartMenu:
		return "start_menu"
	case Game:
		return "game"
	case DeathMenu:
		return "death_menu"
	case CheckpointAlert:
		return "checkpoint_alert"
	case HUD:
		return "hud"
	default:
		return "unknown"
	}
}

// Layer is one unit of the state stack. The Manager owns a layer from Push
// until its pop is flushed, and only calls PollEvents, Update and Draw while
// the layer is enabled.
type Layer interface {
	Kind() Kind
	PollEvents()
	// Update advances the layer by one frame. A non-nil error is fatal.
	Update() error
	Draw(screen *ebiten.Image)
	// Destroy runs exactly once, when the layer's pop is flushed or the
	// Manager is closed.
	Destroy()
}
