package entity

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/pawbs/contact"
	"github.com/milk9111/pawbs/event"
	"github.com/milk9111/pawbs/input"
	"github.com/milk9111/pawbs/physics"
	"github.com/milk9111/pawbs/prefabs"
)

// FootTag names the player's ground sensor.
const FootTag = "pawbs"

// Player is the controllable character: a fixed-rotation body with a foot
// sensor whose begin/end contacts feed Ground.
type Player struct {
	Body  physics.BodyHandle
	Shape physics.ShapeHandle
	Foot  physics.ShapeHandle

	Ground   contact.GroundContacts
	Movement Movement

	Width  float64
	Height float64
	Color  color.Color

	world  *physics.World
	tags   *contact.TagRegistry
	dead   bool
	logger *log.Logger
}

// NewPlayer creates the player body centered at (x, y).
func NewPlayer(world *physics.World, spec prefabs.PlayerSpec, x, y float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	spec = spec.WithDefaults()
	p := &Player{
		Movement: NewMovement(spec),
		Width:    spec.Width,
		Height:   spec.Height,
		Color:    color.White,
		world:    world,
		tags:     contact.NewTagRegistry(),
		logger:   logger.WithPrefix("player"),
	}
	p.Body, p.Shape = world.AddDynamicBox(x, y, spec.Width, spec.Height, spec.Mass, 0)
	p.Foot = world.AddBodySensor(p.Body, physics.BB{
		X: -spec.Width/2 + 2,
		Y: spec.Height / 2,
		W: spec.Width - 4,
		H: spec.FootHeight,
	})
	p.tags.Register(p.Foot, FootTag)
	return p
}

// Tags returns the registry naming the player's sensors.
func (p *Player) Tags() *contact.TagRegistry {
	if p == nil {
		return nil
	}
	return p.tags
}

// Subscribe routes foot sensor contacts into Ground.
func (p *Player) Subscribe(d *event.Dispatcher[contact.Event]) {
	if p == nil {
		return
	}
	d.Subscribe(FootTag, event.Exact(FootTag), func(evt contact.Event) {
		if evt.Shape != p.Foot {
			return
		}
		p.Ground.Handle(evt)
	})
}

// Update applies one frame of input.
func (p *Player) Update(in input.State) {
	if p == nil || p.dead {
		return
	}
	vx, vy := p.world.Velocity(p.Body)
	vx, vy = p.Movement.Step(in, p.Ground.OnGround(), vx, vy)
	p.world.SetVelocity(p.Body, vx, vy)
}

// Center returns the body's position.
func (p *Player) Center() (float64, float64) {
	if p == nil {
		return 0, 0
	}
	return p.world.Position(p.Body)
}

// Teleport moves the body with zero rotation and velocity. Ground contacts
// are left to the engine, which reports the separations on the next step.
func (p *Player) Teleport(x, y float64) {
	if p == nil {
		return
	}
	p.world.Teleport(p.Body, x, y)
	p.Movement.Reset()
	p.logger.Debug("teleported", "x", x, "y", y)
}

func (p *Player) Dead() bool {
	return p != nil && p.dead
}

func (p *Player) SetDead(dead bool) {
	if p == nil {
		return
	}
	p.dead = dead
}

// Apply hot-reloads movement tuning.
func (p *Player) Apply(spec prefabs.PlayerSpec) {
	if p == nil {
		return
	}
	p.Movement.Apply(spec)
}

func (p *Player) Draw(screen *ebiten.Image, camX, camY float64) {
	if p == nil || screen == nil {
		return
	}
	x, y := p.Center()
	vector.FillRect(screen,
		float32(x-p.Width/2-camX), float32(y-p.Height/2-camY),
		float32(p.Width), float32(p.Height), p.Color, false)
	// eye on the facing side
	eyeX := x + p.Width/4 - camX
	if !p.Movement.FacingRight {
		eyeX = x - p.Width/4 - 3 - camX
	}
	vector.FillRect(screen, float32(eyeX), float32(y-p.Height/4-camY), 3, 3, color.Black, false)
}
