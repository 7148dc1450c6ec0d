package level

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/pawbs/contact"
	"github.com/milk9111/pawbs/physics"
)

// Tag prefixes for level sensors. Each sensor gets a numbered tag such as
// MurderBox3.
const (
	HazardPrefix     = "MurderBox"
	CheckpointPrefix = "Checkpoint"
)

// Sensor is a tagged trigger volume created from a map object.
type Sensor struct {
	Tag    string
	Handle physics.ShapeHandle
	Rect
	Active bool
}

// Palette colors the level when drawn.
type Palette struct {
	Solid      color.Color
	Hazard     color.Color
	Checkpoint color.Color
}

// DefaultPalette is used for colors a caller leaves nil.
var DefaultPalette = Palette{
	Solid:      color.NRGBA{R: 0x3b, G: 0x4a, B: 0x6b, A: 0xff},
	Hazard:     color.NRGBA{R: 0xd9, G: 0x46, B: 0x3e, A: 0xff},
	Checkpoint: color.NRGBA{R: 0xf2, G: 0xc9, B: 0x4c, A: 0xff},
}

// Instance is a map built into a physics world. It owns the tags of the
// sensors it created.
type Instance struct {
	Map *Map

	world       *physics.World
	tags        *contact.TagRegistry
	solids      []Rect
	hazards     []*Sensor
	checkpoints []*Sensor
	palette     Palette
	logger      *log.Logger
}

// Build adds the map's solids, bounds and sensors to world. Objects with a
// non-positive size are logged and skipped.
func Build(m *Map, world *physics.World, logger *log.Logger) *Instance {
	if logger == nil {
		logger = log.Default()
	}
	inst := &Instance{
		Map:     m,
		world:   world,
		tags:    contact.NewTagRegistry(),
		palette: DefaultPalette,
		logger:  logger.WithPrefix("level"),
	}
	if m == nil {
		return inst
	}

	tw, th := float64(m.TileWidth), float64(m.TileHeight)
	for _, r := range MergeSolids(m.Solid, m.Width, m.Height) {
		rect := Rect{X: float64(r.X) * tw, Y: float64(r.Y) * th, W: float64(r.W) * tw, H: float64(r.H) * th}
		if world.AddStaticBox(physics.BB(rect)) == 0 {
			continue
		}
		inst.solids = append(inst.solids, rect)
	}

	w, h := m.PixelSize()
	world.AddBounds(w, h)

	inst.hazards = inst.addSensors(m.Hazards, HazardPrefix)
	inst.checkpoints = inst.addSensors(m.Checkpoints, CheckpointPrefix)

	inst.logger.Info("built", "map", m.Path, "solids", len(inst.solids),
		"hazards", len(inst.hazards), "checkpoints", len(inst.checkpoints))
	return inst
}

func (inst *Instance) addSensors(objects []Object, prefix string) []*Sensor {
	var out []*Sensor
	for _, o := range objects {
		if o.W <= 0 || o.H <= 0 {
			inst.logger.Error("skipping degenerate object", "kind", prefix, "name", o.Name,
				"w", o.W, "h", o.H)
			continue
		}
		h := inst.world.AddStaticSensor(physics.BB(o.Rect))
		if h == 0 {
			continue
		}
		tag := inst.tags.Next(prefix)
		inst.tags.Register(h, tag)
		out = append(out, &Sensor{Tag: tag, Handle: h, Rect: o.Rect, Active: true})
	}
	return out
}

// Tags returns the registry naming this level's sensors.
func (inst *Instance) Tags() *contact.TagRegistry {
	if inst == nil {
		return nil
	}
	return inst.tags
}

// Spawn returns the player spawn, or the middle of the map when the file has
// none.
func (inst *Instance) Spawn() (float64, float64) {
	if inst == nil || inst.Map == nil {
		return 0, 0
	}
	if inst.Map.HasSpawn {
		return inst.Map.SpawnX, inst.Map.SpawnY
	}
	w, h := inst.Map.PixelSize()
	return w / 2, h / 2
}

// Hazards returns the hazard sensors.
func (inst *Instance) Hazards() []*Sensor {
	if inst == nil {
		return nil
	}
	return inst.hazards
}

// Checkpoints returns the checkpoint sensors, consumed ones included.
func (inst *Instance) Checkpoints() []*Sensor {
	if inst == nil {
		return nil
	}
	return inst.checkpoints
}

// DisableCheckpoint removes the checkpoint tagged tag from the world and
// forgets its tag. It reports whether a live checkpoint was disabled.
func (inst *Instance) DisableCheckpoint(tag string) bool {
	if inst == nil {
		return false
	}
	for _, cp := range inst.checkpoints {
		if cp.Tag != tag || !cp.Active {
			continue
		}
		inst.world.RemoveShape(cp.Handle)
		inst.tags.Forget(cp.Handle)
		cp.Active = false
		inst.logger.Debug("checkpoint disabled", "tag", tag)
		return true
	}
	return false
}

// SetPalette overrides the draw colors. Nil fields keep their default.
func (inst *Instance) SetPalette(p Palette) {
	if inst == nil {
		return
	}
	if p.Solid != nil {
		inst.palette.Solid = p.Solid
	}
	if p.Hazard != nil {
		inst.palette.Hazard = p.Hazard
	}
	if p.Checkpoint != nil {
		inst.palette.Checkpoint = p.Checkpoint
	}
}

// Draw renders solids and sensors as flat rectangles offset by the camera.
func (inst *Instance) Draw(screen *ebiten.Image, camX, camY float64) {
	if inst == nil || screen == nil {
		return
	}
	for _, r := range inst.solids {
		fill(screen, r, camX, camY, inst.palette.Solid)
	}
	for _, hz := range inst.hazards {
		fill(screen, hz.Rect, camX, camY, inst.palette.Hazard)
	}
	for _, cp := range inst.checkpoints {
		if !cp.Active {
			continue
		}
		outline(screen, cp.Rect, camX, camY, inst.palette.Checkpoint)
	}
}

func outline(screen *ebiten.Image, r Rect, camX, camY float64, clr color.Color) {
	x, y := float32(r.X-camX), float32(r.Y-camY)
	w, h := float32(r.W), float32(r.H)
	vector.FillRect(screen, x, y, w, 2, clr, false)     // top
	vector.FillRect(screen, x, y+h-2, w, 2, clr, false) // bottom
	vector.FillRect(screen, x, y, 2, h, clr, false)     // left
	vector.FillRect(screen, x+w-2, y, 2, h, clr, false) // right
}

func fill(screen *ebiten.Image, r Rect, camX, camY float64, clr color.Color) {
	vector.FillRect(screen, float32(r.X-camX), float32(r.Y-camY), float32(r.W), float32(r.H), clr, false)
}
