package physics

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeSensor
	collisionTypeBody
)

// ShapeHandle identifies a shape owned by a World. The zero value is invalid.
type ShapeHandle uint64

// BodyHandle identifies a dynamic body owned by a World. The zero value is invalid.
type BodyHandle uint64

// Config tunes the Chipmunk space.
type Config struct {
	// Gravity in pixels/s^2, positive is screen-down.
	Gravity    float64
	Iterations int
}

// BB is an axis-aligned box in world pixels, top-left origin.
type BB struct {
	X, Y, W, H float64
}

// SensorTouch is one begin or end overlap between a sensor shape and a
// non-sensor shape.
type SensorTouch struct {
	Sensor ShapeHandle
	Other  ShapeHandle
}

// SensorEvents is the batch of sensor touches produced by one Step.
type SensorEvents struct {
	Begin []SensorTouch
	End   []SensorTouch
}

// Len returns the total number of records in the batch.
func (e SensorEvents) Len() int {
	return len(e.Begin) + len(e.End)
}

// World owns the Chipmunk space and hands out opaque handles for its shapes
// and bodies. Callers never see cp types.
type World struct {
	space  *cp.Space
	logger *log.Logger

	nextHandle uint64
	shapes     map[ShapeHandle]*cp.Shape
	shapeIDs   map[*cp.Shape]ShapeHandle
	bodies     map[BodyHandle]*cp.Body

	// pending collects touches reported by collision callbacks until the next
	// Step publishes them as events.
	pending SensorEvents
	events  SensorEvents
}

// NewWorld creates an empty space with a sensor-touch recorder installed.
func NewWorld(cfg Config, logger *log.Logger) *World {
	if logger == nil {
		logger = log.Default()
	}
	space := cp.NewSpace()
	iterations := cfg.Iterations
	if iterations <= 0 {
		iterations = 20
	}
	space.Iterations = uint(iterations)
	space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})

	w := &World{
		space:    space,
		logger:   logger.WithPrefix("physics"),
		shapes:   make(map[ShapeHandle]*cp.Shape),
		shapeIDs: make(map[*cp.Shape]ShapeHandle),
		bodies:   make(map[BodyHandle]*cp.Body),
	}
	w.setupHandlers()
	return w
}

func (w *World) setupHandlers() {
	sensorHandler := w.space.NewWildcardCollisionHandler(collisionTypeSensor)
	sensorHandler.UserData = w
	sensorHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return true
		}
		world.recordTouch(arb, true)
		return true
	}
	sensorHandler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		world, ok := userData.(*World)
		if !ok || world == nil {
			return
		}
		world.recordTouch(arb, false)
	}
}

func (w *World) recordTouch(arb *cp.Arbiter, began bool) {
	a, b := arb.Shapes()
	if a == nil || b == nil {
		return
	}
	// sensor-sensor and solid-solid pairs are not touches
	if a.Sensor() == b.Sensor() {
		return
	}
	sensor, other := a, b
	if !a.Sensor() {
		sensor, other = b, a
	}
	touch := SensorTouch{Sensor: w.shapeIDs[sensor], Other: w.shapeIDs[other]}
	if began {
		w.pending.Begin = append(w.pending.Begin, touch)
	} else {
		w.pending.End = append(w.pending.End, touch)
	}
}

// Step advances the simulation by dt seconds and publishes the touches
// recorded since the previous Step.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil {
		return
	}
	w.space.Step(dt)
	w.events = w.pending
	w.pending = SensorEvents{}
}

// SensorEvents returns the batch published by the most recent Step.
func (w *World) SensorEvents() SensorEvents {
	if w == nil {
		return SensorEvents{}
	}
	return w.events
}

func (w *World) addShape(shape *cp.Shape) ShapeHandle {
	w.space.AddShape(shape)
	w.nextHandle++
	h := ShapeHandle(w.nextHandle)
	w.shapes[h] = shape
	w.shapeIDs[shape] = h
	return h
}

// AddStaticBox adds solid level geometry.
func (w *World) AddStaticBox(bb BB) ShapeHandle {
	if w == nil || w.space == nil || bb.W <= 0 || bb.H <= 0 {
		return 0
	}
	shape := cp.NewBox2(w.space.StaticBody, toCP(bb), 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	return w.addShape(shape)
}

// AddStaticSensor adds a trigger volume fixed in the level.
func (w *World) AddStaticSensor(bb BB) ShapeHandle {
	if w == nil || w.space == nil || bb.W <= 0 || bb.H <= 0 {
		return 0
	}
	shape := cp.NewBox2(w.space.StaticBody, toCP(bb), 0)
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeSensor)
	return w.addShape(shape)
}

// AddBounds walls off the world rectangle [0,width]x[0,height].
func (w *World) AddBounds(width, height float64) []ShapeHandle {
	if w == nil || w.space == nil || width <= 0 || height <= 0 {
		return nil
	}
	thickness := 1.0
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: width, Y: 0}},           // top
		{a: cp.Vector{X: 0, Y: height}, b: cp.Vector{X: width, Y: height}}, // bottom
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: height}},          // left
		{a: cp.Vector{X: width, Y: 0}, b: cp.Vector{X: width, Y: height}},  // right
	}
	handles := make([]ShapeHandle, 0, len(segments))
	for _, seg := range segments {
		shape := cp.NewSegment(w.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		handles = append(handles, w.addShape(shape))
	}
	return handles
}

// AddDynamicBox creates a fixed-rotation box body centered at (cx, cy).
func (w *World) AddDynamicBox(cx, cy, width, height, mass, friction float64) (BodyHandle, ShapeHandle) {
	if w == nil || w.space == nil || width <= 0 || height <= 0 {
		return 0, 0
	}
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: cx, Y: cy})
	body.SetAngle(0)
	body.SetAngularVelocity(0)
	w.space.AddBody(body)

	w.nextHandle++
	bh := BodyHandle(w.nextHandle)
	w.bodies[bh] = body

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(friction)
	shape.SetCollisionType(collisionTypeBody)
	return bh, w.addShape(shape)
}

// AddBodySensor attaches a sensor to a body. bb is relative to the body's
// center.
func (w *World) AddBodySensor(b BodyHandle, bb BB) ShapeHandle {
	if w == nil || w.space == nil || bb.W <= 0 || bb.H <= 0 {
		return 0
	}
	body, ok := w.bodies[b]
	if !ok {
		w.logger.Error("sensor for unknown body", "body", b)
		return 0
	}
	shape := cp.NewBox2(body, toCP(bb), 0)
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeSensor)
	return w.addShape(shape)
}

// RemoveShape takes a shape out of the simulation. Touches it reported that
// have not been published yet are dropped, so a removed sensor goes quiet
// rather than emitting a final end record.
func (w *World) RemoveShape(h ShapeHandle) {
	if w == nil || w.space == nil {
		return
	}
	shape, ok := w.shapes[h]
	if !ok {
		w.logger.Error("remove unknown shape", "shape", h)
		return
	}
	w.space.RemoveShape(shape)
	delete(w.shapes, h)
	delete(w.shapeIDs, shape)
	w.pending.Begin = dropTouches(w.pending.Begin, h)
	w.pending.End = dropTouches(w.pending.End, h)
}

func dropTouches(touches []SensorTouch, h ShapeHandle) []SensorTouch {
	kept := touches[:0]
	for _, t := range touches {
		if t.Sensor == h || t.Other == h {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}

// HasShape reports whether h is live.
func (w *World) HasShape(h ShapeHandle) bool {
	if w == nil {
		return false
	}
	_, ok := w.shapes[h]
	return ok
}

// IsSensor reports whether h is a live sensor shape.
func (w *World) IsSensor(h ShapeHandle) bool {
	if w == nil {
		return false
	}
	shape, ok := w.shapes[h]
	return ok && shape.Sensor()
}

// Position returns the body's center.
func (w *World) Position(b BodyHandle) (float64, float64) {
	body := w.body(b)
	if body == nil {
		return 0, 0
	}
	p := body.Position()
	return p.X, p.Y
}

// Angle returns the body's rotation in radians.
func (w *World) Angle(b BodyHandle) float64 {
	body := w.body(b)
	if body == nil {
		return 0
	}
	return body.Angle()
}

// Velocity returns the body's linear velocity.
func (w *World) Velocity(b BodyHandle) (float64, float64) {
	body := w.body(b)
	if body == nil {
		return 0, 0
	}
	v := body.Velocity()
	return v.X, v.Y
}

// SetVelocity overwrites the body's linear velocity.
func (w *World) SetVelocity(b BodyHandle, vx, vy float64) {
	body := w.body(b)
	if body == nil {
		return
	}
	body.SetVelocity(vx, vy)
}

// Teleport moves the body's center to (x, y) with zero rotation and no
// residual motion.
func (w *World) Teleport(b BodyHandle, x, y float64) {
	body := w.body(b)
	if body == nil {
		return
	}
	body.SetPosition(cp.Vector{X: x, Y: y})
	body.SetAngle(0)
	body.SetVelocityVector(cp.Vector{})
	body.SetAngularVelocity(0)
}

func (w *World) body(b BodyHandle) *cp.Body {
	if w == nil {
		return nil
	}
	body, ok := w.bodies[b]
	if !ok {
		return nil
	}
	return body
}

func toCP(bb BB) cp.BB {
	return cp.BB{L: bb.X, B: bb.Y, R: bb.X + bb.W, T: bb.Y + bb.H}
}
