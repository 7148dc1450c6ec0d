package contact

import "github.com/milk9111/pawbs/physics"

// Event is a begin or end touch on a tagged sensor, redispatched from the
// physics step's sensor batch.
type Event struct {
	Began bool
	// Shape is the sensor that fired. Handlers use it for lookups only.
	Shape physics.ShapeHandle
	// Other is the non-sensor shape that entered or left the sensor.
	Other physics.ShapeHandle
	Tag   string
}
