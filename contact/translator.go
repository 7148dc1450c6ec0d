package contact

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/milk9111/pawbs/event"
	"github.com/milk9111/pawbs/physics"
)

// ErrUntaggedSensor reports a sensor that fired without a tag. It means the
// map or prefab that created the sensor is broken.
var ErrUntaggedSensor = errors.New("sensor has no tag")

// Translator turns a physics step's sensor batch into tagged contact events.
type Translator struct {
	dispatcher *event.Dispatcher[Event]
	lookup     TagLookup
	logger     *log.Logger
}

// NewTranslator wires a dispatcher to the tag lookup used to name sensors.
func NewTranslator(d *event.Dispatcher[Event], lookup TagLookup, logger *log.Logger) *Translator {
	if logger == nil {
		logger = log.Default()
	}
	return &Translator{
		dispatcher: d,
		lookup:     lookup,
		logger:     logger.WithPrefix("contact"),
	}
}

// Translate dispatches every begin record, then every end record. An
// untagged sensor stops the batch: the offending record and everything after
// it are dropped and a wrapped ErrUntaggedSensor is returned.
func (t *Translator) Translate(batch physics.SensorEvents) error {
	if t == nil {
		return nil
	}
	if err := t.translate(batch.Begin, true); err != nil {
		return err
	}
	return t.translate(batch.End, false)
}

func (t *Translator) translate(touches []physics.SensorTouch, began bool) error {
	for _, touch := range touches {
		var (
			tag string
			ok  bool
		)
		if t.lookup != nil {
			tag, ok = t.lookup.Tag(touch.Sensor)
		}
		if !ok {
			t.logger.Error("untagged sensor fired", "shape", touch.Sensor, "began", began)
			return fmt.Errorf("contact: shape %d: %w", touch.Sensor, ErrUntaggedSensor)
		}
		t.dispatcher.Dispatch(tag, Event{
			Began: began,
			Shape: touch.Sensor,
			Other: touch.Other,
			Tag:   tag,
		})
	}
	return nil
}
