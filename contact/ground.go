package contact

// GroundContacts counts overlapping ground touches on a foot sensor. Standing
// across two tiles yields two begins; leaving one of them must not report the
// entity as airborne.
type GroundContacts struct {
	count int
}

// Add records a begin touch.
func (g *GroundContacts) Add() {
	if g == nil {
		return
	}
	g.count++
}

// Remove records an end touch. The count saturates at zero so an unpaired
// end cannot push it negative.
func (g *GroundContacts) Remove() {
	if g == nil || g.count == 0 {
		return
	}
	g.count--
}

// OnGround reports whether at least one ground touch is active.
func (g *GroundContacts) OnGround() bool {
	return g != nil && g.count > 0
}

// Count returns the number of active ground touches.
func (g *GroundContacts) Count() int {
	if g == nil {
		return 0
	}
	return g.count
}

// Reset forgets every touch, e.g. after the body was teleported.
func (g *GroundContacts) Reset() {
	if g == nil {
		return
	}
	g.count = 0
}

// Handle applies a contact event to the counter.
func (g *GroundContacts) Handle(evt Event) {
	if evt.Began {
		g.Add()
		return
	}
	g.Remove()
}
