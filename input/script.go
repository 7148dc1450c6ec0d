package input

// Script returns a Source that replays states one per call and then reports
// no input.
func Script(states ...State) Source {
	i := 0
	return func() State {
		if i >= len(states) {
			return State{}
		}
		s := states[i]
		i++
		return s
	}
}

// Hold returns a Source that reports s on every call.
func Hold(s State) Source {
	return func() State { return s }
}
