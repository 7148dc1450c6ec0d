package entity

import (
	"github.com/milk9111/pawbs/input"
	"github.com/milk9111/pawbs/prefabs"
)

// Movement turns input into a body velocity. Coyote frames let a jump start
// shortly after walking off a ledge; buffer frames keep a jump pressed just
// before landing.
type Movement struct {
	MoveSpeed        float64
	JumpSpeed        float64
	CoyoteFrames     int
	JumpBufferFrames int
	FacingRight      bool
	State            string

	coyoteTimer int
	bufferTimer int
}

func NewMovement(spec prefabs.PlayerSpec) Movement {
	m := Movement{FacingRight: true, State: "idle"}
	m.Apply(spec)
	return m
}

// Apply copies tuning from spec, keeping timers and facing.
func (m *Movement) Apply(spec prefabs.PlayerSpec) {
	spec = spec.WithDefaults()
	m.MoveSpeed = spec.MoveSpeed
	m.JumpSpeed = spec.JumpSpeed
	m.CoyoteFrames = spec.CoyoteFrames
	m.JumpBufferFrames = spec.JumpBufferFrames
}

// Step returns the velocity for this frame. Screen-down is positive y, so a
// jump sets vy to -JumpSpeed.
func (m *Movement) Step(in input.State, grounded bool, vx, vy float64) (float64, float64) {
	if grounded {
		m.coyoteTimer = m.CoyoteFrames
	} else if m.coyoteTimer > 0 {
		m.coyoteTimer--
	}

	if in.JumpPressed {
		m.bufferTimer = m.JumpBufferFrames + 1
	}

	if in.MoveX != 0 {
		m.FacingRight = in.MoveX > 0
	}
	vx = in.MoveX * m.MoveSpeed

	canJump := grounded || m.coyoteTimer > 0
	if m.bufferTimer > 0 && canJump {
		vy = -m.JumpSpeed
		m.coyoteTimer = 0
		m.bufferTimer = 0
	} else if m.bufferTimer > 0 {
		m.bufferTimer--
	}

	switch {
	case vy < 0:
		m.State = "jump"
	case !grounded:
		m.State = "fall"
	case in.MoveX != 0:
		m.State = "run"
	default:
		m.State = "idle"
	}
	return vx, vy
}

// Reset clears jump timers.
func (m *Movement) Reset() {
	m.coyoteTimer = 0
	m.bufferTimer = 0
	m.State = "idle"
}
