package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// State is one frame of player input.
type State struct {
	// MoveX is -1 for left, 0 for none, +1 for right.
	MoveX float64
	// JumpPressed is true on the frame the jump key is pressed.
	JumpPressed bool
	// JumpHeld is true while the jump key is held down.
	JumpHeld bool
	// Confirm accepts the focused menu choice.
	Confirm bool
	// Back is Escape or the gamepad's back button.
	Back bool
	// DebugToggle flips the physics overlay.
	DebugToggle bool
}

// Source produces the input for the current frame. Tests substitute a
// scripted source for Poll.
type Source func() State

// Poll reads the keyboard and the first connected gamepad.
func Poll() State {
	var s State
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		s.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		s.MoveX += 1
	}

	var gpJumpJustPressed, gpJumpHeld, gpBack bool
	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]

		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -0.3 {
			s.MoveX = -1
		} else if leftX > 0.3 {
			s.MoveX = 1
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft) {
			s.MoveX = -1
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight) {
			s.MoveX = 1
		}

		gpJumpJustPressed = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		gpJumpHeld = ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		gpBack = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterLeft)
	}

	// just-pressed so a held key cannot double jump
	s.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyW) ||
		inpututil.IsKeyJustPressed(ebiten.KeyUp) ||
		gpJumpJustPressed
	s.JumpHeld = ebiten.IsKeyPressed(ebiten.KeySpace) ||
		ebiten.IsKeyPressed(ebiten.KeyW) ||
		ebiten.IsKeyPressed(ebiten.KeyUp) ||
		gpJumpHeld
	s.Confirm = inpututil.IsKeyJustPressed(ebiten.KeyEnter) || gpJumpJustPressed
	s.Back = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || gpBack
	s.DebugToggle = inpututil.IsKeyJustPressed(ebiten.KeyF3)
	return s
}
