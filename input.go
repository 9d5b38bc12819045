package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dungeon/system"
)

const stickDeadzone = 0.3

// Input maps keyboard, mouse and the first gamepad to an intent.
type Input struct {
	width, height int

	// lastCursor lets the bow keep facing the keyboard direction until the
	// mouse actually moves.
	lastCursor  cp.Vector
	mouseActive bool
}

func NewInput(width, height int) *Input {
	return &Input{width: width, height: height}
}

// Poll reads the devices for this frame. origin is the player's screen
// position, used to place the gamepad aim point.
func (i *Input) Poll(origin cp.Vector) system.Intent {
	var in system.Intent

	in.Left = ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	in.Right = ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	in.Up = ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	in.Down = ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)

	in.Fire = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.PauseToggle = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP)
	in.InventoryToggle = inpututil.IsKeyJustPressed(ebiten.KeyI) || inpututil.IsKeyJustPressed(ebiten.KeyTab)
	in.Start = inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	in.Restart = inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	in.Quit = inpututil.IsKeyJustPressed(ebiten.KeyF12)

	mx, my := ebiten.CursorPosition()
	cursor := cp.Vector{X: float64(mx), Y: float64(my)}
	if cursor != i.lastCursor {
		i.mouseActive = true
		i.lastCursor = cursor
	}
	if i.mouseActive && mx >= 0 && my >= 0 && mx < i.width && my < i.height {
		in.Aim = &cursor
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		i.pollGamepad(gamepads[0], origin, &in)
	}
	return in
}

func (i *Input) pollGamepad(id ebiten.GamepadID, origin cp.Vector, in *system.Intent) {
	lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	in.Left = in.Left || lx < -stickDeadzone
	in.Right = in.Right || lx > stickDeadzone
	in.Up = in.Up || ly < -stickDeadzone
	in.Down = in.Down || ly > stickDeadzone

	in.Fire = in.Fire ||
		inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomRight) ||
		inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
	start := inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	in.PauseToggle = in.PauseToggle || start
	in.Start = in.Start || start
	in.InventoryToggle = in.InventoryToggle ||
		inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterLeft)
	in.Restart = in.Restart ||
		inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)

	// The right stick aims away from the player and overrides the mouse while
	// it is deflected.
	rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
	ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
	if math.Hypot(rx, ry) > stickDeadzone {
		aim := origin.Add(cp.Vector{X: rx, Y: ry}.Mult(100))
		in.Aim = &aim
		i.mouseActive = false
	}
}
