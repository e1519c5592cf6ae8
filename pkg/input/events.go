// Package input turns pointer, wheel and key events into camera and object
// transforms.
package input

import "fmt"

// Kind identifies an input event.
type Kind int

const (
	PointerDown Kind = iota
	PointerUp
	PointerMove
	Wheel
	KeyDown
)

func (k Kind) String() string {
	switch k {
	case PointerDown:
		return "pointer-down"
	case PointerUp:
		return "pointer-up"
	case PointerMove:
		return "pointer-move"
	case Wheel:
		return "wheel"
	case KeyDown:
		return "key-down"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Event is one input event in viewport pixel coordinates (y grows
// downward). Wheel is positive when scrolling up, away from the user.
type Event struct {
	Kind   Kind
	X, Y   float64
	Button Button
	Wheel  float64
	Key    string
}

// Down is a left-button press at (x, y).
func Down(x, y float64) Event {
	return Event{Kind: PointerDown, X: x, Y: y, Button: ButtonLeft}
}

// Up is a left-button release at (x, y).
func Up(x, y float64) Event {
	return Event{Kind: PointerUp, X: x, Y: y, Button: ButtonLeft}
}

// Move is pointer motion to (x, y).
func Move(x, y float64) Event {
	return Event{Kind: PointerMove, X: x, Y: y}
}

// Scroll is a wheel event of delta notches.
func Scroll(delta float64) Event {
	return Event{Kind: Wheel, Wheel: delta}
}

// Key is a key press.
func Key(k string) Event {
	return Event{Kind: KeyDown, Key: k}
}

// Key names understood by Controller.
const (
	KeyReset = "r"

	KeyPitchUp   = "z"
	KeyPitchDown = "s"
	KeyYawLeft   = "q"
	KeyYawRight  = "d"
	KeyRollLeft  = "a"
	KeyRollRight = "e"
)
