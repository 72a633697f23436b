// Package input handles SDL2 input events and routes mouse gestures to the
// camera and the node manipulator.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Event types for viewer use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Modifiers is the keyboard modifier state at the time of an event.
type Modifiers struct {
	Shift   bool
	Control bool
}

// Event represents a processed input event. Mouse coordinates are window
// pixels with the origin at the upper left.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
	WheelY float32
	Mods   Modifiers
}

// Input handles all input processing.
type Input struct {
	events []Event
	mouseX int
	mouseY int
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

func modifiers() Modifiers {
	m := uint32(sdl.GetModState())
	return Modifiers{
		Shift:   m&uint32(sdl.KMOD_SHIFT) != 0,
		Control: m&uint32(sdl.KMOD_CTRL) != 0,
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  e.Keysym.Scancode,
					Mods: modifiers(),
				})
			} else if e.Type == sdl.KEYUP {
				i.events = append(i.events, Event{
					Type: EventKeyUp,
					Key:  e.Keysym.Scancode,
					Mods: modifiers(),
				})
			}

		case *sdl.MouseMotionEvent:
			i.mouseX, i.mouseY = int(e.X), int(e.Y)
			i.events = append(i.events, Event{
				Type:   EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: buttonFromState(e.State),
				Mods:   modifiers(),
			})

		case *sdl.MouseButtonEvent:
			i.mouseX, i.mouseY = int(e.X), int(e.Y)
			t := EventMouseDown
			if e.Type == sdl.MOUSEBUTTONUP {
				t = EventMouseUp
			}
			i.events = append(i.events, Event{
				Type:   t,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
				Mods:   modifiers(),
			})

		case *sdl.MouseWheelEvent:
			spin := float32(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				spin = -spin
			}
			// wheel events carry no position; use the last known one
			i.events = append(i.events, Event{
				Type:   EventMouseWheel,
				MouseX: i.mouseX,
				MouseY: i.mouseY,
				WheelY: spin,
				Mods:   modifiers(),
			})
		}
	}

	return false
}

// buttonFromState returns the lowest held button of a motion event, or 0.
func buttonFromState(state uint32) uint8 {
	for b := uint8(sdl.BUTTON_LEFT); b <= sdl.BUTTON_X2; b++ {
		if state&sdl.Button(uint32(b)) != 0 {
			return b
		}
	}
	return 0
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}
