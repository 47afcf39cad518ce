package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/launchpad/internal/engine/input"
)

var keymap = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_SPACE:    input.KeySpace,
	sdl.SCANCODE_RETURN:   input.KeyEnter,
	sdl.SCANCODE_KP_ENTER: input.KeyEnter,
	sdl.SCANCODE_ESCAPE:   input.KeyEscape,
	sdl.SCANCODE_F12:      input.KeyF12,
	sdl.SCANCODE_P:        input.KeyP,
	sdl.SCANCODE_M:        input.KeyM,
}

// PollEvents drains the SDL queue and translates it into input events. The
// returned slice is reused by the next call.
func (w *Window) PollEvents(buf []input.Event) []input.Event {
	buf = buf[:0]
	width, height := w.Size()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			buf = append(buf, input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				width, height = int(e.Data1), int(e.Data2)
				dw, dh := w.DrawableSize()
				buf = append(buf, input.Event{
					Type:   input.EventResize,
					Width:  dw,
					Height: dh,
				})
			}

		case *sdl.KeyboardEvent:
			key, ok := keymap[e.Keysym.Scancode]
			if !ok || e.Repeat != 0 {
				continue
			}
			typ := input.EventKeyDown
			if e.Type == sdl.KEYUP {
				typ = input.EventKeyUp
			}
			buf = append(buf, input.Event{Type: typ, Key: key})

		case *sdl.MouseMotionEvent:
			buf = append(buf, mouseEvent(input.EventMouseMove, int(e.X), int(e.Y), 0, width, height))

		case *sdl.MouseButtonEvent:
			typ := input.EventMouseDown
			if e.Type == sdl.MOUSEBUTTONUP {
				typ = input.EventMouseUp
			}
			buf = append(buf, mouseEvent(typ, int(e.X), int(e.Y), e.Button, width, height))
		}
	}

	return buf
}

func mouseEvent(typ input.EventType, x, y int, button uint8, width, height int) input.Event {
	nx, ny := input.Normalize(x, y, width, height)
	return input.Event{
		Type:   typ,
		X:      x,
		Y:      y,
		NX:     nx,
		NY:     ny,
		Button: button,
	}
}
