package sdlwindow

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/veandco/go-sdl2/sdl"
)

func TestCloseEvents(t *testing.T) {
	c := qt.New(t)

	s := NewSystem()
	first := &Window{system: s, id: 1}
	second := &Window{system: s, id: 2}
	s.windows[1] = first
	s.windows[2] = second

	s.handle(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_FOCUS_GAINED, WindowID: 1})
	c.Assert(first.ShouldClose(), qt.IsFalse)

	s.handle(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_CLOSE, WindowID: 1})
	c.Assert(first.ShouldClose(), qt.IsTrue)
	c.Assert(second.ShouldClose(), qt.IsFalse)

	s.handle(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_CLOSE, WindowID: 9})
	c.Assert(second.ShouldClose(), qt.IsFalse)

	s.handle(&sdl.QuitEvent{})
	c.Assert(second.ShouldClose(), qt.IsTrue)
}
