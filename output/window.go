package output

import (
	"github.com/ikeydoherty/budgie-rd/surface"
	"github.com/ikeydoherty/budgie-rd/util/multiplexer"
	"github.com/sirupsen/logrus"
)

// Window maps surfaces onto a single output.
type Window[K comparable] struct {
	output *Output
	views  map[surface.Handle]*View
	frames *multiplexer.OneToMany[struct{}]
}

func NewWindow[K comparable]() *Window[K] {
	return &Window[K]{
		views:  make(map[surface.Handle]*View),
		frames: multiplexer.NewOneToMany[struct{}](),
	}
}

// SetOutput makes out the output new views are placed on.
func (w *Window[K]) SetOutput(out Output) {
	w.output = &out
	logrus.WithField("output", out).Infoln("Default output set")
}

func (w *Window[K]) Output() (Output, bool) {
	if w.output == nil {
		return Output{}, false
	}
	return *w.output, true
}

// MapSurface places a view of item at the origin of the output.
func (w *Window[K]) MapSurface(item *surface.Item[K]) (bool, error) {
	if w.output == nil {
		return false, ErrNoOutput
	}
	if _, ok := w.views[item.Handle()]; ok {
		return false, nil
	}
	w.views[item.Handle()] = &View{
		Handle:   item.Handle(),
		Position: w.output.Bounds.Min,
		Primary:  true,
	}
	return true, nil
}

func (w *Window[K]) UnmapSurface(item *surface.Item[K]) {
	delete(w.views, item.Handle())
}

func (w *Window[K]) Shows(item *surface.Item[K]) bool {
	_, ok := w.views[item.Handle()]
	return ok
}

// View returns the view of item, if it is mapped.
func (w *Window[K]) View(item *surface.Item[K]) (*View, bool) {
	v, ok := w.views[item.Handle()]
	return v, ok
}

// ScheduleDraw wakes every frame listener. Requests pile up into a single
// pending frame per listener.
func (w *Window[K]) ScheduleDraw() {
	w.frames.Send(struct{}{})
}

// Frames returns a channel that receives once for every batch of draw
// requests. name must be unique among the listeners.
func (w *Window[K]) Frames(name string) (<-chan struct{}, error) {
	return w.frames.MakeReceiver(name)
}

func (w *Window[K]) StopFrames(name string) {
	w.frames.CloseReceiver(name)
}

// Close stops every frame listener.
func (w *Window[K]) Close() {
	w.frames.Close()
}
