package render

import (
	"image"
	"image/color"
	"sync"
)

// OpKind identifies a recorded draw primitive.
type OpKind int

const (
	OpClear OpKind = iota
	OpCircle
	OpText
)

// Op is one recorded draw call.
type Op struct {
	Kind   OpKind
	At     image.Point
	Radius int
	Text   string
	Align  Align
	Color  color.RGBA
}

// Recorder is a Canvas that keeps the last presented frame as a display list.
// Frontends that own their draw callback replay it; tests inspect it.
type Recorder struct {
	mu       sync.Mutex
	pending  []Op
	frame    []Op
	presents int
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Clear(c color.RGBA) {
	r.pending = append(r.pending[:0], Op{Kind: OpClear, Color: c})
}

func (r *Recorder) Circle(center image.Point, radius int, c color.RGBA) {
	r.pending = append(r.pending, Op{Kind: OpCircle, At: center, Radius: radius, Color: c})
}

func (r *Recorder) Text(s string, at image.Point, align Align, c color.RGBA) {
	r.pending = append(r.pending, Op{Kind: OpText, At: at, Text: s, Align: align, Color: c})
}

// Present publishes the pending ops as the current frame.
func (r *Recorder) Present() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frame = append(r.frame[:0], r.pending...)
	r.pending = r.pending[:0]
	r.presents++
	return nil
}

// Frame returns a copy of the last presented frame.
func (r *Recorder) Frame() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Op(nil), r.frame...)
}

// Presents returns how many frames were presented.
func (r *Recorder) Presents() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presents
}

// Texts returns the labels of the last presented frame.
func (r *Recorder) Texts() []string {
	var texts []string
	for _, op := range r.Frame() {
		if op.Kind == OpText {
			texts = append(texts, op.Text)
		}
	}
	return texts
}

// Replay draws the last presented frame onto c without presenting it.
func (r *Recorder) Replay(c Canvas) {
	for _, op := range r.Frame() {
		switch op.Kind {
		case OpClear:
			c.Clear(op.Color)
		case OpCircle:
			c.Circle(op.At, op.Radius, op.Color)
		case OpText:
			c.Text(op.Text, op.At, op.Align, op.Color)
		}
	}
}
