package scene

import (
	"log/slog"

	"github.com/gogpu/easel/render"
)

// Queue is the ordered, id-keyed list of shapes of one canvas.
// Insertion order is paint order.
//
// Queue is not safe for concurrent use; all calls belong on the host's UI
// goroutine.
type Queue struct {
	shapes []Shape
	index  map[string]int
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue {
	return &Queue{index: make(map[string]int)}
}

// Upsert stores a copy of s. A shape whose id is already queued is
// replaced in place, keeping its paint position; otherwise s is appended.
func (q *Queue) Upsert(s Shape) error {
	if s.ID == "" {
		return ErrEmptyID
	}
	if s.Geometry == nil {
		return ErrNoGeometry
	}
	s = s.Clone()
	if i, ok := q.index[s.ID]; ok {
		q.shapes[i] = s
		slogger().Debug("scene: shape replaced", slog.String("id", s.ID), slog.String("kind", s.Kind().String()))
		return nil
	}
	q.index[s.ID] = len(q.shapes)
	q.shapes = append(q.shapes, s)
	slogger().Debug("scene: shape added", slog.String("id", s.ID), slog.String("kind", s.Kind().String()))
	return nil
}

// Remove deletes the shape with the given id and reports whether it was
// queued. Shapes above it move down one paint position.
func (q *Queue) Remove(id string) bool {
	i, ok := q.index[id]
	if !ok {
		return false
	}
	q.shapes = append(q.shapes[:i], q.shapes[i+1:]...)
	delete(q.index, id)
	for j := i; j < len(q.shapes); j++ {
		q.index[q.shapes[j].ID] = j
	}
	slogger().Debug("scene: shape removed", slog.String("id", id))
	return true
}

// Get returns a copy of the shape with the given id. Changing it does not
// change the queue; upsert it instead.
func (q *Queue) Get(id string) (Shape, bool) {
	i, ok := q.index[id]
	if !ok {
		return Shape{}, false
	}
	return q.shapes[i].Clone(), true
}

// Index returns the paint position of id, or -1.
func (q *Queue) Index(id string) int {
	if i, ok := q.index[id]; ok {
		return i
	}
	return -1
}

// Len returns the number of queued shapes.
func (q *Queue) Len() int { return len(q.shapes) }

// All returns copies of the shapes in paint order.
func (q *Queue) All() []Shape {
	out := make([]Shape, len(q.shapes))
	for i, s := range q.shapes {
		out[i] = s.Clone()
	}
	return out
}

// Drawables returns one Drawable per shape, in paint order. selected may
// be nil; otherwise shapes it reports draw their highlight as well.
//
// The drawables capture the shapes as they are now; later upserts are not
// seen by them.
func (q *Queue) Drawables(selected func(id string) bool) []render.Drawable {
	out := make([]render.Drawable, len(q.shapes))
	for i, s := range q.shapes {
		sel := selected != nil && selected(s.ID)
		out[i] = render.DrawableFunc(func(c render.Canvas) error {
			return Render(c, s, sel)
		})
	}
	return out
}
