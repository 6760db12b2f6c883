// Package scene holds the retained shapes of an easel canvas.
//
// A Shape pairs an id and drag callbacks with an immutable Geometry value:
// one of Rectangle, Circle, Ellipse, Line, Path, Polygon, Triangle or Text.
// Behavior is dispatched on the geometry type by the free functions Render,
// HitTest, Bounds and Translate, so changing a shape always means upserting
// a new value into the Queue.
//
// The Queue keeps shapes in insertion order, which is also paint order:
// later shapes are drawn on top.
package scene
