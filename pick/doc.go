// Package pick finds the shape under the pointer and drives drag sessions.
//
// A Picker talks to the rest of the engine through narrow interfaces:
// ShapeSource for the scene, Viewport for coordinate mapping, Redrawable
// to repaint and SelectedSet for multi-shape drags. Overlapping shapes
// resolve to the topmost one, the last in paint order.
package pick
