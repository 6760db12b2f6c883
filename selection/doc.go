// Package selection implements rubber-band selection and the set of
// selected shapes.
//
// A Manager is either idle or selecting. Start enters the selecting state
// and schedules a frame task that repaints the scene every frame until End
// is called; Update stretches the marquee and recomputes which shapes it
// touches. The Manager is itself a render.Drawable that paints the marquee
// while a selection is in progress.
package selection
