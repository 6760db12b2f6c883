// Package easel is a retained-mode 2D vector drawing engine on gogpu.
//
// Callers upsert shapes by id; the engine keeps them in paint order,
// rasterizes them on the GPU every frame and answers which shape is under
// the pointer.
//
// # Quick Start
//
//	e, err := easel.Open(easel.WithRenderOptions(render.WithSize(800, 600)))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer e.Close()
//
//	_ = e.Upsert(scene.Shape{
//	    ID:        "sun",
//	    Draggable: true,
//	    Geometry: scene.Circle{CX: 400, CY: 300, R: 80, Style: render.Style{
//	        Fill:   render.RGBA(1, 0.8, 0, 1),
//	        Stroke: render.Black,
//	    }},
//	})
//	_ = e.Render()
//	img, _ := e.ReadPixels()
//
// # Interaction
//
// Attach connects the engine to a gogpu window: pointer presses drag the
// topmost draggable shape or pan the view, Shift+drag draws a selection
// marquee, and the wheel zooms about the cursor. Hosts without a window
// can feed events to HandlePointer and HandleScroll directly and call
// Frame once per display refresh.
//
// # Packages
//
//   - geom: vector math, hit tests, stroking and triangulation
//   - text: font registry, measurement and label rasterization
//   - render: GPU device, pipelines, buffer pool and the Rasterizer
//   - scene: shape records and the paint-ordered Queue
//   - pick: hit dispatch and drag sessions
//   - selection: marquee selection and the selected set
//
// # Coordinate System
//
// World coordinates are the units shapes are authored in. Screen
// coordinates are logical pixels with the origin at the top-left and Y
// growing down; screen = world*scale + offset.
package easel
