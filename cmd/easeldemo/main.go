// Command easeldemo renders a small scene with easel and saves it as PNG.
//
// It runs headless: a device is opened on the first usable backend, the
// scene is drawn once, optionally with a marquee selection made through
// synthetic pointer events, and the frame is read back.
//
// Settings come from EASEL_WIDTH, EASEL_HEIGHT, EASEL_PIXEL_RATIO,
// EASEL_BACKEND, EASEL_OUTPUT, EASEL_SELECT and EASEL_DEBUG, and can be
// overridden with flags.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/gpucontext"
	_ "github.com/gogpu/wgpu/hal/allbackends"

	"github.com/gogpu/easel"
	"github.com/gogpu/easel/geom"
	"github.com/gogpu/easel/render"
	"github.com/gogpu/easel/scene"
	"github.com/gogpu/easel/text"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	flag.IntVar(&cfg.Width, "width", cfg.Width, "canvas width in logical pixels")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "canvas height in logical pixels")
	flag.Float64Var(&cfg.PixelRatio, "ratio", cfg.PixelRatio, "device pixel ratio")
	flag.StringVar(&cfg.Backend, "backend", cfg.Backend, "auto, vulkan, metal, dx12, gl or software")
	flag.StringVar(&cfg.Output, "output", cfg.Output, "output file")
	flag.BoolVar(&cfg.Select, "select", cfg.Select, "draw a marquee selection")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose logging")
	flag.Parse()

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	easel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	backends, _ := parseBackends(cfg.Backend)
	e, err := easel.Open(
		easel.WithBackends(backends...),
		easel.WithRenderOptions(
			render.WithSize(cfg.Width, cfg.Height),
			render.WithPixelRatio(cfg.PixelRatio),
			render.WithBackground(render.RGBA(0.96, 0.96, 0.94, 1)),
		),
	)
	if err != nil {
		return err
	}
	defer e.Close()

	for _, s := range demoScene(float64(cfg.Width), float64(cfg.Height)) {
		if err := e.Upsert(s); err != nil {
			return err
		}
	}

	if cfg.Select {
		// Shift-drag across the left half; the marquee stays visible
		// because the button is never released.
		w, h := float64(cfg.Width), float64(cfg.Height)
		events := []gpucontext.PointerEvent{
			pointer(gpucontext.PointerDown, w*0.05, h*0.05),
			pointer(gpucontext.PointerMove, w*0.45, h*0.55),
		}
		for _, ev := range events {
			if err := e.HandlePointer(ev); err != nil {
				return err
			}
		}
		easel.Logger().Info("selected", slog.Any("ids", e.Selected()))
	}

	if err := e.Render(); err != nil {
		return err
	}
	img, err := e.ReadPixels()
	if err != nil {
		return err
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", cfg.Output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	b := img.Bounds()
	log.Printf("Demo saved to %s (%dx%d)\n", cfg.Output, b.Dx(), b.Dy())
	return nil
}

func pointer(typ gpucontext.PointerEventType, x, y float64) gpucontext.PointerEvent {
	return gpucontext.PointerEvent{
		Type:      typ,
		X:         x,
		Y:         y,
		Button:    gpucontext.ButtonLeft,
		Buttons:   gpucontext.ButtonsLeft,
		Modifiers: gpucontext.ModShift,
		IsPrimary: true,
	}
}

func demoScene(w, h float64) []scene.Shape {
	red := render.RGBA(0.9, 0.3, 0.3, 0.85)
	green := render.RGBA(0.3, 0.8, 0.4, 0.85)
	blue := render.RGBA(0.3, 0.4, 0.9, 0.85)
	ink := render.RGBA(0.15, 0.15, 0.2, 1)

	shapes := []scene.Shape{
		{ID: "backdrop", Geometry: scene.Rectangle{
			X: w * 0.02, Y: h * 0.02, W: w * 0.96, H: h * 0.96,
			Style: render.Style{Stroke: ink, Thickness: 1},
		}},
		{ID: "sun", Draggable: true, Geometry: scene.Circle{
			CX: w * 0.2, CY: h * 0.25, R: h * 0.1,
			Style: render.Style{Fill: red, Stroke: ink},
		}},
		{ID: "pond", Draggable: true, Geometry: scene.Ellipse{
			CX: w * 0.3, CY: h * 0.42, RX: w * 0.1, RY: h * 0.06,
			Style: render.Style{Fill: blue},
		}},
		{ID: "tent", Draggable: true, Geometry: scene.Triangle{
			A: geom.Pt(w*0.6, h*0.45), B: geom.Pt(w*0.75, h*0.15), C: geom.Pt(w*0.9, h*0.45),
			Style: render.Style{Fill: green, Stroke: ink, Thickness: 3},
		}},
		{ID: "horizon", Geometry: scene.Line{
			X1: w * 0.05, Y1: h * 0.6, X2: w * 0.95, Y2: h * 0.6,
			Style: render.Style{Stroke: ink, Thickness: 4},
		}},
		{ID: "star", Draggable: true, Geometry: scene.Polygon{
			Points: star(w*0.7, h*0.78, h*0.12, h*0.05),
			Style:  render.Style{Fill: render.RGBA(1, 0.8, 0.1, 1), Stroke: ink},
		}},
		{ID: "wave", Draggable: true, Geometry: scene.Path{
			X: w * 0.08, Y: h * 0.8,
			Points: wave(w*0.4, h*0.06, 24),
			Style:  render.Style{Stroke: blue, Thickness: 5},
		}},
		{ID: "title", Draggable: true, Geometry: scene.Text{
			Text: "easel", X: w / 2, Y: h * 0.96,
			Color:   ink,
			Options: text.Options{Size: 28, Align: text.AlignCenter, Baseline: text.BaselineBottom},
		}},
	}
	return shapes
}

func star(cx, cy, outer, inner float64) []geom.Point {
	const points = 5
	pts := make([]geom.Point, 0, points*2)
	for i := 0; i < points*2; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := float64(i)*math.Pi/points - math.Pi/2
		pts = append(pts, geom.Pt(cx+r*math.Cos(a), cy+r*math.Sin(a)))
	}
	return pts
}

// wave returns a sine polyline relative to its origin.
func wave(length, amplitude float64, steps int) []geom.PathPoint {
	pts := make([]geom.PathPoint, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		pts = append(pts, geom.PathPoint{
			X:      t * length,
			Y:      amplitude * math.Sin(t*2*math.Pi*2),
			MoveTo: i == 0,
		})
	}
	return pts
}
