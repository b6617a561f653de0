//go:build sdl2

// Command typfpreview is a tiny SDL2 window that loads a font, runs one
// string through the default pipeline, and blits the resulting RGBA
// buffer to the window surface. It is a developer convenience outside
// the pipeline's core contract, in the spirit of the teacher's own
// examples/platform/sdl2 demo, not a replacement for it.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/fontlaborg/typf"
	"github.com/fontlaborg/typf/internal/export"
	"github.com/fontlaborg/typf/internal/render"
	"github.com/fontlaborg/typf/internal/shape"
)

func main() {
	fontPath := flag.String("font", "", "path to a TTF/OTF font file")
	text := flag.String("text", "The quick brown fox", "text to shape and render")
	size := flag.Float64("size", 48, "size in pixels")
	flag.Parse()

	if *fontPath == "" {
		fmt.Fprintln(os.Stderr, "usage: typfpreview -font path/to/font.ttf [-text \"...\"] [-size 48]")
		os.Exit(2)
	}

	if err := run(*fontPath, *text, *size); err != nil {
		log.Fatalf("typfpreview: %v", err)
	}
}

func run(fontPath, text string, size float64) error {
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return fmt.Errorf("read font: %w", err)
	}

	font, err := typf.LoadFont(data)
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	pipeline, err := typf.NewBuilder().
		WithShaper(shape.NewGoTextShaper()).
		WithRenderer(render.NewBitmapRenderer()).
		WithExporter(export.NewPNGExporter()).
		Build()
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	sp := typf.ShapingParams{SizePixels: size, Direction: typf.DirectionLTR}
	rp := typf.RenderParams{Foreground: typf.Color{R: 20, G: 20, B: 20, A: 255}, Padding: 20, Antialias: true}

	output, err := pipeline.ProcessStages(text, font, sp, rp)
	if err != nil {
		return fmt.Errorf("process: %w", err)
	}
	if output.Format != "rgba8" {
		return fmt.Errorf("unexpected output format %q", output.Format)
	}

	return showWindow(output, text)
}

// showWindow opens an SDL2 window sized to the rendered buffer, blits it
// once via a streaming texture, and pumps events until the window is
// closed or Escape is pressed. Mirrors the teacher's backend's
// create-window / create-renderer / create-texture / Update+Present
// sequence, collapsed into one function since this tool renders a
// single static frame rather than an animated scene.
func showWindow(output *render.Output, title string) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(
		"typfpreview: "+title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(output.Width), int32(output.Height),
		sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		renderer, err = sdl.CreateRenderer(window, -1, sdl.RENDERER_SOFTWARE)
		if err != nil {
			return fmt.Errorf("create renderer: %w", err)
		}
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(
		uint32(sdl.PIXELFORMAT_ABGR8888),
		sdl.TEXTUREACCESS_STREAMING,
		int32(output.Width), int32(output.Height))
	if err != nil {
		return fmt.Errorf("create texture: %w", err)
	}
	defer texture.Destroy()

	pitch := output.Width * 4
	if err := texture.Update(nil, unsafe.Pointer(&output.RGBA[0]), pitch); err != nil {
		return fmt.Errorf("update texture: %w", err)
	}

	renderer.Clear()
	renderer.Copy(texture, nil, nil)
	renderer.Present()

	for {
		event := sdl.WaitEvent()
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return nil
		case *sdl.KeyboardEvent:
			if e.Keysym.Sym == sdl.K_ESCAPE && e.State == sdl.PRESSED {
				return nil
			}
		}
	}
}
