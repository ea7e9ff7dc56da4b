package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/vikram-vadrevu/raytracer/render"
	"github.com/vikram-vadrevu/raytracer/scenefile"
)

type config struct {
	seed    *int64
	workers *int
	samples *int
	out     *string

	showHelp *bool
}

func defineFlags() config {
	return config{
		seed:    flag.Int64("seed", 0, "Random seed for sampling (antialiasing, soft focus, global illumination)"),
		workers: flag.Int("workers", 0, "Number of render workers; defaults to the CPU count"),
		samples: flag.Int("aa", -1, "Override the scene's antialiasing sample count"),

		out: flag.String("out", "", "Override the output PNG path from the scene file"),

		showHelp: flag.Bool("h", false, "Show this help message"),
	}
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `Raytracer - Scene File Renderer

Usage:
  %[1]s [options] <scene-file>

`, os.Args[0])

	printGroup("Rendering Options", []string{"seed", "workers", "aa"})
	printGroup("Output", []string{"out"})
	printGroup("Misc", []string{"h"})
}

func printGroup(title string, keys []string) {
	fmt.Fprintf(os.Stderr, "%s:\n", title)
	for _, name := range keys {
		if f := flag.Lookup(name); f != nil {
			fmt.Fprintf(os.Stderr, "  -%-8s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
		}
	}
	fmt.Fprintln(os.Stderr)
}

func main() {

	cfg := defineFlags()
	flag.Usage = printHelp
	flag.Parse()

	if *cfg.showHelp {
		printHelp()
		return
	}
	if flag.NArg() != 1 {
		printHelp()
		os.Exit(2)
	}

	scenePath := flag.Arg(0)
	file, err := scenefile.Load(scenePath)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", scenePath, err)
	}

	if *cfg.samples >= 0 {
		file.Samples = *cfg.samples
	}
	out := file.Output
	if *cfg.out != "" {
		out = *cfg.out
	}

	slog.Info("rendering",
		"scene", scenePath,
		"size", fmt.Sprintf("%dx%d", file.Camera.Width, file.Camera.Height),
		"shapes", len(file.Scene.Shapes),
		"aa", file.Samples)

	start := time.Now()
	img, err := render.Render(context.Background(), file.Scene, file.Camera, render.Options{
		Samples: file.Samples,
		Seed:    *cfg.seed,
		Workers: *cfg.workers,
	})
	if err != nil {
		log.Fatal(err)
	}
	slog.Info("render complete", "elapsed", time.Since(start).Round(time.Millisecond))

	if err := writePNG(out, img); err != nil {
		log.Fatalf("Failed to write PNG: %v", err)
	}
	slog.Info("wrote image", "path", out)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return (&png.Encoder{CompressionLevel: png.BestSpeed}).Encode(f, img)
}
