package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/examplescenes"
	"github.com/df07/go-path-tracer/pkg/imageio"
	"github.com/df07/go-path-tracer/pkg/integrator"
	"github.com/df07/go-path-tracer/pkg/renderer"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// config holds the command-line configuration for a single render.
type config struct {
	sceneName      string
	width          int
	samples        int
	depth          int
	seed           int64
	workers        int
	integratorType string
	out            string
	quiet          bool
}

func main() {
	cfg := parseFlags()

	built, err := buildScene(cfg.sceneName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error building scene: %v\n", err)
		os.Exit(1)
	}

	s := scene.New(built.World)

	var logger core.Logger
	if !cfg.quiet {
		logger = log.New(os.Stdout, "", log.LstdFlags)
	}

	selectedIntegrator := selectIntegrator(cfg)

	masterRNG := core.NewRNG(cfg.seed)

	height := cfg.width
	desc := renderer.RenderDescriptor{
		Width:      cfg.width,
		Height:     height,
		Samples:    cfg.samples,
		TMin:       1e-3,
		TMax:       math.Inf(1),
		Integrator: selectedIntegrator,
		Scene:      s,
		Camera:     built.Camera,
		RNG:        masterRNG,
		Workers:    cfg.workers,
		Logger:     logger,
	}

	start := time.Now()
	buf, stats := renderer.Render(desc)
	elapsed := time.Since(start)

	if err := os.MkdirAll(filepath.Dir(cfg.out), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating output directory: %v\n", err)
		os.Exit(1)
	}

	if err := imageio.WritePNG(cfg.out, buf); err != nil {
		fmt.Fprintf(os.Stderr, "error writing image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rendered %d samples over %d pixels in %v\n", stats.TotalSamples, stats.TotalPixels, elapsed)
	fmt.Printf("Saved to %s\n", cfg.out)
}

func parseFlags() config {
	cfg := config{}
	flag.StringVar(&cfg.sceneName, "scene", "single-sphere", "Scene to render: single-sphere, mirror-sphere, emitter-only, shadow, bvh-stress")
	flag.IntVar(&cfg.width, "width", 400, "Image width and height in pixels (scenes are square)")
	flag.IntVar(&cfg.samples, "samples", 64, "Samples per pixel")
	flag.IntVar(&cfg.depth, "depth", 8, "Maximum path depth")
	flag.Int64Var(&cfg.seed, "seed", 1, "Master RNG seed")
	flag.IntVar(&cfg.workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	flag.StringVar(&cfg.integratorType, "integrator", "path", "Integrator: 'path' or 'normal'")
	flag.StringVar(&cfg.out, "out", filepath.Join("output", "render.png"), "Output PNG path")
	flag.BoolVar(&cfg.quiet, "quiet", false, "Suppress per-row progress logging")
	flag.Parse()
	return cfg
}

func buildScene(name string) (examplescenes.Built, error) {
	switch name {
	case "single-sphere":
		return examplescenes.SingleSphere(), nil
	case "mirror-sphere":
		return examplescenes.MirrorSphere(), nil
	case "emitter-only":
		return examplescenes.EmitterOnly(), nil
	case "shadow":
		return examplescenes.Shadow(), nil
	case "bvh-stress":
		return examplescenes.BVHStress(200, 7), nil
	default:
		return examplescenes.Built{}, fmt.Errorf("unknown scene %q", name)
	}
}

func selectIntegrator(cfg config) integrator.Integrator {
	background := core.NewVec3(1, 1, 1)

	switch cfg.integratorType {
	case "normal":
		return integrator.NormalIntegrator{Background: background, TMin: 1e-3, TMax: math.Inf(1)}
	default:
		return integrator.PathIntegrator{MaxDepth: cfg.depth, Background: background, TMin: 1e-3, TMax: math.Inf(1)}
	}
}
