package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/schollz/progressbar/v3"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// createScene builds one of the built-in scenes, applying camera overrides
func createScene(sceneType string, overrides renderer.CameraConfig) (*scene.Scene, error) {
	switch sceneType {
	case "simple":
		return scene.NewSimpleScene(overrides)
	case "cover":
		return scene.NewCoverScene(overrides)
	default:
		return nil, fmt.Errorf("unknown scene type: %q (available: simple, cover)", sceneType)
	}
}

func main() {
	sceneType := flag.String("scene", "simple", "Scene type: 'simple' or 'cover'")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	samples := flag.Int("samples", 0, "Samples per pixel (0 = scene default)")
	depth := flag.Int("depth", 0, "Maximum ray bounce depth (0 = scene default)")
	workers := flag.Int("workers", 0, "Number of render workers (0 = CPU count)")
	seed := flag.Int64("seed", 42, "Base seed for the per-worker random generators")
	gamma := flag.Float64("gamma", 2.0, "Gamma applied before quantization (<=1 disables)")
	output := flag.String("output", "", "Output path; .png or .ppm decides the format (default output/<scene>/render_<timestamp>.ppm)")
	compress := flag.Bool("compress", false, "Gzip-compress PPM output (writes .ppm.gz)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Weekend Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  simple - Three spheres (diffuse, hollow glass, fuzzy metal) on a ground sphere")
		fmt.Println("  cover  - Random sphere field with depth of field")
		return
	}

	logger := renderer.NewDefaultLogger()

	selectedScene, err := createScene(*sceneType, renderer.CameraConfig{Width: *width})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating scene: %v\n", err)
		os.Exit(1)
	}

	samplingConfig := selectedScene.SamplingConfig
	if *samples > 0 {
		samplingConfig.SamplesPerPixel = *samples
	}
	if *depth > 0 {
		samplingConfig.MaxDepth = *depth
	}

	raytracer, err := renderer.NewRaytracer(selectedScene, samplingConfig, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating raytracer: %v\n", err)
		os.Exit(1)
	}

	camera := selectedScene.GetCamera()
	logger.Printf("Rendering %s scene at %dx%d, %d samples per pixel, depth %d\n",
		*sceneType, camera.Width(), camera.Height(),
		samplingConfig.SamplesPerPixel, samplingConfig.MaxDepth)

	bar := progressbar.Default(int64(camera.Height()), "rendering")

	startTime := time.Now()
	img, stats, err := raytracer.Render(renderer.RenderOptions{
		NumWorkers: *workers,
		Seed:       *seed,
		Progress: func(completed, total int) {
			_ = bar.Set(completed)
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
		os.Exit(1)
	}
	_ = bar.Finish()
	renderTime := time.Since(startTime)

	logger.Printf("Render completed in %v (%d samples across %d workers)\n",
		renderTime, stats.TotalSamples, stats.NumWorkers)

	outputPath := *output
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = filepath.Join("output", *sceneType, fmt.Sprintf("render_%s.ppm", timestamp))
	}

	if err := writeImage(img, outputPath, *gamma, *compress); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

// writeImage serializes the image based on the output path's extension.
// PPM output can be gzip-compressed, which appends .gz to the path.
func writeImage(img *renderer.Image, path string, gamma float64, compress bool) error {
	opts := renderer.WriteOptions{Gamma: gamma}

	isPNG := strings.EqualFold(filepath.Ext(path), ".png")
	if isPNG && compress {
		return fmt.Errorf("compression only applies to PPM output")
	}
	if compress && !strings.HasSuffix(path, ".gz") {
		path += ".gz"
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	var w io.Writer = file
	var gz *gzip.Writer
	if compress {
		gz = gzip.NewWriter(file)
		w = gz
	}

	if isPNG {
		if err := png.Encode(w, img.ToRGBA(opts)); err != nil {
			return fmt.Errorf("encoding PNG: %w", err)
		}
	} else {
		if err := img.WritePPM(w, opts); err != nil {
			return fmt.Errorf("encoding PPM: %w", err)
		}
	}

	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("flushing gzip output: %w", err)
		}
	}

	fmt.Printf("Render saved as %s\n", path)
	return nil
}
