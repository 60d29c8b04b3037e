package renderer

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// tMinEpsilon is the lower intersection bound, keeping bounced rays from
// re-hitting the surface they just left
const tMinEpsilon = 0.001

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Scene interface to avoid circular imports with the scene package
type Scene interface {
	GetCamera() *Camera
	GetBackgroundColors() (topColor, bottomColor core.Vec3)
	GetWorld() *geometry.HittableList
}

// Raytracer renders a scene into an image buffer
type Raytracer struct {
	scene  Scene
	config SamplingConfig
	logger core.Logger
}

// NewRaytracer creates a new raytracer, failing fast on misconfiguration
func NewRaytracer(scene Scene, config SamplingConfig, logger core.Logger) (*Raytracer, error) {
	if scene == nil || scene.GetCamera() == nil {
		return nil, fmt.Errorf("raytracer requires a scene with a camera")
	}
	if config.SamplesPerPixel <= 0 {
		return nil, fmt.Errorf("samples per pixel must be positive, got %d", config.SamplesPerPixel)
	}
	if config.MaxDepth <= 0 {
		return nil, fmt.Errorf("max depth must be positive, got %d", config.MaxDepth)
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		scene:  scene,
		config: config,
		logger: logger,
	}, nil
}

// backgroundGradient returns the sky color for a ray that escaped the scene
func (rt *Raytracer) backgroundGradient(r core.Ray) core.Vec3 {
	topColor, bottomColor := rt.scene.GetBackgroundColors()

	unitDirection := r.Direction.Normalize()

	// Map the vertical component from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return bottomColor.Lerp(topColor, t)
}

// rayColor traces a single light path through the scene. Each bounce
// multiplies in the material's attenuation; the depth counter strictly
// decreases and terminates the recursion at 0 with black.
func (rt *Raytracer) rayColor(r core.Ray, depth int, random *rand.Rand) core.Vec3 {
	// Energy budget exhausted
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := rt.scene.GetWorld().Hit(r, tMinEpsilon, math.Inf(1))
	if !isHit {
		return rt.backgroundGradient(r)
	}

	scatter, didScatter := hit.Material.Scatter(r, *hit, random)
	if !didScatter {
		// Absorbed: a normal terminal outcome, not an error
		return core.Vec3{}
	}

	return rt.rayColor(scatter.Scattered, depth-1, random).MultiplyVec(scatter.Attenuation)
}

// renderPixel averages SamplesPerPixel independent light paths for one pixel
func (rt *Raytracer) renderPixel(i, j int, random *rand.Rand) core.Vec3 {
	camera := rt.scene.GetCamera()

	colorAccum := core.Vec3{}
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		ray := camera.GetRay(i, j, random)
		colorAccum = colorAccum.Add(rt.rayColor(ray, rt.config.MaxDepth, random))
	}

	return colorAccum.Multiply(1.0 / float64(rt.config.SamplesPerPixel))
}

// Render performs one full blocking render and returns the finished image.
// Rows are dispatched to a worker pool; the output buffer is row-major
// regardless of completion order.
func (rt *Raytracer) Render(opts RenderOptions) (*Image, RenderStats, error) {
	camera := rt.scene.GetCamera()
	img := NewImage(camera.Width(), camera.Height())

	pool := NewWorkerPool(rt, opts.NumWorkers, opts.Seed)
	pool.Start()

	// Every row fits in the buffered queue, so submission never blocks
	for j := 0; j < img.Height; j++ {
		pool.SubmitTask(RowTask{RowIndex: j, Pixels: img.Row(j)})
	}

	for completed := 1; completed <= img.Height; completed++ {
		result := pool.GetResult()
		if result.Err != nil {
			pool.Stop()
			return nil, RenderStats{}, fmt.Errorf("rendering row %d: %w", result.RowIndex, result.Err)
		}
		if opts.Progress != nil {
			opts.Progress(completed, img.Height)
		}
	}

	pool.Stop()

	stats := RenderStats{
		TotalPixels:  img.Width * img.Height,
		TotalSamples: img.Width * img.Height * rt.config.SamplesPerPixel,
		NumWorkers:   pool.GetNumWorkers(),
	}
	return img, stats, nil
}
